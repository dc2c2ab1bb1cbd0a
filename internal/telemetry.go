package internal

import (
	"context"
	"sync"
)

// TelemetryEmitter receives named measurements from the builder, fill and review flows.
type TelemetryEmitter func(ctx context.Context, name string, labels map[string]string, value int64)

const (
	MetricFieldAdded         = "form_field_added_total"
	MetricFormSaved          = "form_saved_total"
	MetricValidationFailed   = "form_validation_failed_fields_total"
	MetricSubmissionCreated  = "form_submission_created_total"
	MetricSubmissionReviewed = "form_submission_reviewed_total"
	MetricSummaryFallback    = "form_summary_fallback_total"
)

var (
	teleMu   sync.Mutex
	teleImpl TelemetryEmitter = func(ctx context.Context, name string, labels map[string]string, value int64) {}
)

// RegisterTelemetryEmitter installs fn; nil restores the no-op emitter.
func RegisterTelemetryEmitter(fn TelemetryEmitter) {
	teleMu.Lock()
	defer teleMu.Unlock()
	if fn == nil {
		teleImpl = func(ctx context.Context, name string, labels map[string]string, value int64) {}
		return
	}
	teleImpl = fn
}

func emitCount(ctx context.Context, name string, labels map[string]string) {
	teleMu.Lock()
	fn := teleImpl
	teleMu.Unlock()
	fn(ctx, name, labels, 1)
}

// EmitFieldAdded counts fields dropped onto a form, labelled by field type.
func EmitFieldAdded(ctx context.Context, fieldType string) {
	emitCount(ctx, MetricFieldAdded, map[string]string{"field_type": fieldType})
}

func EmitFormSaved(ctx context.Context) {
	emitCount(ctx, MetricFormSaved, nil)
}

// EmitValidationFailed counts the fields that blocked a submit.
func EmitValidationFailed(ctx context.Context, failedFields int) {
	teleMu.Lock()
	fn := teleImpl
	teleMu.Unlock()
	fn(ctx, MetricValidationFailed, nil, int64(failedFields))
}

func EmitSubmissionCreated(ctx context.Context) {
	emitCount(ctx, MetricSubmissionCreated, nil)
}

// EmitSubmissionReviewed counts review decisions, labelled by resulting status.
func EmitSubmissionReviewed(ctx context.Context, status string) {
	emitCount(ctx, MetricSubmissionReviewed, map[string]string{"status": status})
}

// EmitSummaryFallback counts summaries served by the mock path, labelled by reason.
func EmitSummaryFallback(ctx context.Context, reason string) {
	emitCount(ctx, MetricSummaryFallback, map[string]string{"reason": reason})
}
