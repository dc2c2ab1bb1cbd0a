package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lychee-technology/formdesk"
	"go.uber.org/zap"
)

const (
	summaryPrefix      = "AI Summary: "
	summaryInstruction = "Provide a concise, actionable summary for the following field service report text. " +
		"Highlight key issues and actions taken or required. Maximum 3 sentences:"
	mockExcerptLength = 50
)

// SummaryService produces a short text summary of a stored submission.
type SummaryService struct {
	repo       formdesk.SubmissionRepository
	summarizer formdesk.Summarizer
	breaker    *CircuitBreaker
	cfg        formdesk.SummaryConfig
}

// NewSummaryService wires the optional remote summarizer. A nil summarizer, or a disabled
// config, always yields the mock summary.
func NewSummaryService(repo formdesk.SubmissionRepository, summarizer formdesk.Summarizer, cfg formdesk.SummaryConfig) *SummaryService {
	return &SummaryService{
		repo:       repo,
		summarizer: summarizer,
		breaker:    NewCircuitBreaker(cfg.FailureThreshold, cfg.FailureWindow, cfg.OpenDuration),
		cfg:        cfg,
	}
}

// Summarize loads the submission and summarizes it. Only a failed lookup is an error;
// remote trouble degrades to a fallback text.
func (s *SummaryService) Summarize(ctx context.Context, id uuid.UUID) (string, error) {
	if s.repo == nil {
		return "", formdesk.NewInternalError("summary service has no submission repository", nil)
	}
	sub, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	text, err := SubmissionText(sub)
	if err != nil {
		return "", err
	}
	return s.summarizeText(ctx, text), nil
}

func (s *SummaryService) summarizeText(ctx context.Context, text string) string {
	if !s.cfg.Enabled || s.summarizer == nil {
		EmitSummaryFallback(ctx, "not_configured")
		return MockSummary(text)
	}
	if !s.breaker.Allow() {
		EmitSummaryFallback(ctx, "circuit_open")
		return summaryPrefix + "Summary service is temporarily unavailable. Please try again later."
	}

	callCtx := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := s.summarizer.Summarize(callCtx, s.prompt(text))
	if err != nil {
		s.breaker.RecordFailure()
		EmitSummaryFallback(ctx, "error")
		zap.S().Warnw("summarizer call failed", "error", err, "elapsed", time.Since(start))
		return summaryPrefix + "Error fetching summary. Please try again later."
	}
	s.breaker.RecordSuccess()

	out = strings.TrimSpace(out)
	if out == "" {
		EmitSummaryFallback(ctx, "empty")
		return summaryPrefix + "Could not generate a summary at this time (empty response)."
	}
	zap.S().Debugw("summary generated", "elapsed", time.Since(start), "length", len(out))
	return summaryPrefix + out
}

func (s *SummaryService) prompt(text string) string {
	if s.cfg.MaxPromptLength > 0 {
		text = truncateRunes(text, s.cfg.MaxPromptLength)
	}
	return fmt.Sprintf("%s\n\n%q", summaryInstruction, text)
}

// SubmissionText is the flattened view of a submission handed to the summarizer.
func SubmissionText(sub formdesk.Submission) (string, error) {
	data := sub.Data
	if data == nil {
		data = formdesk.SubmissionDataRecord{}
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", formdesk.NewInternalError("encode submission data", err)
	}
	customer := sub.CustomerName
	if customer == "" {
		customer = "N/A"
	}
	return fmt.Sprintf("Form: %s. Submitted by: %s. Customer: %s. Data: %s",
		sub.FormName, sub.SubmittedBy, customer, raw), nil
}

// MockSummary is returned when no summarizer is configured.
func MockSummary(text string) string {
	return fmt.Sprintf("AI Summary Feature: summarizer not configured. This is a mock summary. "+
		"The submission appears to be about: %q... It mentions key elements like [mock_element_1] and [mock_action_item_2].",
		truncateRunes(text, mockExcerptLength))
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
