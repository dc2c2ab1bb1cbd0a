package formdesk

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeState      ErrorType = "state"
	ErrorTypeInternal   ErrorType = "internal"
	ErrorTypeConfig     ErrorType = "config"
)

// FormError is the structured error returned by formdesk operations.
type FormError struct {
	Type    ErrorType      `json:"type"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	FormID  *uuid.UUID     `json:"formId,omitempty"`
	Field   string         `json:"field,omitempty"`
	Details map[string]any `json:"details,omitempty"`
	Cause   error          `json:"-"`
}

func (e *FormError) Error() string {
	if e.FormID != nil {
		return fmt.Sprintf("[%s:%s] form %s: %s", e.Type, e.Code, e.FormID, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("[%s:%s] field '%s': %s", e.Type, e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
}

func (e *FormError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a single detail
func (e *FormError) WithDetail(key string, value any) *FormError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause adds a cause
func (e *FormError) WithCause(cause error) *FormError {
	e.Cause = cause
	return e
}

// WithForm adds form context
func (e *FormError) WithForm(id uuid.UUID) *FormError {
	e.FormID = &id
	return e
}

// WithField adds field context
func (e *FormError) WithField(field string) *FormError {
	e.Field = field
	return e
}

const (
	ErrCodeFormNotFound            = "FORM_NOT_FOUND"
	ErrCodeSubmissionNotFound      = "SUBMISSION_NOT_FOUND"
	ErrCodeValidationFailed        = "VALIDATION_FAILED"
	ErrCodeUnknownFieldType        = "UNKNOWN_FIELD_TYPE"
	ErrCodeUnknownField            = "UNKNOWN_FIELD"
	ErrCodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	ErrCodeRejectionReasonRequired = "REJECTION_REASON_REQUIRED"
	ErrCodeSessionClosed           = "SESSION_CLOSED"
	ErrCodeSchemaInvalid           = "SCHEMA_INVALID"
	ErrCodeInvalidFormRef          = "INVALID_FORM_REF"
	ErrCodeInternalError           = "INTERNAL_ERROR"
)

// NewFormError creates a new FormError
func NewFormError(errorType ErrorType, code, message string) *FormError {
	return &FormError{
		Type:    errorType,
		Code:    code,
		Message: message,
	}
}

// NewFormNotFoundError creates a form not found error
func NewFormNotFoundError(id uuid.UUID) *FormError {
	return NewFormError(ErrorTypeNotFound, ErrCodeFormNotFound, "form definition not found").WithForm(id)
}

// NewSubmissionNotFoundError creates a submission not found error
func NewSubmissionNotFoundError(id uuid.UUID) *FormError {
	return NewFormError(ErrorTypeNotFound, ErrCodeSubmissionNotFound, "submission not found").
		WithDetail("submissionId", id.String())
}

// NewValidationFailedError reports unmet required fields; the per-field messages travel in Details["fields"].
func NewValidationFailedError(formID uuid.UUID, fieldErrors FieldValidationErrors) *FormError {
	return NewFormError(ErrorTypeValidation, ErrCodeValidationFailed,
		fmt.Sprintf("%d field(s) failed validation", len(fieldErrors))).
		WithForm(formID).
		WithDetail("fields", fieldErrors.Clone())
}

// NewUnknownFieldTypeError rejects values outside the FieldType enumeration.
func NewUnknownFieldTypeError(t FieldType) *FormError {
	return NewFormError(ErrorTypeValidation, ErrCodeUnknownFieldType,
		fmt.Sprintf("unknown field type %q", string(t)))
}

// NewUnknownFieldError reports input for a name that is not on the form.
func NewUnknownFieldError(name string) *FormError {
	return NewFormError(ErrorTypeValidation, ErrCodeUnknownField, "no field with this name on the form").
		WithField(name)
}

// NewInvalidStatusTransitionError reports a review action on a submission that is no longer pending.
func NewInvalidStatusTransitionError(from, to ApprovalStatus) *FormError {
	return NewFormError(ErrorTypeState, ErrCodeInvalidStatusTransition,
		fmt.Sprintf("cannot move submission from %q to %q", from, to))
}

// NewSessionClosedError reports use of a fill session that is redirected or already submitted.
func NewSessionClosedError(state FillState) *FormError {
	return NewFormError(ErrorTypeState, ErrCodeSessionClosed,
		fmt.Sprintf("fill session is %s", state))
}

// NewInternalError creates an internal error
func NewInternalError(message string, cause error) *FormError {
	return NewFormError(ErrorTypeInternal, ErrCodeInternalError, message).WithCause(cause)
}

// IsNotFound reports whether err carries a not-found FormError.
func IsNotFound(err error) bool {
	var fe *FormError
	return errors.As(err, &fe) && fe.Type == ErrorTypeNotFound
}

// IsValidationFailed reports whether err is a blocked submission.
func IsValidationFailed(err error) bool {
	var fe *FormError
	return errors.As(err, &fe) && fe.Code == ErrCodeValidationFailed
}

// ValidationErrorsOf extracts the per-field messages from a VALIDATION_FAILED error.
func ValidationErrorsOf(err error) (FieldValidationErrors, bool) {
	var fe *FormError
	if !errors.As(err, &fe) || fe.Code != ErrCodeValidationFailed {
		return nil, false
	}
	fields, ok := fe.Details["fields"].(FieldValidationErrors)
	return fields, ok
}
