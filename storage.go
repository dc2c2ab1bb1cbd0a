package formdesk

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefinitionRepository is the collection of saved form definitions.
type DefinitionRepository interface {
	// List returns saved definitions in save order.
	List(ctx context.Context) ([]FormDefinition, error)
	Get(ctx context.Context, id uuid.UUID) (FormDefinition, error)
	// Upsert overwrites the entry with the same id or appends a new one.
	Upsert(ctx context.Context, def FormDefinition) error
}

// SubmissionRepository is the submission list consumed by list/detail views.
type SubmissionRepository interface {
	// Append places the submission at the top of the list.
	Append(ctx context.Context, sub Submission) error
	// List returns submissions newest first.
	List(ctx context.Context) ([]Submission, error)
	Get(ctx context.Context, id uuid.UUID) (Submission, error)
	Update(ctx context.Context, sub Submission) error
}

// IdentityProvider supplies the submittedBy value for new submissions.
type IdentityProvider interface {
	CurrentUser(ctx context.Context) string
}

// IDGenerator produces opaque identifiers for definitions, fields and submissions.
type IDGenerator interface {
	NewID() uuid.UUID
}

// Clock supplies timestamps.
type Clock interface {
	Now() time.Time
}

// Navigator is told when a fill session cannot find its form.
type Navigator interface {
	RedirectToFormSelection(ctx context.Context, missing uuid.UUID)
}

// Summarizer is a remote text summarization service.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// FormBuilder edits one in-progress form definition.
type FormBuilder interface {
	// Definition returns a snapshot of the in-progress definition.
	Definition() FormDefinition
	SelectedField() (Field, bool)
	SelectField(id uuid.UUID) bool
	ClearSelection()

	AddField(t FieldType) (Field, error)
	UpdateField(id uuid.UUID, patch FieldPatch) bool
	RemoveField(id uuid.UUID) bool
	MoveField(id uuid.UUID, to int) bool
	UpdateFormMeta(patch FormMetaPatch)

	Save(ctx context.Context) error
	Clear()
}

// FillSession is one data-entry pass over a saved definition.
type FillSession interface {
	State() FillState
	Definition() (FormDefinition, bool)
	Record() SubmissionDataRecord
	Errors() FieldValidationErrors

	// SetValue stores a typed value under fieldName and clears that field's error.
	SetValue(fieldName string, v Value) error
	// SetInput parses raw text according to the field type, then behaves like SetValue.
	SetInput(fieldName, raw string) error
	// Submit validates the record and, when it passes, records the submission.
	Submit(ctx context.Context) (*Submission, error)
}

// SubmissionReviewer moves pending submissions to a final status.
type SubmissionReviewer interface {
	Approve(ctx context.Context, id uuid.UUID) (*Submission, error)
	Reject(ctx context.Context, id uuid.UUID, reason string) (*Submission, error)
}

// SubmissionSummaries produces a readable summary of a stored submission.
type SubmissionSummaries interface {
	Summarize(ctx context.Context, submissionID uuid.UUID) (string, error)
}
