package internal

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lychee-technology/formdesk"
	"go.uber.org/zap"
)

// FillOptions carries the collaborators of a fill session.
type FillOptions struct {
	Definitions formdesk.DefinitionRepository
	Submissions formdesk.SubmissionRepository
	Builder     *SubmissionBuilder
	Navigator   formdesk.Navigator
}

type fillSession struct {
	submissions formdesk.SubmissionRepository
	builder     *SubmissionBuilder

	state  formdesk.FillState
	def    *formdesk.FormDefinition
	record formdesk.SubmissionDataRecord
	errors formdesk.FieldValidationErrors
}

// OpenFillSession loads the definition and seeds the record. A missing form is not an
// error: the navigator is told and the session ends up redirected.
func OpenFillSession(ctx context.Context, opts FillOptions, formID uuid.UUID) (formdesk.FillSession, error) {
	s := &fillSession{
		submissions: opts.Submissions,
		builder:     opts.Builder,
		state:       formdesk.FillStateLoading,
		errors:      formdesk.FieldValidationErrors{},
	}
	if s.builder == nil {
		s.builder = NewSubmissionBuilder(nil, nil, nil)
	}
	if opts.Definitions == nil {
		return nil, formdesk.NewInternalError("fill session has no definition repository", nil)
	}

	def, err := opts.Definitions.Get(ctx, formID)
	if err != nil {
		if !formdesk.IsNotFound(err) {
			return nil, fmt.Errorf("load form %s: %w", formID, err)
		}
		zap.S().Infow("form not found, redirecting to form selection", "formId", formID)
		if opts.Navigator != nil {
			opts.Navigator.RedirectToFormSelection(ctx, formID)
		}
		s.state = formdesk.FillStateRedirected
		return s, nil
	}

	s.def = &def
	s.record = Instantiate(def)
	s.state = formdesk.FillStateReady
	return s, nil
}

func (s *fillSession) State() formdesk.FillState {
	return s.state
}

func (s *fillSession) Definition() (formdesk.FormDefinition, bool) {
	if s.def == nil {
		return formdesk.FormDefinition{}, false
	}
	return s.def.Clone(), true
}

func (s *fillSession) Record() formdesk.SubmissionDataRecord {
	return s.record.Clone()
}

func (s *fillSession) Errors() formdesk.FieldValidationErrors {
	return s.errors.Clone()
}

func (s *fillSession) SetValue(fieldName string, v formdesk.Value) error {
	if s.state != formdesk.FillStateReady {
		return formdesk.NewSessionClosedError(s.state)
	}
	if _, ok := s.def.FieldByName(fieldName); !ok {
		return formdesk.NewUnknownFieldError(fieldName)
	}
	s.record = ApplyInput(s.record, fieldName, v)
	delete(s.errors, fieldName)
	return nil
}

func (s *fillSession) SetInput(fieldName, raw string) error {
	if s.state != formdesk.FillStateReady {
		return formdesk.NewSessionClosedError(s.state)
	}
	field, ok := s.def.FieldByName(fieldName)
	if !ok {
		return formdesk.NewUnknownFieldError(fieldName)
	}
	v, err := ParseInput(field, raw)
	if err != nil {
		return err
	}
	return s.SetValue(fieldName, v)
}

func (s *fillSession) Submit(ctx context.Context) (*formdesk.Submission, error) {
	if s.state != formdesk.FillStateReady {
		return nil, formdesk.NewSessionClosedError(s.state)
	}

	errs := Validate(*s.def, s.record)
	s.errors = errs
	if len(errs) > 0 {
		EmitValidationFailed(ctx, len(errs))
		zap.S().Debugw("submission blocked by validation", "formId", s.def.ID, "failed", len(errs))
		return nil, formdesk.NewValidationFailedError(s.def.ID, errs)
	}

	sub := s.builder.Build(ctx, *s.def, s.record)
	if s.submissions != nil {
		if err := s.submissions.Append(ctx, sub); err != nil {
			return nil, fmt.Errorf("record submission for form %s: %w", s.def.ID, err)
		}
	}
	s.state = formdesk.FillStateSubmitted

	EmitSubmissionCreated(ctx)
	zap.S().Infow("submission created", "submissionId", sub.ID, "formId", sub.FormID, "formName", sub.FormName)
	return &sub, nil
}
