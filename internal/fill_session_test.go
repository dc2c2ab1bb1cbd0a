package internal

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lychee-technology/formdesk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fillFixture struct {
	defs        *MemoryDefinitionRepository
	submissions *MemorySubmissionRepository
	navigator   *recordingNavigator
	opts        FillOptions
	form        formdesk.FormDefinition
}

func newFillFixture(t *testing.T) *fillFixture {
	t.Helper()
	f := &fillFixture{
		defs:        NewMemoryDefinitionRepository(),
		submissions: NewMemorySubmissionRepository(),
		navigator:   &recordingNavigator{},
		form:        inspectionForm(),
	}
	require.NoError(t, f.defs.Upsert(context.Background(), f.form))
	f.opts = FillOptions{
		Definitions: f.defs,
		Submissions: f.submissions,
		Builder:     NewSubmissionBuilder(&seqIDs{}, newStepClock(), NewStaticIdentity("Dana Field")),
		Navigator:   f.navigator,
	}
	return f
}

func TestOpenFillSession_Ready(t *testing.T) {
	f := newFillFixture(t)

	s, err := OpenFillSession(context.Background(), f.opts, f.form.ID)
	require.NoError(t, err)

	assert.Equal(t, formdesk.FillStateReady, s.State())
	def, ok := s.Definition()
	require.True(t, ok)
	assert.Equal(t, f.form, def)
	assert.Equal(t, Instantiate(f.form), s.Record())
	assert.Empty(t, s.Errors())
	assert.Empty(t, f.navigator.redirects)
}

func TestOpenFillSession_MissingFormRedirects(t *testing.T) {
	f := newFillFixture(t)
	missing := uuid.New()

	s, err := OpenFillSession(context.Background(), f.opts, missing)
	require.NoError(t, err)

	assert.Equal(t, formdesk.FillStateRedirected, s.State())
	assert.Equal(t, []uuid.UUID{missing}, f.navigator.redirects)
	_, ok := s.Definition()
	assert.False(t, ok)

	err = s.SetValue("customer", formdesk.StringValue("x"))
	assertFormErrorCode(t, err, formdesk.ErrCodeSessionClosed)
	_, err = s.Submit(context.Background())
	assertFormErrorCode(t, err, formdesk.ErrCodeSessionClosed)
}

func TestOpenFillSession_NoRepository(t *testing.T) {
	_, err := OpenFillSession(context.Background(), FillOptions{}, uuid.New())
	require.Error(t, err)
}

func TestFillSession_SubmitBlockedByValidation(t *testing.T) {
	events := captureTelemetry(t)
	f := newFillFixture(t)
	s, err := OpenFillSession(context.Background(), f.opts, f.form.ID)
	require.NoError(t, err)

	sub, err := s.Submit(context.Background())
	assert.Nil(t, sub)
	require.True(t, formdesk.IsValidationFailed(err))

	fieldErrs, ok := formdesk.ValidationErrorsOf(err)
	require.True(t, ok)
	assert.Equal(t, s.Errors(), fieldErrs)
	assert.Len(t, fieldErrs, 3)
	assert.Equal(t, formdesk.FillStateReady, s.State())

	all, _ := f.submissions.List(context.Background())
	assert.Empty(t, all)

	require.Len(t, *events, 1)
	assert.Equal(t, MetricValidationFailed, (*events)[0].name)
	assert.Equal(t, int64(3), (*events)[0].value)
}

func TestFillSession_EditingClearsOnlyThatError(t *testing.T) {
	f := newFillFixture(t)
	s, _ := OpenFillSession(context.Background(), f.opts, f.form.ID)
	_, _ = s.Submit(context.Background())
	require.Len(t, s.Errors(), 3)

	require.NoError(t, s.SetValue("customer", formdesk.StringValue("ACME")))

	errs := s.Errors()
	assert.NotContains(t, errs, "customer")
	assert.Contains(t, errs, "hours")
	assert.Contains(t, errs, "safe")
}

func TestFillSession_SetInput(t *testing.T) {
	f := newFillFixture(t)
	s, _ := OpenFillSession(context.Background(), f.opts, f.form.ID)

	require.NoError(t, s.SetInput("hours", "7.5"))
	require.NoError(t, s.SetInput("safe", "on"))

	record := s.Record()
	assert.Equal(t, formdesk.NumberValue(7.5), record["hours"])
	assert.Equal(t, formdesk.BoolValue(true), record["safe"])

	err := s.SetInput("safe", "perhaps")
	require.Error(t, err)
	assert.Equal(t, formdesk.BoolValue(true), s.Record()["safe"])
}

func TestFillSession_NonFiniteNumberInputStaysText(t *testing.T) {
	ctx := context.Background()
	for _, raw := range []string{"Infinity", "NaN", "inf"} {
		t.Run(raw, func(t *testing.T) {
			f := newFillFixture(t)
			s, _ := OpenFillSession(ctx, f.opts, f.form.ID)
			require.NoError(t, s.SetValue("customer", formdesk.StringValue("ACME")))
			require.NoError(t, s.SetValue("safe", formdesk.BoolValue(true)))
			require.NoError(t, s.SetInput("hours", raw))

			sub, err := s.Submit(ctx)
			require.NoError(t, err)
			assert.Equal(t, formdesk.StringValue(raw), sub.Data["hours"])

			svc := NewSummaryService(f.submissions, nil, formdesk.SummaryConfig{})
			text, err := svc.Summarize(ctx, sub.ID)
			require.NoError(t, err)
			assert.Contains(t, text, "mock summary")
		})
	}
}

func TestFillSession_UnknownField(t *testing.T) {
	f := newFillFixture(t)
	s, _ := OpenFillSession(context.Background(), f.opts, f.form.ID)

	assertFormErrorCode(t, s.SetValue("nope", formdesk.StringValue("x")), formdesk.ErrCodeUnknownField)
	assertFormErrorCode(t, s.SetInput("nope", "x"), formdesk.ErrCodeUnknownField)
	assert.NotContains(t, s.Record(), "nope")
}

func TestFillSession_RecordIsACopy(t *testing.T) {
	f := newFillFixture(t)
	s, _ := OpenFillSession(context.Background(), f.opts, f.form.ID)

	record := s.Record()
	record["customer"] = formdesk.StringValue("mutated")

	assert.Equal(t, formdesk.StringValue(""), s.Record()["customer"])
}

func TestFillSession_Submit(t *testing.T) {
	events := captureTelemetry(t)
	ctx := context.Background()
	f := newFillFixture(t)
	s, _ := OpenFillSession(ctx, f.opts, f.form.ID)

	require.NoError(t, s.SetValue("customer", formdesk.StringValue("ACME")))
	require.NoError(t, s.SetInput("hours", "3"))
	require.NoError(t, s.SetValue("safe", formdesk.BoolValue(true)))

	sub, err := s.Submit(ctx)
	require.NoError(t, err)
	require.NotNil(t, sub)

	assert.Equal(t, f.form.ID, sub.FormID)
	assert.Equal(t, "Site Inspection", sub.FormName)
	assert.Equal(t, "Dana Field", sub.SubmittedBy)
	assert.Equal(t, formdesk.ApprovalStatusPending, sub.Status)
	assert.Equal(t, formdesk.StringValue("ACME"), sub.Data["customer"])
	assert.Equal(t, formdesk.NumberValue(1), sub.Data["visits"])
	assert.Equal(t, formdesk.FillStateSubmitted, s.State())
	assert.Empty(t, s.Errors())

	stored, err := f.submissions.Get(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, *sub, stored)

	_, err = s.Submit(ctx)
	assertFormErrorCode(t, err, formdesk.ErrCodeSessionClosed)

	require.NotEmpty(t, *events)
	assert.Equal(t, MetricSubmissionCreated, (*events)[len(*events)-1].name)
}

func TestFillSession_SubmissionDataDetached(t *testing.T) {
	ctx := context.Background()
	f := newFillFixture(t)
	s, _ := OpenFillSession(ctx, f.opts, f.form.ID)
	_ = s.SetValue("customer", formdesk.StringValue("ACME"))
	_ = s.SetValue("hours", formdesk.NumberValue(1))
	_ = s.SetValue("safe", formdesk.BoolValue(true))

	sub, err := s.Submit(ctx)
	require.NoError(t, err)
	sub.Data["customer"] = formdesk.StringValue("changed")

	stored, _ := f.submissions.Get(ctx, sub.ID)
	assert.Equal(t, formdesk.StringValue("ACME"), stored.Data["customer"])
}

func assertFormErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var fe *formdesk.FormError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, code, fe.Code)
}
