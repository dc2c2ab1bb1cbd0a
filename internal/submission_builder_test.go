package internal

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lychee-technology/formdesk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionBuilder_Build(t *testing.T) {
	clock := newStepClock()
	b := NewSubmissionBuilder(&seqIDs{}, clock, NewStaticIdentity("Dana Field"))
	def := inspectionForm()
	record := Instantiate(def)

	sub := b.Build(context.Background(), def, record)

	assert.Equal(t, uuid.MustParse("00000000-0000-7000-8000-000000000001"), sub.ID)
	assert.Equal(t, def.ID, sub.FormID)
	assert.Equal(t, def.Name, sub.FormName)
	assert.Equal(t, "Dana Field", sub.SubmittedBy)
	assert.Equal(t, formdesk.ApprovalStatusPending, sub.Status)
	assert.False(t, sub.SubmissionDate.IsZero())
	assert.Equal(t, record, sub.Data)

	record["customer"] = formdesk.StringValue("later edit")
	assert.Equal(t, formdesk.StringValue(""), sub.Data["customer"])
}

func TestSubmissionBuilder_Defaults(t *testing.T) {
	b := NewSubmissionBuilder(nil, nil, nil)
	def := inspectionForm()

	first := b.Build(context.Background(), def, nil)
	second := b.Build(context.Background(), def, nil)

	assert.Equal(t, "Current User", first.SubmittedBy)
	assert.NotNil(t, first.Data)
	require.NotEqual(t, first.ID, second.ID)
	assert.False(t, second.SubmissionDate.Before(first.SubmissionDate))
}
