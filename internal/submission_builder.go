package internal

import (
	"context"

	"github.com/lychee-technology/formdesk"
)

// SubmissionBuilder packages a validated record into a pending submission.
type SubmissionBuilder struct {
	ids      formdesk.IDGenerator
	clock    formdesk.Clock
	identity formdesk.IdentityProvider
}

func NewSubmissionBuilder(ids formdesk.IDGenerator, clock formdesk.Clock, identity formdesk.IdentityProvider) *SubmissionBuilder {
	if ids == nil {
		ids = NewUUIDGenerator()
	}
	if clock == nil {
		clock = NewSystemClock()
	}
	if identity == nil {
		identity = NewStaticIdentity(formdesk.DefaultConfig().Submission.DefaultSubmittedBy)
	}
	return &SubmissionBuilder{ids: ids, clock: clock, identity: identity}
}

// Build never fails and does not re-validate the record.
func (b *SubmissionBuilder) Build(ctx context.Context, def formdesk.FormDefinition, record formdesk.SubmissionDataRecord) formdesk.Submission {
	data := record.Clone()
	if data == nil {
		data = formdesk.SubmissionDataRecord{}
	}
	return formdesk.Submission{
		ID:             b.ids.NewID(),
		FormID:         def.ID,
		FormName:       def.Name,
		SubmittedBy:    b.identity.CurrentUser(ctx),
		SubmissionDate: b.clock.Now(),
		Status:         formdesk.ApprovalStatusPending,
		Data:           data,
	}
}
