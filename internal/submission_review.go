package internal

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lychee-technology/formdesk"
	"go.uber.org/zap"
)

type submissionReviewer struct {
	repo formdesk.SubmissionRepository
}

// NewSubmissionReviewer decides pending submissions stored in repo.
func NewSubmissionReviewer(repo formdesk.SubmissionRepository) formdesk.SubmissionReviewer {
	return &submissionReviewer{repo: repo}
}

func (r *submissionReviewer) Approve(ctx context.Context, id uuid.UUID) (*formdesk.Submission, error) {
	return r.decide(ctx, id, formdesk.ApprovalStatusApproved, "")
}

// Reject requires a non-blank reason, which is kept on the submission.
func (r *submissionReviewer) Reject(ctx context.Context, id uuid.UUID, reason string) (*formdesk.Submission, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, formdesk.NewFormError(formdesk.ErrorTypeValidation, formdesk.ErrCodeRejectionReasonRequired,
			"a reason is required to reject a submission").WithDetail("submissionId", id.String())
	}
	return r.decide(ctx, id, formdesk.ApprovalStatusRejected, reason)
}

func (r *submissionReviewer) decide(ctx context.Context, id uuid.UUID, to formdesk.ApprovalStatus, reason string) (*formdesk.Submission, error) {
	if r.repo == nil {
		return nil, formdesk.NewInternalError("reviewer has no submission repository", nil)
	}
	sub, err := r.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status != formdesk.ApprovalStatusPending {
		return nil, formdesk.NewInvalidStatusTransitionError(sub.Status, to).WithDetail("submissionId", id.String())
	}

	sub.Status = to
	sub.RejectionReason = reason
	if err := r.repo.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("update submission %s: %w", id, err)
	}

	EmitSubmissionReviewed(ctx, string(to))
	zap.S().Infow("submission reviewed", "submissionId", id, "formId", sub.FormID, "status", to)
	return &sub, nil
}
