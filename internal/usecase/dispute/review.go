package dispute

import (
	"context"
	"fmt"
	"strings"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	disputedto "github.com/LavaJover/shvark-refund-service/internal/usecase/dto/dispute"
	"github.com/LavaJover/shvark-refund-service/internal/usecase/workflow"
)

// StartReview assigns the dispute to an admin. Calling it again while the
// dispute is under review only reassigns it.
func (uc *DefaultDisputeUsecase) StartReview(ctx context.Context, actor *domain.Actor, disputeID string) (*domain.DisputeRequest, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	return uc.ProcessDisputeOperation(ctx, actor, &DisputeOperation{
		Name:      "start_review",
		DisputeID: disputeID,
		Apply: func(ctx context.Context, step *workflow.Step, dispute *domain.DisputeRequest) error {
			if dispute.Status != domain.DisputeOpen && dispute.Status != domain.DisputeUnderReview {
				return fmt.Errorf("%w: dispute is %s", domain.ErrInvalidState, dispute.Status)
			}
			adminID := step.Actor.UserID()
			dispute.ProcessedBy = &adminID
			dispute.Status = domain.DisputeUnderReview
			step.EmitDispute(domain.EventDisputeReviewStarted, dispute)
			return nil
		},
	})
}

// Resolve records the admin ruling. The dispute stays decided until the
// buyer acknowledges it.
func (uc *DefaultDisputeUsecase) Resolve(ctx context.Context, actor *domain.Actor, disputeID string, input *disputedto.ResolveDisputeInput) (*domain.DisputeRequest, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	decision := domain.DisputeStatus(strings.TrimSpace(input.Status))
	if decision != domain.DisputeApproved && decision != domain.DisputeRejected {
		return nil, fmt.Errorf("%w: invalid status %q, want approved or rejected", domain.ErrValidation, input.Status)
	}
	outcome := domain.DisputeOutcome(strings.TrimSpace(input.Outcome))
	if !outcome.MatchesDecision(decision) {
		return nil, fmt.Errorf("%w: invalid outcome %q for a %s dispute", domain.ErrValidation, input.Outcome, decision)
	}
	if input.AwardedAmount != nil && input.AwardedAmount.IsNegative() {
		return nil, fmt.Errorf("%w: awarded_amount must not be negative", domain.ErrValidation)
	}
	if outcome == domain.OutcomePartialRefund && (input.AwardedAmount == nil || !input.AwardedAmount.IsPositive()) {
		return nil, fmt.Errorf("%w: partial_refund needs a positive awarded_amount", domain.ErrValidation)
	}

	return uc.ProcessDisputeOperation(ctx, actor, &DisputeOperation{
		Name:      "resolve",
		DisputeID: disputeID,
		Apply: func(ctx context.Context, step *workflow.Step, dispute *domain.DisputeRequest) error {
			switch dispute.Status {
			case domain.DisputeOpen, domain.DisputeUnderReview:
			default:
				return fmt.Errorf("%w: dispute is already %s", domain.ErrInvalidState, dispute.Status)
			}
			if input.AwardedAmount != nil && input.AwardedAmount.GreaterThan(step.Parties.Order.TotalAmount) {
				return fmt.Errorf("%w: awarded_amount exceeds the order total %s", domain.ErrValidation, step.Parties.Order.TotalAmount.StringFixed(2))
			}

			adminID := step.Actor.UserID()
			now := step.Now
			dispute.ProcessedBy = &adminID
			dispute.Status = decision
			dispute.Outcome = outcome
			dispute.ResolvedAt = &now
			dispute.AdminNote = input.AdminNote

			refund := step.Refund
			if input.AwardedAmount != nil {
				amount := input.AwardedAmount.Round(2)
				dispute.AwardedAmount = &amount
				refund.AwardedAmount = &amount
			}
			if input.AdminNote != "" {
				refund.AdminNote = input.AdminNote
			}
			step.EmitDispute(domain.EventDisputeDecided, dispute)
			return nil
		},
	})
}
