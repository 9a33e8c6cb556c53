package dispute

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/LavaJover/shvark-refund-service/internal/usecase/workflow"
)

// Acknowledge closes a decided dispute. It is the one place where the
// refund status and payment status move to completed together.
func (uc *DefaultDisputeUsecase) Acknowledge(ctx context.Context, actor *domain.Actor, disputeID string) (*domain.DisputeRequest, error) {
	return uc.ProcessDisputeOperation(ctx, actor, &DisputeOperation{
		Name:      "acknowledge",
		DisputeID: disputeID,
		Apply: func(ctx context.Context, step *workflow.Step, dispute *domain.DisputeRequest) error {
			if err := step.Require(workflow.RoleBuyer); err != nil {
				return err
			}
			if !dispute.Status.Decided() {
				return fmt.Errorf("%w: only an approved or rejected dispute can be acknowledged, this one is %s",
					domain.ErrInvalidState, dispute.Status)
			}

			refund := step.Refund
			wasPaid := refund.RefundPaymentStatus == domain.PaymentCompleted
			compelled := dispute.CompelsPayment()

			dispute.Status = domain.DisputeResolved
			refund.Status = domain.RefundCompleted
			refund.RefundPaymentStatus = domain.PaymentCompleted
			if compelled && !wasPaid {
				if err := workflow.CreditWallet(ctx, uc.wallet, step); err != nil {
					return err
				}
			}
			step.EmitDispute(domain.EventDisputeAcknowledged, dispute)
			step.EmitDispute(domain.EventRefundCompleted, dispute)
			return nil
		},
	})
}

// Withdraw lets the buyer drop a dispute that has not been decided yet.
func (uc *DefaultDisputeUsecase) Withdraw(ctx context.Context, actor *domain.Actor, disputeID string) (*domain.DisputeRequest, error) {
	return uc.ProcessDisputeOperation(ctx, actor, &DisputeOperation{
		Name:      "withdraw",
		DisputeID: disputeID,
		Apply: func(ctx context.Context, step *workflow.Step, dispute *domain.DisputeRequest) error {
			if err := step.Require(workflow.RoleBuyer); err != nil {
				return err
			}
			if dispute.Status != domain.DisputeOpen && dispute.Status != domain.DisputeUnderReview {
				return fmt.Errorf("%w: dispute is %s", domain.ErrInvalidState, dispute.Status)
			}
			now := step.Now
			dispute.Status = domain.DisputeResolved
			dispute.Outcome = domain.OutcomeWithdrawn
			dispute.ResolvedAt = &now

			original := dispute.RefundStatusOriginal
			if original == "" {
				original = domain.RefundRejected
			}
			step.Refund.Status = original
			step.EmitDispute(domain.EventDisputeWithdrawn, dispute)
			return nil
		},
	})
}
