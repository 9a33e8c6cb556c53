package dispute

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	disputedto "github.com/LavaJover/shvark-refund-service/internal/usecase/dto/dispute"
	"github.com/LavaJover/shvark-refund-service/internal/usecase/workflow"
)

// FileDispute escalates a refund the buyer could not settle with the seller.
func (uc *DefaultDisputeUsecase) FileDispute(ctx context.Context, actor *domain.Actor, input *disputedto.FileDisputeInput) (*domain.DisputeRequest, error) {
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", domain.ErrValidation)
	}

	var dispute *domain.DisputeRequest
	op := workflow.Operation{Name: "file", RefundID: input.RefundID, Dispute: true}
	_, err := uc.exec.Run(ctx, op, actor, func(ctx context.Context, step *workflow.Step) error {
		if err := step.Require(workflow.RoleBuyer); err != nil {
			return err
		}
		refund := step.Refund
		existing, err := step.Tx.GetDisputeByRefundID(ctx, refund.ID)
		if err == nil {
			return fmt.Errorf("%w: refund already has dispute %s", domain.ErrInvalidState, existing.ID)
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		eligible, err := eligibleForDispute(ctx, step)
		if err != nil {
			return err
		}
		if !eligible {
			return fmt.Errorf("%w: a %s refund cannot be disputed", domain.ErrInvalidState, refund.Status)
		}

		dispute = &domain.DisputeRequest{
			ID:                   workflow.NewID(),
			RefundID:             refund.ID,
			RequestedBy:          step.Actor.UserID(),
			Reason:               reason,
			Status:               domain.DisputeOpen,
			RefundStatusOriginal: refund.Status,
		}
		if err := step.Tx.CreateDispute(ctx, dispute); err != nil {
			return err
		}
		// Open offers die with the escalation; the admin ruling replaces them.
		if err := step.Tx.SupersedePendingCounterOffers(ctx, refund.ID); err != nil {
			return err
		}
		refund.Status = domain.RefundDispute
		step.EmitDispute(domain.EventDisputeFiled, dispute)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dispute, nil
}

// eligibleForDispute: the seller rejected the refund, negotiation stalled,
// or the seller rejected the returned item.
func eligibleForDispute(ctx context.Context, step *workflow.Step) (bool, error) {
	switch step.Refund.Status {
	case domain.RefundRejected, domain.RefundNegotiation:
		return true, nil
	case domain.RefundCancelled, domain.RefundCompleted, domain.RefundDispute:
		return false, nil
	}
	rr, err := step.Tx.GetReturnRequestByRefundID(ctx, step.Refund.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return rr.Status == domain.ReturnRejected, nil
}
