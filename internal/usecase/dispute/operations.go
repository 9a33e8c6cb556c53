package dispute

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/LavaJover/shvark-refund-service/internal/usecase/workflow"
)

// DisputeOperation is one step on an existing dispute. The refund row is
// locked first, then the dispute, so dispute steps and refund steps on the
// same refund serialize.
type DisputeOperation struct {
	Name      string
	DisputeID string
	// Apply runs inside the transaction with both rows locked.
	Apply func(ctx context.Context, step *workflow.Step, dispute *domain.DisputeRequest) error
}

func (uc *DefaultDisputeUsecase) ProcessDisputeOperation(ctx context.Context, actor *domain.Actor, op *DisputeOperation) (*domain.DisputeRequest, error) {
	// the refund id never changes, so an unlocked read is enough to find it
	current, err := uc.store.GetDisputeByID(ctx, op.DisputeID)
	if err != nil {
		return nil, err
	}

	var updated *domain.DisputeRequest
	_, err = uc.exec.Run(ctx, workflow.Operation{Name: op.Name, RefundID: current.RefundID, Dispute: true}, actor,
		func(ctx context.Context, step *workflow.Step) error {
			dispute, err := step.Tx.GetDisputeForUpdate(ctx, op.DisputeID)
			if err != nil {
				return err
			}
			if err := op.Apply(ctx, step, dispute); err != nil {
				return err
			}
			dispute.UpdatedAt = step.Now
			if err := step.Tx.UpdateDispute(ctx, dispute); err != nil {
				return err
			}
			updated = dispute
			return nil
		})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func requireStaff(actor *domain.Actor) error {
	if actor == nil || !actor.User.Staff() {
		return fmt.Errorf("%w: user %d is not an admin", domain.ErrForbidden, actor.UserID())
	}
	return nil
}
