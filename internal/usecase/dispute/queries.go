package dispute

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/LavaJover/shvark-refund-service/internal/usecase/workflow"
)

func (uc *DefaultDisputeUsecase) GetDispute(ctx context.Context, actor *domain.Actor, disputeID string) (*domain.DisputeRequest, error) {
	dispute, err := uc.store.GetDisputeByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}
	refund, err := uc.store.GetRefundByID(ctx, dispute.RefundID)
	if err != nil {
		return nil, err
	}
	parties, err := workflow.LoadParties(ctx, uc.store, refund)
	if err != nil {
		return nil, err
	}
	if parties.RolesOf(actor, refund) == 0 {
		return nil, fmt.Errorf("%w: user %d is not a party of dispute %s", domain.ErrForbidden, actor.UserID(), dispute.ID)
	}
	return dispute, nil
}
