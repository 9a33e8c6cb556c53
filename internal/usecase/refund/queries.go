package refund

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	refunddto "github.com/LavaJover/shvark-refund-service/internal/usecase/dto/refund"
	"github.com/LavaJover/shvark-refund-service/internal/usecase/workflow"
)

func (uc *DefaultRefundUsecase) GetRefund(ctx context.Context, actor *domain.Actor, refundID string) (*domain.RefundDetails, error) {
	refund, err := uc.store.GetRefundByID(ctx, refundID)
	if err != nil {
		return nil, err
	}
	parties, err := workflow.LoadParties(ctx, uc.store, refund)
	if err != nil {
		return nil, err
	}
	if parties.RolesOf(actor, refund) == 0 {
		return nil, fmt.Errorf("%w: user %d is not a party of refund %s", domain.ErrForbidden, actor.UserID(), refund.ID)
	}

	details := &domain.RefundDetails{Refund: refund}
	if details.CounterOffers, err = uc.store.ListCounterOffers(ctx, refund.ID); err != nil {
		return nil, err
	}
	if details.Proofs, err = uc.store.ListProofs(ctx, refund.ID); err != nil {
		return nil, err
	}
	if details.ReturnRequest, err = optional(uc.store.GetReturnRequestByRefundID(ctx, refund.ID)); err != nil {
		return nil, err
	}
	if details.ReturnAddress, err = optional(uc.store.GetReturnAddress(ctx, refund.ID)); err != nil {
		return nil, err
	}
	if details.Dispute, err = optional(uc.store.GetDisputeByRefundID(ctx, refund.ID)); err != nil {
		return nil, err
	}
	return details, nil
}

// ListRefunds shows staff every refund; everyone else sees refunds they
// requested plus those against shops they own.
func (uc *DefaultRefundUsecase) ListRefunds(ctx context.Context, actor *domain.Actor, input *refunddto.ListRefundsInput) (*refunddto.ListRefundsOutput, error) {
	filter := domain.RefundFilter{Page: input.Page, Limit: input.Limit}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if s := strings.TrimSpace(input.Status); s != "" {
		status := domain.RefundStatus(s)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, input.Status)
		}
		filter.Status = &status
	}

	if !actor.User.Staff() {
		buyerID := actor.UserID()
		filter.BuyerID = &buyerID
		shopIDs, err := uc.store.ListShopIDsByOwner(ctx, buyerID)
		if err != nil {
			return nil, err
		}
		if actor.ShopID != nil {
			shopIDs = scopeShops(shopIDs, *actor.ShopID)
		}
		filter.ShopIDs = shopIDs
	}

	refunds, total, err := uc.store.ListRefunds(ctx, filter)
	if err != nil {
		return nil, err
	}
	page, limit := filter.Page, filter.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return &refunddto.ListRefundsOutput{Refunds: refunds, Total: total, Page: page, Limit: limit}, nil
}

func scopeShops(owned []int64, scope int64) []int64 {
	for _, id := range owned {
		if id == scope {
			return []int64{scope}
		}
	}
	return nil
}

func optional[T any](v *T, err error) (*T, error) {
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return v, err
}
