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

const (
	actionApprove   = "approve"
	actionReject    = "reject"
	actionNegotiate = "negotiate"
	actionAccept    = "accept"
)

func (uc *DefaultRefundUsecase) SellerRespond(ctx context.Context, actor *domain.Actor, refundID string, input *refunddto.SellerResponseInput) (*domain.Refund, error) {
	action := strings.ToLower(strings.TrimSpace(input.Action))
	return uc.exec.Run(ctx, refundOp("seller_respond."+opSuffix(action), refundID), actor, func(ctx context.Context, step *workflow.Step) error {
		if err := step.Require(workflow.RoleSeller); err != nil {
			return err
		}
		switch action {
		case actionApprove:
			return uc.sellerApprove(ctx, step, input)
		case actionReject:
			return uc.sellerReject(ctx, step)
		case actionNegotiate:
			return uc.sellerNegotiate(ctx, step, input)
		}
		return fmt.Errorf("%w: invalid action %q", domain.ErrValidation, input.Action)
	})
}

func (uc *DefaultRefundUsecase) sellerApprove(ctx context.Context, step *workflow.Step, input *refunddto.SellerResponseInput) error {
	refund := step.Refund
	if refund.Status != domain.RefundPending && refund.Status != domain.RefundNegotiation {
		return fmt.Errorf("%w: a %s refund cannot be approved", domain.ErrInvalidState, refund.Status)
	}
	method := domain.RefundMethod(input.FinalRefundMethod)
	if method == "" {
		method = refund.BuyerPreferredRefundMethod
	}
	if !method.Valid() {
		return fmt.Errorf("%w: invalid final_refund_method %q", domain.ErrValidation, method)
	}
	if err := requireReturnAddress(ctx, step, method); err != nil {
		return err
	}
	if err := step.Tx.SupersedePendingCounterOffers(ctx, refund.ID); err != nil {
		return err
	}
	refund.Approve(method, step.Now)
	if err := uc.openReturnIfNeeded(ctx, step); err != nil {
		return err
	}
	step.Emit(domain.EventRefundApproved)
	return nil
}

func (uc *DefaultRefundUsecase) sellerReject(ctx context.Context, step *workflow.Step) error {
	refund := step.Refund
	if refund.Status != domain.RefundPending && refund.Status != domain.RefundNegotiation {
		return fmt.Errorf("%w: a %s refund cannot be rejected", domain.ErrInvalidState, refund.Status)
	}
	if err := step.Tx.SupersedePendingCounterOffers(ctx, refund.ID); err != nil {
		return err
	}
	refund.Status = domain.RefundRejected
	step.Emit(domain.EventRefundRejected)
	return nil
}

func (uc *DefaultRefundUsecase) sellerNegotiate(ctx context.Context, step *workflow.Step, input *refunddto.SellerResponseInput) error {
	refund := step.Refund
	switch refund.Status {
	case domain.RefundPending, domain.RefundApproved, domain.RefundNegotiation:
	default:
		return fmt.Errorf("%w: cannot negotiate a %s refund", domain.ErrInvalidState, refund.Status)
	}
	if refund.RefundPaymentStatus != domain.PaymentPending {
		return fmt.Errorf("%w: payment is already %s", domain.ErrInvalidState, refund.RefundPaymentStatus)
	}

	method := domain.RefundMethod(strings.TrimSpace(input.CounterRefundMethod))
	if method != "" && !method.Valid() {
		return fmt.Errorf("%w: invalid counter_refund_method %q", domain.ErrValidation, input.CounterRefundMethod)
	}
	refundType := domain.RefundType(strings.TrimSpace(input.CounterRefundType))
	if refundType != "" && !refundType.Valid() {
		return fmt.Errorf("%w: invalid counter_refund_type %q", domain.ErrValidation, input.CounterRefundType)
	}
	if err := requireReturnAddress(ctx, step, method); err != nil {
		return err
	}

	if err := step.Tx.SupersedePendingCounterOffers(ctx, refund.ID); err != nil {
		return err
	}
	offer := &domain.CounterRefundRequest{
		ID:                  workflow.NewID(),
		RefundID:            refund.ID,
		CounterRefundMethod: method,
		CounterRefundType:   refundType,
		Notes:               input.CounterNotes,
		Status:              domain.CounterOfferPending,
		RequestedBy:         step.Actor.UserID(),
		RequestedAt:         step.Now,
	}
	if err := step.Tx.CreateCounterOffer(ctx, offer); err != nil {
		return err
	}
	refund.Status = domain.RefundNegotiation
	step.Emit(domain.EventCounterOfferCreated)
	return nil
}

func (uc *DefaultRefundUsecase) RespondToNegotiation(ctx context.Context, actor *domain.Actor, refundID string, input *refunddto.NegotiationResponseInput) (*domain.Refund, error) {
	action := strings.ToLower(strings.TrimSpace(input.Action))
	return uc.exec.Run(ctx, refundOp("respond_to_negotiation."+opSuffix(action), refundID), actor, func(ctx context.Context, step *workflow.Step) error {
		if err := step.Require(workflow.RoleBuyer); err != nil {
			return err
		}
		if action != actionAccept && action != actionReject {
			return fmt.Errorf("%w: invalid action %q", domain.ErrValidation, input.Action)
		}
		if step.Refund.Status != domain.RefundNegotiation {
			return fmt.Errorf("%w: a %s refund has no open negotiation", domain.ErrInvalidState, step.Refund.Status)
		}
		offer, err := step.Tx.GetLatestPendingCounterOffer(ctx, step.Refund.ID)
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: no pending counter-offer for refund %s", domain.ErrNotFound, step.Refund.ID)
		}
		if err != nil {
			return err
		}

		now := step.Now
		offer.RespondedAt = &now
		offer.ResponseReason = input.Reason
		if action == actionReject {
			offer.Status = domain.CounterOfferRejected
			if err := step.Tx.UpdateCounterOffer(ctx, offer); err != nil {
				return err
			}
			step.Emit(domain.EventCounterOfferRejected)
			return nil
		}

		if err := requireReturnAddress(ctx, step, offer.CounterRefundMethod); err != nil {
			return err
		}
		offer.Status = domain.CounterOfferAccepted
		if err := step.Tx.UpdateCounterOffer(ctx, offer); err != nil {
			return err
		}

		refund := step.Refund
		method := offer.CounterRefundMethod
		if method == "" && refund.FinalRefundMethod == "" {
			method = refund.BuyerPreferredRefundMethod
		}
		refund.Approve(method, now)
		if offer.CounterRefundType != "" {
			refund.RefundType = offer.CounterRefundType
		}
		if err := uc.openReturnIfNeeded(ctx, step); err != nil {
			return err
		}
		step.Emit(domain.EventCounterOfferAccepted)
		return nil
	})
}

// requireReturnAddress enforces that return:* methods know where to ship.
func requireReturnAddress(ctx context.Context, step *workflow.Step, method domain.RefundMethod) error {
	if !method.RequiresReturn() {
		return nil
	}
	_, err := step.Tx.GetReturnAddress(ctx, step.Refund.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: Return address required before offering %s", domain.ErrValidation, method)
	}
	return err
}

func opSuffix(action string) string {
	switch action {
	case actionApprove, actionReject, actionNegotiate, actionAccept:
		return action
	}
	return "unknown"
}
