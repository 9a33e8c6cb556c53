package refund

import (
	"context"
	"fmt"
	"strings"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	refunddto "github.com/LavaJover/shvark-refund-service/internal/usecase/dto/refund"
	"github.com/LavaJover/shvark-refund-service/internal/usecase/workflow"
)

func (uc *DefaultRefundUsecase) CreateRefund(ctx context.Context, actor *domain.Actor, input *refunddto.CreateRefundInput) (*domain.Refund, error) {
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", domain.ErrValidation)
	}
	method := domain.RefundMethod(input.BuyerPreferredRefundMethod)
	if !method.Valid() {
		return nil, fmt.Errorf("%w: invalid buyer_preferred_refund_method %q", domain.ErrValidation, input.BuyerPreferredRefundMethod)
	}
	refundType := domain.RefundType(input.RefundType)
	if refundType == "" {
		refundType = domain.RefundTypeKeep
		if method.RequiresReturn() {
			refundType = domain.RefundTypeReturn
		}
	}
	if !refundType.Valid() {
		return nil, fmt.Errorf("%w: invalid refund_type %q", domain.ErrValidation, input.RefundType)
	}

	op := workflow.Operation{Name: "create", LockKey: "order:" + input.OrderID}
	return uc.exec.Create(ctx, op, actor, func(ctx context.Context, step *workflow.Step) error {
		order, err := step.Tx.GetOrderByID(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if order.BuyerID != actor.UserID() {
			return fmt.Errorf("%w: order %s belongs to another buyer", domain.ErrForbidden, order.ID)
		}
		open, err := step.Tx.HasActiveRefundForOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		if open {
			return fmt.Errorf("%w: order %s already has an open refund", domain.ErrInvalidState, order.ID)
		}

		refund := &domain.Refund{
			ID:                         workflow.NewID(),
			OrderID:                    order.ID,
			RequestedBy:                actor.UserID(),
			Reason:                     reason,
			BuyerPreferredRefundMethod: method,
			RefundType:                 refundType,
			Status:                     domain.RefundPending,
			RefundPaymentStatus:        domain.PaymentPending,
		}
		if err := step.Tx.CreateRefund(ctx, refund); err != nil {
			return err
		}
		step.Refund = refund
		step.Emit(domain.EventRefundCreated)
		return nil
	})
}

func (uc *DefaultRefundUsecase) CancelRefund(ctx context.Context, actor *domain.Actor, refundID string) (*domain.Refund, error) {
	return uc.exec.Run(ctx, refundOp("cancel", refundID), actor, func(ctx context.Context, step *workflow.Step) error {
		if err := step.Require(workflow.RoleBuyer); err != nil {
			return err
		}
		refund := step.Refund
		if refund.Status != domain.RefundPending && refund.Status != domain.RefundNegotiation {
			return fmt.Errorf("%w: a %s refund cannot be cancelled", domain.ErrInvalidState, refund.Status)
		}
		if err := step.Tx.SupersedePendingCounterOffers(ctx, refund.ID); err != nil {
			return err
		}
		refund.Status = domain.RefundCancelled
		step.Emit(domain.EventRefundCancelled)
		return nil
	})
}
