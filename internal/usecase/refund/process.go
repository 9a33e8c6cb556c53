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

// ProcessRefund moves the payment axis only. The refund status is never
// touched here, even when payment completes.
func (uc *DefaultRefundUsecase) ProcessRefund(ctx context.Context, actor *domain.Actor, refundID string, input *refunddto.ProcessRefundInput) (*domain.Refund, error) {
	target := domain.PaymentStatus(strings.TrimSpace(input.SetStatus))
	if !target.Valid() {
		return nil, fmt.Errorf("%w: invalid set_status %q", domain.ErrValidation, input.SetStatus)
	}
	method := domain.RefundMethod(strings.TrimSpace(input.FinalRefundMethod))
	if method != "" && !method.Valid() {
		return nil, fmt.Errorf("%w: invalid final_refund_method %q", domain.ErrValidation, input.FinalRefundMethod)
	}

	return uc.exec.Run(ctx, refundOp("process_refund", refundID), actor, func(ctx context.Context, step *workflow.Step) error {
		if err := step.Require(workflow.RoleSeller | workflow.RoleAdmin); err != nil {
			return err
		}
		refund := step.Refund
		if refund.Status.Terminal() {
			return fmt.Errorf("%w: refund is %s", domain.ErrInvalidState, refund.Status)
		}
		if refund.RefundPaymentStatus == domain.PaymentCompleted && target != domain.PaymentCompleted {
			return fmt.Errorf("%w: payment already completed", domain.ErrInvalidState)
		}

		compelled, err := disputeCompelsPayment(ctx, step)
		if err != nil {
			return err
		}
		if !compelled {
			count, err := step.Tx.CountProofs(ctx, refund.ID)
			if err != nil {
				return err
			}
			if count == 0 {
				return fmt.Errorf("%w: upload a proof of the refund payment first", domain.ErrValidation)
			}
		}

		wasCompleted := refund.RefundPaymentStatus == domain.PaymentCompleted
		if method != "" {
			refund.FinalRefundMethod = method
		}
		refund.RefundPaymentStatus = target
		if target == domain.PaymentCompleted && !wasCompleted {
			if err := workflow.CreditWallet(ctx, uc.wallet, step); err != nil {
				return err
			}
		}
		step.Emit(domain.EventRefundPaymentUpdated)
		return nil
	})
}

func disputeCompelsPayment(ctx context.Context, step *workflow.Step) (bool, error) {
	dispute, err := step.Tx.GetDisputeByRefundID(ctx, step.Refund.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return dispute.CompelsPayment(), nil
}

// ConfirmReceived lets the buyer close a paid refund.
func (uc *DefaultRefundUsecase) ConfirmReceived(ctx context.Context, actor *domain.Actor, refundID string) (*domain.Refund, error) {
	return uc.exec.Run(ctx, refundOp("confirm_received", refundID), actor, func(ctx context.Context, step *workflow.Step) error {
		if err := step.Require(workflow.RoleBuyer); err != nil {
			return err
		}
		refund := step.Refund
		if refund.Status != domain.RefundApproved || refund.RefundPaymentStatus != domain.PaymentCompleted {
			return fmt.Errorf("%w: refund must be approved and paid, it is %s/%s",
				domain.ErrInvalidState, refund.Status, refund.RefundPaymentStatus)
		}
		refund.Status = domain.RefundCompleted
		step.Emit(domain.EventRefundCompleted)
		return nil
	})
}
