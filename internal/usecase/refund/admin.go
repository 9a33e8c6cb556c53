package refund

import (
	"context"
	"fmt"
	"strings"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	refunddto "github.com/LavaJover/shvark-refund-service/internal/usecase/dto/refund"
	"github.com/LavaJover/shvark-refund-service/internal/usecase/workflow"
)

// AdminUpdateRefund overrides refund fields. Status changes only when the
// admin sends one; a completed payment leaves it alone.
func (uc *DefaultRefundUsecase) AdminUpdateRefund(ctx context.Context, actor *domain.Actor, refundID string, input *refunddto.AdminUpdateInput) (*domain.Refund, error) {
	var (
		status  domain.RefundStatus
		payment domain.PaymentStatus
		method  domain.RefundMethod
	)
	if input.Status != nil {
		status = domain.RefundStatus(strings.TrimSpace(*input.Status))
		if !status.Valid() {
			return nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, *input.Status)
		}
	}
	if input.RefundPaymentStatus != nil {
		payment = domain.PaymentStatus(strings.TrimSpace(*input.RefundPaymentStatus))
		if !payment.Valid() {
			return nil, fmt.Errorf("%w: invalid refund_payment_status %q", domain.ErrValidation, *input.RefundPaymentStatus)
		}
	}
	if input.FinalRefundMethod != nil {
		method = domain.RefundMethod(strings.TrimSpace(*input.FinalRefundMethod))
		if method != "" && !method.Valid() {
			return nil, fmt.Errorf("%w: invalid final_refund_method %q", domain.ErrValidation, *input.FinalRefundMethod)
		}
	}
	if input.AwardedAmount != nil && input.AwardedAmount.IsNegative() {
		return nil, fmt.Errorf("%w: awarded_amount must not be negative", domain.ErrValidation)
	}

	return uc.exec.Run(ctx, refundOp("admin_update", refundID), actor, func(ctx context.Context, step *workflow.Step) error {
		if err := step.Require(workflow.RoleAdmin); err != nil {
			return err
		}
		refund := step.Refund
		if status != "" {
			refund.Status = status
			if status == domain.RefundApproved && refund.ApprovedAt == nil {
				now := step.Now
				refund.ApprovedAt = &now
			}
		}
		if payment != "" {
			refund.RefundPaymentStatus = payment
		}
		if input.FinalRefundMethod != nil {
			refund.FinalRefundMethod = method
		}
		if input.AdminNote != nil {
			refund.AdminNote = *input.AdminNote
		}
		if input.AwardedAmount != nil {
			amount := input.AwardedAmount.Round(2)
			refund.AwardedAmount = &amount
		}
		step.Emit(domain.EventRefundAdminUpdated)
		return nil
	})
}
