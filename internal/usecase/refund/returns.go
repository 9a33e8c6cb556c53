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

// openReturnIfNeeded starts the return sub-workflow once an approved
// refund needs the item shipped back.
func (uc *DefaultRefundUsecase) openReturnIfNeeded(ctx context.Context, step *workflow.Step) error {
	refund := step.Refund
	if refund.RefundType != domain.RefundTypeReturn && !refund.FinalRefundMethod.RequiresReturn() {
		return nil
	}
	_, err := step.Tx.GetReturnRequestByRefundID(ctx, refund.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	deadline := step.Now.Add(uc.limits.ReturnWindow)
	item := &domain.ReturnRequestItem{
		ID:             workflow.NewID(),
		RefundID:       refund.ID,
		ReturnMethod:   refund.FinalRefundMethod,
		Status:         domain.ReturnPending,
		ReturnDeadline: deadline,
	}
	if err := step.Tx.CreateReturnRequest(ctx, item); err != nil {
		return err
	}
	refund.ReturnDeadline = &deadline
	return nil
}

func (uc *DefaultRefundUsecase) SetReturnAddress(ctx context.Context, actor *domain.Actor, refundID string, input *refunddto.ReturnAddressInput) (*domain.ReturnAddress, error) {
	if strings.TrimSpace(input.RecipientName) == "" || strings.TrimSpace(input.ContactNumber) == "" {
		return nil, fmt.Errorf("%w: recipient_name and contact_number are required", domain.ErrValidation)
	}
	var address *domain.ReturnAddress
	_, err := uc.exec.Run(ctx, refundOp("set_return_address", refundID), actor, func(ctx context.Context, step *workflow.Step) error {
		if err := step.Require(workflow.RoleSeller); err != nil {
			return err
		}
		if step.Refund.Status.Terminal() {
			return fmt.Errorf("%w: refund is %s", domain.ErrInvalidState, step.Refund.Status)
		}
		address = &domain.ReturnAddress{
			RefundID:      step.Refund.ID,
			RecipientName: strings.TrimSpace(input.RecipientName),
			ContactNumber: strings.TrimSpace(input.ContactNumber),
			Country:       input.Country,
			Province:      input.Province,
			City:          input.City,
			Barangay:      input.Barangay,
			Street:        input.Street,
			ZipCode:       input.ZipCode,
			Notes:         input.Notes,
			CreatedBy:     step.Actor.UserID(),
		}
		if err := step.Tx.UpsertReturnAddress(ctx, address); err != nil {
			return err
		}
		step.Emit(domain.EventReturnAddressSet)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

func (uc *DefaultRefundUsecase) UpdateTracking(ctx context.Context, actor *domain.Actor, refundID string, input *refunddto.UpdateTrackingInput) (*domain.ReturnRequestItem, error) {
	logistic := strings.TrimSpace(input.LogisticService)
	tracking := strings.TrimSpace(input.TrackingNumber)
	if logistic == "" && tracking == "" && len(input.MediaFiles) == 0 {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrValidation)
	}
	for _, f := range input.MediaFiles {
		if len(f.Data) == 0 {
			return nil, fmt.Errorf("%w: empty media file %q", domain.ErrValidation, f.Filename)
		}
	}

	var item *domain.ReturnRequestItem
	_, err := uc.exec.Run(ctx, refundOp("update_tracking", refundID), actor, func(ctx context.Context, step *workflow.Step) error {
		if err := step.Require(workflow.RoleBuyer); err != nil {
			return err
		}
		rr, err := step.Tx.GetReturnRequestByRefundID(ctx, step.Refund.ID)
		if err != nil {
			return err
		}
		if rr.Status.Closed() {
			return fmt.Errorf("%w: return request is already %s", domain.ErrInvalidState, rr.Status)
		}

		if n := len(input.MediaFiles); n > 0 {
			count, err := step.Tx.CountReturnMedia(ctx, rr.ID)
			if err != nil {
				return err
			}
			remaining := uc.limits.MaxReturnMedia - int(count)
			if remaining < 0 {
				remaining = 0
			}
			if n > remaining {
				return fmt.Errorf("%w: at most %d tracking images per return, %d remaining", domain.ErrLimitExceeded, uc.limits.MaxReturnMedia, remaining)
			}
			media := make([]*domain.ReturnMedia, 0, n)
			for _, f := range input.MediaFiles {
				id := workflow.NewID()
				obj, err := step.Upload(ctx, "return_media", workflow.ObjectKey("refunds", step.Refund.ID, "returns", id, f.Filename), f)
				if err != nil {
					return err
				}
				media = append(media, &domain.ReturnMedia{
					ID:              id,
					ReturnRequestID: rr.ID,
					FileURL:         obj.URL,
					ObjectKey:       obj.Key,
					ContentType:     f.ContentType,
					CreatedAt:       step.Now,
				})
			}
			if err := step.Tx.AddReturnMedia(ctx, media); err != nil {
				return err
			}
			rr.Media = append(rr.Media, media...)
		}

		if logistic != "" {
			rr.LogisticService = logistic
		}
		if tracking != "" {
			rr.TrackingNumber = tracking
			if rr.Status == domain.ReturnPending {
				rr.Status = domain.ReturnShipped
			}
		}
		if err := step.Tx.UpdateReturnRequest(ctx, rr); err != nil {
			return err
		}
		item = rr
		step.Emit(domain.EventReturnTrackingUpdated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *DefaultRefundUsecase) ReviewReturn(ctx context.Context, actor *domain.Actor, refundID string, input *refunddto.ReviewReturnInput) (*domain.ReturnRequestItem, error) {
	action := strings.ToLower(strings.TrimSpace(input.Action))
	var item *domain.ReturnRequestItem
	_, err := uc.exec.Run(ctx, refundOp("review_return", refundID), actor, func(ctx context.Context, step *workflow.Step) error {
		if err := step.Require(workflow.RoleSeller); err != nil {
			return err
		}
		rr, err := step.Tx.GetReturnRequestByRefundID(ctx, step.Refund.ID)
		if err != nil {
			return err
		}

		var next domain.ReturnStatus
		switch action {
		case "receive":
			if rr.Status != domain.ReturnShipped {
				return fmt.Errorf("%w: only a shipped return can be received, this one is %s", domain.ErrInvalidState, rr.Status)
			}
			next = domain.ReturnReceived
		case actionAccept, actionReject:
			if rr.Status != domain.ReturnShipped && rr.Status != domain.ReturnReceived {
				return fmt.Errorf("%w: a %s return cannot be reviewed", domain.ErrInvalidState, rr.Status)
			}
			next = domain.ReturnAccepted
			if action == actionReject {
				next = domain.ReturnRejected
			}
		default:
			return fmt.Errorf("%w: invalid action %q", domain.ErrValidation, input.Action)
		}

		rr.Status = next
		if input.Notes != "" {
			rr.InspectionNotes = input.Notes
		}
		if err := step.Tx.UpdateReturnRequest(ctx, rr); err != nil {
			return err
		}
		item = rr
		step.Emit(domain.EventReturnReviewed)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}
