package refund

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	refunddto "github.com/LavaJover/shvark-refund-service/internal/usecase/dto/refund"
	"github.com/LavaJover/shvark-refund-service/internal/usecase/workflow"
)

func (uc *DefaultRefundUsecase) AddProof(ctx context.Context, actor *domain.Actor, refundID string, input *refunddto.AddProofInput) (*domain.RefundProof, error) {
	if len(input.File.Data) == 0 {
		return nil, fmt.Errorf("%w: file_data is required", domain.ErrValidation)
	}
	var proof *domain.RefundProof
	_, err := uc.exec.Run(ctx, refundOp("add_proof", refundID), actor, func(ctx context.Context, step *workflow.Step) error {
		if err := step.Require(workflow.RoleSeller | workflow.RoleAdmin); err != nil {
			return err
		}
		if s := step.Refund.Status; s.Terminal() {
			return fmt.Errorf("%w: refund is %s", domain.ErrInvalidState, s)
		}
		count, err := step.Tx.CountProofs(ctx, step.Refund.ID)
		if err != nil {
			return err
		}
		if remaining := uc.limits.MaxProofs - int(count); remaining <= 0 {
			return fmt.Errorf("%w: at most %d proofs per refund, 0 remaining", domain.ErrLimitExceeded, uc.limits.MaxProofs)
		}

		fileType := input.FileType
		if fileType == "" {
			fileType = input.File.ContentType
		}
		id := workflow.NewID()
		obj, err := step.Upload(ctx, "proof", workflow.ObjectKey("refunds", step.Refund.ID, "proofs", id, input.File.Filename), input.File)
		if err != nil {
			return err
		}
		proof = &domain.RefundProof{
			ID:         id,
			RefundID:   step.Refund.ID,
			FileType:   fileType,
			FileURL:    obj.URL,
			ObjectKey:  obj.Key,
			Notes:      input.Notes,
			UploadedBy: step.Actor.UserID(),
			CreatedAt:  step.Now,
		}
		if err := step.Tx.CreateProof(ctx, proof); err != nil {
			return err
		}
		step.Emit(domain.EventProofAdded)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return proof, nil
}
