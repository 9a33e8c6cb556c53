package dispute

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	disputedto "github.com/LavaJover/shvark-refund-service/internal/usecase/dto/dispute"
	"github.com/LavaJover/shvark-refund-service/internal/usecase/workflow"
)

func (uc *DefaultDisputeUsecase) AddEvidence(ctx context.Context, actor *domain.Actor, disputeID string, input *disputedto.AddEvidenceInput) (*domain.DisputeEvidence, error) {
	if len(input.File.Data) == 0 {
		return nil, fmt.Errorf("%w: file is required", domain.ErrValidation)
	}
	var evidence *domain.DisputeEvidence
	_, err := uc.ProcessDisputeOperation(ctx, actor, &DisputeOperation{
		Name:      "add_evidence",
		DisputeID: disputeID,
		Apply: func(ctx context.Context, step *workflow.Step, dispute *domain.DisputeRequest) error {
			if err := step.Require(workflow.RoleBuyer | workflow.RoleSeller); err != nil {
				return err
			}
			if dispute.Status != domain.DisputeOpen && dispute.Status != domain.DisputeUnderReview {
				return fmt.Errorf("%w: dispute is %s", domain.ErrInvalidState, dispute.Status)
			}
			id := workflow.NewID()
			obj, err := step.Upload(ctx, "dispute_evidence", workflow.ObjectKey("disputes", dispute.ID, "evidence", id, input.File.Filename), input.File)
			if err != nil {
				return err
			}
			evidence = &domain.DisputeEvidence{
				ID:          id,
				DisputeID:   dispute.ID,
				FileURL:     obj.URL,
				ObjectKey:   obj.Key,
				ContentType: input.File.ContentType,
				Notes:       input.Notes,
				UploadedBy:  step.Actor.UserID(),
				CreatedAt:   step.Now,
			}
			if err := step.Tx.CreateEvidence(ctx, evidence); err != nil {
				return err
			}
			dispute.Evidence = append(dispute.Evidence, evidence)
			step.EmitDispute(domain.EventDisputeEvidenceAdded, dispute)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return evidence, nil
}
