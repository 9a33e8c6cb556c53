package mappers

import (
	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/postgres/models"
)

func ToDomainDispute(model *models.DisputeModel) *domain.DisputeRequest {
	dispute := &domain.DisputeRequest{
		ID:                   model.ID,
		RefundID:             model.RefundID,
		RequestedBy:          model.RequestedBy,
		Reason:               model.Reason,
		Status:               domain.DisputeStatus(model.Status),
		ProcessedBy:          model.ProcessedBy,
		ResolvedAt:           model.ResolvedAt,
		AdminNote:            model.AdminNote,
		Outcome:              domain.DisputeOutcome(model.Outcome),
		AwardedAmount:        fromNullDecimal(model.AwardedAmount),
		RefundStatusOriginal: domain.RefundStatus(model.RefundStatusOriginal),
		CreatedAt:            model.CreatedAt,
		UpdatedAt:            model.UpdatedAt,
	}
	for i := range model.Evidence {
		dispute.Evidence = append(dispute.Evidence, ToDomainEvidence(&model.Evidence[i]))
	}
	return dispute
}

func ToGORMDispute(dispute *domain.DisputeRequest) *models.DisputeModel {
	return &models.DisputeModel{
		ID:                   dispute.ID,
		RefundID:             dispute.RefundID,
		RequestedBy:          dispute.RequestedBy,
		Reason:               dispute.Reason,
		Status:               string(dispute.Status),
		ProcessedBy:          dispute.ProcessedBy,
		ResolvedAt:           dispute.ResolvedAt,
		AdminNote:            dispute.AdminNote,
		Outcome:              string(dispute.Outcome),
		AwardedAmount:        toNullDecimal(dispute.AwardedAmount),
		RefundStatusOriginal: string(dispute.RefundStatusOriginal),
		CreatedAt:            dispute.CreatedAt,
		UpdatedAt:            dispute.UpdatedAt,
	}
}

func ToDomainEvidence(model *models.DisputeEvidenceModel) *domain.DisputeEvidence {
	return &domain.DisputeEvidence{
		ID:          model.ID,
		DisputeID:   model.DisputeID,
		FileURL:     model.FileURL,
		ObjectKey:   model.ObjectKey,
		ContentType: model.ContentType,
		Notes:       model.Notes,
		UploadedBy:  model.UploadedBy,
		CreatedAt:   model.CreatedAt,
	}
}

func ToGORMEvidence(evidence *domain.DisputeEvidence) *models.DisputeEvidenceModel {
	return &models.DisputeEvidenceModel{
		ID:          evidence.ID,
		DisputeID:   evidence.DisputeID,
		FileURL:     evidence.FileURL,
		ObjectKey:   evidence.ObjectKey,
		ContentType: evidence.ContentType,
		Notes:       evidence.Notes,
		UploadedBy:  evidence.UploadedBy,
		CreatedAt:   evidence.CreatedAt,
	}
}
