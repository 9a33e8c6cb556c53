package repository

import (
	"context"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultProofRepository struct {
	db *gorm.DB
}

func NewDefaultProofRepository(db *gorm.DB) *DefaultProofRepository {
	return &DefaultProofRepository{db: db}
}

func (r *DefaultProofRepository) CountProofs(ctx context.Context, refundID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.RefundProofModel{}).Where("refund_id = ?", refundID).Count(&count).Error
	return count, err
}

func (r *DefaultProofRepository) CreateProof(ctx context.Context, proof *domain.RefundProof) error {
	proofModel := mappers.ToGORMProof(proof)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(proofModel).Error; err != nil {
		return err
	}
	proof.CreatedAt = proofModel.CreatedAt
	return nil
}

func (r *DefaultProofRepository) ListProofs(ctx context.Context, refundID string) ([]*domain.RefundProof, error) {
	var proofModels []models.RefundProofModel
	if err := r.db.WithContext(ctx).Where("refund_id = ?", refundID).Order("created_at").Find(&proofModels).Error; err != nil {
		return nil, err
	}
	proofs := make([]*domain.RefundProof, len(proofModels))
	for i := range proofModels {
		proofs[i] = mappers.ToDomainProof(&proofModels[i])
	}
	return proofs, nil
}
