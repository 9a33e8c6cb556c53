package repository

import (
	"context"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultDisputeRepository struct {
	db *gorm.DB
}

func NewDefaultDisputeRepository(db *gorm.DB) *DefaultDisputeRepository {
	return &DefaultDisputeRepository{db: db}
}

func (r *DefaultDisputeRepository) CreateDispute(ctx context.Context, dispute *domain.DisputeRequest) error {
	disputeModel := mappers.ToGORMDispute(dispute)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(disputeModel).Error; err != nil {
		return err
	}
	dispute.CreatedAt = disputeModel.CreatedAt
	dispute.UpdatedAt = disputeModel.UpdatedAt
	return nil
}

func (r *DefaultDisputeRepository) GetDisputeByID(ctx context.Context, disputeID string) (*domain.DisputeRequest, error) {
	var disputeModel models.DisputeModel
	if err := r.db.WithContext(ctx).
		Preload("Evidence", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at")
		}).
		Where("id = ?", disputeID).
		First(&disputeModel).Error; err != nil {
		return nil, notFound(err, "dispute "+disputeID)
	}
	return mappers.ToDomainDispute(&disputeModel), nil
}

func (r *DefaultDisputeRepository) GetDisputeForUpdate(ctx context.Context, disputeID string) (*domain.DisputeRequest, error) {
	var disputeModel models.DisputeModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Evidence", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at")
		}).
		Where("id = ?", disputeID).
		First(&disputeModel).Error; err != nil {
		return nil, notFound(err, "dispute "+disputeID)
	}
	return mappers.ToDomainDispute(&disputeModel), nil
}

func (r *DefaultDisputeRepository) GetDisputeByRefundID(ctx context.Context, refundID string) (*domain.DisputeRequest, error) {
	var disputeModel models.DisputeModel
	if err := r.db.WithContext(ctx).Where("refund_id = ?", refundID).First(&disputeModel).Error; err != nil {
		return nil, notFound(err, "dispute for refund "+refundID)
	}
	return mappers.ToDomainDispute(&disputeModel), nil
}

func (r *DefaultDisputeRepository) UpdateDispute(ctx context.Context, dispute *domain.DisputeRequest) error {
	m := mappers.ToGORMDispute(dispute)
	return r.db.WithContext(ctx).Model(&models.DisputeModel{}).
		Where("id = ?", dispute.ID).
		Updates(map[string]interface{}{
			"status":         m.Status,
			"processed_by":   m.ProcessedBy,
			"resolved_at":    m.ResolvedAt,
			"admin_note":     m.AdminNote,
			"outcome":        m.Outcome,
			"awarded_amount": m.AwardedAmount,
		}).Error
}

func (r *DefaultDisputeRepository) CreateEvidence(ctx context.Context, evidence *domain.DisputeEvidence) error {
	evidenceModel := mappers.ToGORMEvidence(evidence)
	if err := r.db.WithContext(ctx).Create(evidenceModel).Error; err != nil {
		return err
	}
	evidence.CreatedAt = evidenceModel.CreatedAt
	return nil
}
