package repository

import (
	"context"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultCounterOfferRepository struct {
	db *gorm.DB
}

func NewDefaultCounterOfferRepository(db *gorm.DB) *DefaultCounterOfferRepository {
	return &DefaultCounterOfferRepository{db: db}
}

func (r *DefaultCounterOfferRepository) CreateCounterOffer(ctx context.Context, offer *domain.CounterRefundRequest) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(mappers.ToGORMCounterOffer(offer)).Error
}

func (r *DefaultCounterOfferRepository) GetLatestPendingCounterOffer(ctx context.Context, refundID string) (*domain.CounterRefundRequest, error) {
	var offerModel models.CounterOfferModel
	if err := r.db.WithContext(ctx).
		Where("refund_id = ? AND status = ?", refundID, string(domain.CounterOfferPending)).
		Order("requested_at DESC").
		First(&offerModel).Error; err != nil {
		return nil, notFound(err, "no pending counter offer for refund "+refundID)
	}
	return mappers.ToDomainCounterOffer(&offerModel), nil
}

func (r *DefaultCounterOfferRepository) UpdateCounterOffer(ctx context.Context, offer *domain.CounterRefundRequest) error {
	return r.db.WithContext(ctx).Model(&models.CounterOfferModel{}).
		Where("id = ?", offer.ID).
		Updates(map[string]interface{}{
			"status":          string(offer.Status),
			"response_reason": offer.ResponseReason,
			"responded_at":    offer.RespondedAt,
		}).Error
}

func (r *DefaultCounterOfferRepository) SupersedePendingCounterOffers(ctx context.Context, refundID string) error {
	return r.db.WithContext(ctx).Model(&models.CounterOfferModel{}).
		Where("refund_id = ? AND status = ?", refundID, string(domain.CounterOfferPending)).
		Update("status", string(domain.CounterOfferSuperseded)).Error
}

func (r *DefaultCounterOfferRepository) ListCounterOffers(ctx context.Context, refundID string) ([]*domain.CounterRefundRequest, error) {
	var offerModels []models.CounterOfferModel
	if err := r.db.WithContext(ctx).
		Where("refund_id = ?", refundID).
		Order("requested_at DESC").
		Find(&offerModels).Error; err != nil {
		return nil, err
	}
	offers := make([]*domain.CounterRefundRequest, len(offerModels))
	for i := range offerModels {
		offers[i] = mappers.ToDomainCounterOffer(&offerModels[i])
	}
	return offers, nil
}
