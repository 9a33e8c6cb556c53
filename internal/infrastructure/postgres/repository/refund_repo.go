package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultRefundRepository struct {
	db *gorm.DB
}

func NewDefaultRefundRepository(db *gorm.DB) *DefaultRefundRepository {
	return &DefaultRefundRepository{db: db}
}

func (r *DefaultRefundRepository) CreateRefund(ctx context.Context, refund *domain.Refund) error {
	refundModel := mappers.ToGORMRefund(refund)
	if refundModel.Version == 0 {
		refundModel.Version = 1
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(refundModel).Error; err != nil {
		return err
	}
	refund.Version = refundModel.Version
	refund.CreatedAt = refundModel.CreatedAt
	refund.UpdatedAt = refundModel.UpdatedAt
	return nil
}

func (r *DefaultRefundRepository) GetRefundByID(ctx context.Context, refundID string) (*domain.Refund, error) {
	var refundModel models.RefundModel
	if err := r.db.WithContext(ctx).Where("id = ?", refundID).First(&refundModel).Error; err != nil {
		return nil, notFound(err, "refund "+refundID)
	}
	return mappers.ToDomainRefund(&refundModel), nil
}

func (r *DefaultRefundRepository) GetRefundForUpdate(ctx context.Context, refundID string) (*domain.Refund, error) {
	var refundModel models.RefundModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", refundID).
		First(&refundModel).Error; err != nil {
		return nil, notFound(err, "refund "+refundID)
	}
	return mappers.ToDomainRefund(&refundModel), nil
}

func (r *DefaultRefundRepository) SaveRefund(ctx context.Context, refund *domain.Refund) error {
	m := mappers.ToGORMRefund(refund)
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&models.RefundModel{}).
		Where("id = ? AND version = ?", refund.ID, refund.Version).
		Updates(map[string]interface{}{
			"reason":                        m.Reason,
			"buyer_preferred_refund_method": m.BuyerPreferredRefundMethod,
			"refund_type":                   m.RefundType,
			"status":                        m.Status,
			"refund_payment_status":         m.RefundPaymentStatus,
			"final_refund_method":           m.FinalRefundMethod,
			"awarded_amount":                m.AwardedAmount,
			"admin_note":                    m.AdminNote,
			"approved_at":                   m.ApprovedAt,
			"return_deadline":               m.ReturnDeadline,
			"version":                       gorm.Expr("version + 1"),
			"updated_at":                    now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: refund %s was modified by another request", domain.ErrConcurrentUpdate, refund.ID)
	}
	refund.Version++
	refund.UpdatedAt = now
	return nil
}

func (r *DefaultRefundRepository) HasActiveRefundForOrder(ctx context.Context, orderID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.RefundModel{}).
		Where("order_id = ?", orderID).
		Where("status NOT IN ?", []string{string(domain.RefundRejected), string(domain.RefundCancelled)}).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *DefaultRefundRepository) ListRefunds(ctx context.Context, filter domain.RefundFilter) ([]*domain.Refund, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.RefundModel{})

	switch {
	case filter.BuyerID != nil && len(filter.ShopIDs) > 0:
		query = query.Where("requested_by = ? OR order_id IN (?)", *filter.BuyerID,
			r.db.Model(&models.OrderModel{}).Select("id").Where("shop_id IN ?", filter.ShopIDs))
	case filter.BuyerID != nil:
		query = query.Where("requested_by = ?", *filter.BuyerID)
	case len(filter.ShopIDs) > 0:
		query = query.Where("order_id IN (?)",
			r.db.Model(&models.OrderModel{}).Select("id").Where("shop_id IN ?", filter.ShopIDs))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count failed: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	var refundModels []models.RefundModel
	if err := query.Session(&gorm.Session{}).Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&refundModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find refund models: %w", err)
	}

	refunds := make([]*domain.Refund, len(refundModels))
	for i := range refundModels {
		refunds[i] = mappers.ToDomainRefund(&refundModels[i])
	}
	return refunds, total, nil
}
