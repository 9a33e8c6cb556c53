package repository

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultReturnRepository struct {
	db *gorm.DB
}

func NewDefaultReturnRepository(db *gorm.DB) *DefaultReturnRepository {
	return &DefaultReturnRepository{db: db}
}

func (r *DefaultReturnRepository) CreateReturnRequest(ctx context.Context, item *domain.ReturnRequestItem) error {
	itemModel := mappers.ToGORMReturnRequest(item)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(itemModel).Error; err != nil {
		return err
	}
	item.CreatedAt = itemModel.CreatedAt
	item.UpdatedAt = itemModel.UpdatedAt
	return nil
}

func (r *DefaultReturnRepository) GetReturnRequestByRefundID(ctx context.Context, refundID string) (*domain.ReturnRequestItem, error) {
	var itemModel models.ReturnRequestModel
	if err := r.db.WithContext(ctx).
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at")
		}).
		Where("refund_id = ?", refundID).
		First(&itemModel).Error; err != nil {
		return nil, notFound(err, "return request for refund "+refundID)
	}
	return mappers.ToDomainReturnRequest(&itemModel), nil
}

func (r *DefaultReturnRepository) UpdateReturnRequest(ctx context.Context, item *domain.ReturnRequestItem) error {
	item.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Model(&models.ReturnRequestModel{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"status":           string(item.Status),
			"return_deadline":  item.ReturnDeadline,
			"logistic_service": item.LogisticService,
			"tracking_number":  item.TrackingNumber,
			"inspection_notes": item.InspectionNotes,
			"updated_at":       item.UpdatedAt,
		}).Error
}

func (r *DefaultReturnRepository) CountReturnMedia(ctx context.Context, returnRequestID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ReturnMediaModel{}).Where("return_request_id = ?", returnRequestID).Count(&count).Error
	return count, err
}

func (r *DefaultReturnRepository) AddReturnMedia(ctx context.Context, media []*domain.ReturnMedia) error {
	if len(media) == 0 {
		return nil
	}
	mediaModels := make([]*models.ReturnMediaModel, len(media))
	for i, m := range media {
		mediaModels[i] = mappers.ToGORMReturnMedia(m)
	}
	return r.db.WithContext(ctx).Create(mediaModels).Error
}

func (r *DefaultReturnRepository) GetReturnAddress(ctx context.Context, refundID string) (*domain.ReturnAddress, error) {
	var addressModel models.ReturnAddressModel
	if err := r.db.WithContext(ctx).Where("refund_id = ?", refundID).First(&addressModel).Error; err != nil {
		return nil, notFound(err, "return address for refund "+refundID)
	}
	return mappers.ToDomainReturnAddress(&addressModel), nil
}

func (r *DefaultReturnRepository) UpsertReturnAddress(ctx context.Context, address *domain.ReturnAddress) error {
	addressModel := mappers.ToGORMReturnAddress(address)
	return r.db.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "refund_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"recipient_name", "contact_number", "country", "province", "city",
			"barangay", "street", "zip_code", "notes", "updated_at",
		}),
	}).Create(addressModel).Error
}
