package repository

import (
	"context"
	"strconv"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultDirectoryRepository struct {
	db *gorm.DB
}

func NewDefaultDirectoryRepository(db *gorm.DB) *DefaultDirectoryRepository {
	return &DefaultDirectoryRepository{db: db}
}

func (r *DefaultDirectoryRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	var userModel models.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, notFound(err, "user "+strconv.FormatInt(id, 10))
	}
	return mappers.ToDomainUser(&userModel), nil
}

func (r *DefaultDirectoryRepository) GetUserByUUID(ctx context.Context, uuid string) (*domain.User, error) {
	var userModel models.UserModel
	if err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&userModel).Error; err != nil {
		return nil, notFound(err, "user "+uuid)
	}
	return mappers.ToDomainUser(&userModel), nil
}

func (r *DefaultDirectoryRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var userModel models.UserModel
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&userModel).Error; err != nil {
		return nil, notFound(err, "user "+username)
	}
	return mappers.ToDomainUser(&userModel), nil
}

func (r *DefaultDirectoryRepository) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var orderModel models.OrderModel
	if err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&orderModel).Error; err != nil {
		return nil, notFound(err, "order "+orderID)
	}
	return mappers.ToDomainOrder(&orderModel), nil
}

func (r *DefaultDirectoryRepository) GetShopByID(ctx context.Context, shopID int64) (*domain.Shop, error) {
	var shopModel models.ShopModel
	if err := r.db.WithContext(ctx).Where("id = ?", shopID).First(&shopModel).Error; err != nil {
		return nil, notFound(err, "shop "+strconv.FormatInt(shopID, 10))
	}
	return mappers.ToDomainShop(&shopModel), nil
}

func (r *DefaultDirectoryRepository) ListShopIDsByOwner(ctx context.Context, ownerID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&models.ShopModel{}).Where("owner_id = ?", ownerID).Pluck("id", &ids).Error
	return ids, err
}

// SeedUser, SeedShop and SeedOrder mirror marketplace records locally. They
// back the dev seeding command and tests. Re-seeding overwrites by id.
func (r *DefaultDirectoryRepository) SeedUser(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&models.UserModel{
		ID:          user.ID,
		UUID:        user.UUID,
		Username:    user.Username,
		IsAdmin:     user.IsAdmin,
		IsModerator: user.IsModerator,
	}).Error
}

func (r *DefaultDirectoryRepository) SeedShop(ctx context.Context, shop *domain.Shop) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&models.ShopModel{
		ID:      shop.ID,
		OwnerID: shop.OwnerID,
		Name:    shop.Name,
	}).Error
}

func (r *DefaultDirectoryRepository) SeedOrder(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&models.OrderModel{
		ID:          order.ID,
		BuyerID:     order.BuyerID,
		ShopID:      order.ShopID,
		TotalAmount: order.TotalAmount,
	}).Error
}
