package mappers

import (
	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/postgres/models"
)

func ToDomainUser(model *models.UserModel) *domain.User {
	return &domain.User{
		ID:          model.ID,
		UUID:        model.UUID,
		Username:    model.Username,
		IsAdmin:     model.IsAdmin,
		IsModerator: model.IsModerator,
	}
}

func ToDomainShop(model *models.ShopModel) *domain.Shop {
	return &domain.Shop{
		ID:      model.ID,
		OwnerID: model.OwnerID,
		Name:    model.Name,
	}
}

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	return &domain.Order{
		ID:          model.ID,
		BuyerID:     model.BuyerID,
		ShopID:      model.ShopID,
		TotalAmount: model.TotalAmount,
	}
}
