package models

import "github.com/shopspring/decimal"

// Users, shops and orders are owned by the marketplace; this service only reads them.

type UserModel struct {
	ID          int64  `gorm:"primaryKey"`
	UUID        string `gorm:"size:36;not null;uniqueIndex"`
	Username    string `gorm:"size:150;not null;uniqueIndex"`
	IsAdmin     bool   `gorm:"not null;default:false"`
	IsModerator bool   `gorm:"not null;default:false"`
}

type ShopModel struct {
	ID      int64  `gorm:"primaryKey"`
	OwnerID int64  `gorm:"not null;index"`
	Name    string `gorm:"size:255"`
}

type OrderModel struct {
	ID          string          `gorm:"primaryKey;size:64"`
	BuyerID     int64           `gorm:"not null;index"`
	ShopID      int64           `gorm:"not null;index"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// All lists every table, in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&UserModel{}, &ShopModel{}, &OrderModel{},
		&RefundModel{}, &CounterOfferModel{}, &RefundProofModel{},
		&ReturnRequestModel{}, &ReturnMediaModel{}, &ReturnAddressModel{},
		&DisputeModel{}, &DisputeEvidenceModel{},
	}
}
