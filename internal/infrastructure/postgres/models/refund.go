package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RefundModel struct {
	ID                         string              `gorm:"primaryKey;size:32"`
	OrderID                    string              `gorm:"size:64;not null;index"`
	Order                      OrderModel          `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	RequestedBy                int64               `gorm:"not null;index"`
	Reason                     string              `gorm:"type:text;not null"`
	BuyerPreferredRefundMethod string              `gorm:"size:32;not null"`
	RefundType                 string              `gorm:"size:16;not null"`
	Status                     string              `gorm:"size:32;not null;index"`
	RefundPaymentStatus        string              `gorm:"size:32;not null"`
	FinalRefundMethod          string              `gorm:"size:32"`
	AwardedAmount              decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	AdminNote                  string              `gorm:"type:text"`
	ApprovedAt                 *time.Time
	ReturnDeadline             *time.Time
	Version                    int64 `gorm:"not null;default:1"`
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

type CounterOfferModel struct {
	ID                  string      `gorm:"primaryKey;size:32"`
	RefundID            string      `gorm:"size:32;not null;index:idx_counter_offer_refund_requested"`
	Refund              RefundModel `gorm:"foreignKey:RefundID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CounterRefundMethod string      `gorm:"size:32"`
	CounterRefundType   string      `gorm:"size:16"`
	Notes               string      `gorm:"type:text"`
	Status              string      `gorm:"size:16;not null;index"`
	ResponseReason      string      `gorm:"type:text"`
	RequestedBy         int64       `gorm:"not null"`
	RequestedAt         time.Time   `gorm:"not null;index:idx_counter_offer_refund_requested"`
	RespondedAt         *time.Time
}

type RefundProofModel struct {
	ID         string      `gorm:"primaryKey;size:32"`
	RefundID   string      `gorm:"size:32;not null;index"`
	Refund     RefundModel `gorm:"foreignKey:RefundID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	FileType   string      `gorm:"size:64"`
	FileURL    string      `gorm:"type:text;not null"`
	ObjectKey  string      `gorm:"type:text;not null"`
	Notes      string      `gorm:"type:text"`
	UploadedBy int64       `gorm:"not null"`
	CreatedAt  time.Time
}
