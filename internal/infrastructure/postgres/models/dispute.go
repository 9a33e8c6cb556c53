package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DisputeModel struct {
	ID                   string      `gorm:"primaryKey;size:32"`
	RefundID             string      `gorm:"size:32;not null;uniqueIndex"`
	Refund               RefundModel `gorm:"foreignKey:RefundID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	RequestedBy          int64       `gorm:"not null;index"`
	Reason               string      `gorm:"type:text;not null"`
	Status               string      `gorm:"size:32;not null;index"`
	ProcessedBy          *int64
	ResolvedAt           *time.Time
	AdminNote            string              `gorm:"type:text"`
	Outcome              string              `gorm:"size:32"`
	AwardedAmount        decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	RefundStatusOriginal string              `gorm:"size:32;not null"`
	Evidence             []DisputeEvidenceModel `gorm:"foreignKey:DisputeID;references:ID"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type DisputeEvidenceModel struct {
	ID          string    `gorm:"primaryKey;size:32"`
	DisputeID   string    `gorm:"size:32;not null;index"`
	FileURL     string    `gorm:"type:text;not null"`
	ObjectKey   string    `gorm:"type:text;not null"`
	ContentType string    `gorm:"size:128"`
	Notes       string    `gorm:"type:text"`
	UploadedBy  int64     `gorm:"not null"`
	CreatedAt   time.Time
}
