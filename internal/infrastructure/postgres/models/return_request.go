package models

import "time"

type ReturnRequestModel struct {
	ID              string      `gorm:"primaryKey;size:32"`
	RefundID        string      `gorm:"size:32;not null;uniqueIndex"`
	Refund          RefundModel `gorm:"foreignKey:RefundID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ReturnMethod    string      `gorm:"size:32"`
	Status          string      `gorm:"size:16;not null"`
	ReturnDeadline  time.Time
	LogisticService string `gorm:"size:128"`
	TrackingNumber  string `gorm:"size:128"`
	InspectionNotes string `gorm:"type:text"`
	Media           []ReturnMediaModel `gorm:"foreignKey:ReturnRequestID;references:ID"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ReturnMediaModel struct {
	ID              string    `gorm:"primaryKey;size:32"`
	ReturnRequestID string    `gorm:"size:32;not null;index"`
	FileURL         string    `gorm:"type:text;not null"`
	ObjectKey       string    `gorm:"type:text;not null"`
	ContentType     string    `gorm:"size:128"`
	CreatedAt       time.Time
}

type ReturnAddressModel struct {
	RefundID      string      `gorm:"primaryKey;size:32"`
	Refund        RefundModel `gorm:"foreignKey:RefundID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	RecipientName string      `gorm:"size:255;not null"`
	ContactNumber string      `gorm:"size:64;not null"`
	Country       string      `gorm:"size:128"`
	Province      string      `gorm:"size:128"`
	City          string      `gorm:"size:128"`
	Barangay      string      `gorm:"size:128"`
	Street        string      `gorm:"type:text"`
	ZipCode       string      `gorm:"size:32"`
	Notes         string      `gorm:"type:text"`
	CreatedBy     int64       `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
