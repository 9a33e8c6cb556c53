package domain

import "time"

type ReturnStatus string

const (
	ReturnPending  ReturnStatus = "pending"
	ReturnShipped  ReturnStatus = "shipped"
	ReturnReceived ReturnStatus = "received"
	ReturnAccepted ReturnStatus = "accepted"
	ReturnRejected ReturnStatus = "rejected"
)

// Closed returns are inspected and no longer take tracking updates.
func (s ReturnStatus) Closed() bool {
	return s == ReturnAccepted || s == ReturnRejected
}

type ReturnRequestItem struct {
	ID              string
	RefundID        string
	ReturnMethod    RefundMethod
	Status          ReturnStatus
	ReturnDeadline  time.Time
	LogisticService string
	TrackingNumber  string
	InspectionNotes string
	Media           []*ReturnMedia
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ReturnAddress struct {
	RefundID      string
	RecipientName string
	ContactNumber string
	Country       string
	Province      string
	City          string
	Barangay      string
	Street        string
	ZipCode       string
	Notes         string
	CreatedBy     int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
