package refunddto

import (
	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateRefundInput struct {
	OrderID                    string
	Reason                     string
	BuyerPreferredRefundMethod string
	RefundType                 string
}

// SellerResponseInput carries the seller's answer to a refund request.
// Action is approve, reject or negotiate.
type SellerResponseInput struct {
	Action              string
	CounterRefundMethod string
	CounterRefundType   string
	CounterNotes        string
	FinalRefundMethod   string
}

type NegotiationResponseInput struct {
	Action string
	Reason string
}

type AddProofInput struct {
	File     domain.Attachment
	FileType string
	Notes    string
}

type ProcessRefundInput struct {
	FinalRefundMethod string
	SetStatus         string
}

type ReturnAddressInput struct {
	RecipientName string
	ContactNumber string
	Country       string
	Province      string
	City          string
	Barangay      string
	Street        string
	ZipCode       string
	Notes         string
}

type UpdateTrackingInput struct {
	LogisticService string
	TrackingNumber  string
	MediaFiles      []domain.Attachment
}

type ReviewReturnInput struct {
	Action string
	Notes  string
}

// AdminUpdateInput changes only the fields that are set.
type AdminUpdateInput struct {
	Status              *string
	RefundPaymentStatus *string
	FinalRefundMethod   *string
	AdminNote           *string
	AwardedAmount       *decimal.Decimal
}

type ListRefundsInput struct {
	Status string
	Page   int
	Limit  int
}
