package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type RefundStatus string

const (
	RefundPending     RefundStatus = "pending"
	RefundApproved    RefundStatus = "approved"
	RefundNegotiation RefundStatus = "negotiation"
	RefundRejected    RefundStatus = "rejected"
	RefundCancelled   RefundStatus = "cancelled"
	RefundDispute     RefundStatus = "dispute"
	RefundCompleted   RefundStatus = "completed"
)

// Terminal statuses accept no further negotiation or payment processing.
func (s RefundStatus) Terminal() bool {
	return s == RefundRejected || s == RefundCancelled || s == RefundCompleted
}

func (s RefundStatus) Valid() bool {
	switch s {
	case RefundPending, RefundApproved, RefundNegotiation, RefundRejected,
		RefundCancelled, RefundDispute, RefundCompleted:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s == PaymentProcessing || s == PaymentCompleted
}

type RefundType string

const (
	RefundTypeKeep   RefundType = "keep"
	RefundTypeReturn RefundType = "return"
)

func (t RefundType) Valid() bool {
	return t == RefundTypeKeep || t == RefundTypeReturn
}

type RefundMethod string

const (
	MethodWallet       RefundMethod = "wallet"
	MethodBank         RefundMethod = "bank"
	MethodVoucher      RefundMethod = "voucher"
	MethodReturnBank   RefundMethod = "return:bank"
	MethodReturnWallet RefundMethod = "return:wallet"
)

var refundMethods = map[RefundMethod]struct{}{
	MethodWallet:       {},
	MethodBank:         {},
	MethodVoucher:      {},
	MethodReturnBank:   {},
	MethodReturnWallet: {},
}

func (m RefundMethod) Valid() bool {
	_, ok := refundMethods[m]
	return ok
}

// RequiresReturn reports whether the method ships the item back before payout.
func (m RefundMethod) RequiresReturn() bool {
	return strings.HasPrefix(string(m), "return:")
}

// PaysToWallet reports whether the payout lands in the buyer's wallet.
func (m RefundMethod) PaysToWallet() bool {
	return m == MethodWallet || m == MethodReturnWallet
}

type Refund struct {
	ID                         string
	OrderID                    string
	RequestedBy                int64
	Reason                     string
	BuyerPreferredRefundMethod RefundMethod
	RefundType                 RefundType
	Status                     RefundStatus
	RefundPaymentStatus        PaymentStatus
	FinalRefundMethod          RefundMethod
	AwardedAmount              *decimal.Decimal
	AdminNote                  string
	ApprovedAt                 *time.Time
	ReturnDeadline             *time.Time
	Version                    int64
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

// Approve fixes the refund terms. Payment status is left untouched.
func (r *Refund) Approve(method RefundMethod, now time.Time) {
	r.Status = RefundApproved
	if method != "" {
		r.FinalRefundMethod = method
	}
	r.ApprovedAt = &now
}

type RefundFilter struct {
	BuyerID *int64
	ShopIDs []int64
	Status  *RefundStatus
	Page    int
	Limit   int
}

// RefundDetails is the refund together with everything hanging off it.
type RefundDetails struct {
	Refund        *Refund
	CounterOffers []*CounterRefundRequest
	Proofs        []*RefundProof
	ReturnRequest *ReturnRequestItem
	ReturnAddress *ReturnAddress
	Dispute       *DisputeRequest
}
