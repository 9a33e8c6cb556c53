package request

import "github.com/shopspring/decimal"

type CreateRefundRequest struct {
	OrderID                    string `json:"order_id" binding:"required"`
	Reason                     string `json:"reason" binding:"required"`
	BuyerPreferredRefundMethod string `json:"buyer_preferred_refund_method"`
	RefundType                 string `json:"refund_type"`
}

type SellerResponseRequest struct {
	Action              string `json:"action" binding:"required"`
	CounterRefundMethod string `json:"counter_refund_method"`
	CounterRefundType   string `json:"counter_refund_type"`
	CounterNotes        string `json:"counter_notes"`
	FinalRefundMethod   string `json:"final_refund_method"`
}

type NegotiationResponseRequest struct {
	Action string `json:"action" binding:"required"`
	Reason string `json:"reason"`
}

type ProcessRefundRequest struct {
	FinalRefundMethod string `json:"final_refund_method"`
	SetStatus         string `json:"set_status" binding:"required"`
}

type ReturnAddressRequest struct {
	RecipientName string `json:"recipient_name" binding:"required"`
	ContactNumber string `json:"contact_number" binding:"required"`
	Country       string `json:"country"`
	Province      string `json:"province"`
	City          string `json:"city"`
	Barangay      string `json:"barangay"`
	Street        string `json:"street"`
	ZipCode       string `json:"zip_code"`
	Notes         string `json:"notes"`
}

type ReviewReturnRequest struct {
	Action string `json:"action" binding:"required"`
	Notes  string `json:"notes"`
}

// AdminUpdateRequest leaves a field untouched when it is absent.
type AdminUpdateRequest struct {
	Status              *string          `json:"status"`
	RefundPaymentStatus *string          `json:"refund_payment_status"`
	FinalRefundMethod   *string          `json:"final_refund_method"`
	AdminNote           *string          `json:"admin_note"`
	AwardedAmount       *decimal.Decimal `json:"awarded_amount"`
}

type ListRefundsQuery struct {
	Status string `form:"status"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}
