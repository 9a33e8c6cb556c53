package request

import "github.com/shopspring/decimal"

type FileDisputeRequest struct {
	RefundID string `json:"refund_id" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
}

type ResolveDisputeRequest struct {
	Status        string           `json:"status" binding:"required"`
	Outcome       string           `json:"outcome" binding:"required"`
	AwardedAmount *decimal.Decimal `json:"awarded_amount"`
	AdminNote     string           `json:"admin_note"`
}
