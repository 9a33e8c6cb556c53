package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DisputeStatus string

const (
	DisputeOpen        DisputeStatus = "open"
	DisputeUnderReview DisputeStatus = "under_review"
	DisputeApproved    DisputeStatus = "approved"
	DisputeRejected    DisputeStatus = "rejected"
	DisputeResolved    DisputeStatus = "resolved"
)

// Decided disputes wait for the buyer to acknowledge the ruling.
func (s DisputeStatus) Decided() bool {
	return s == DisputeApproved || s == DisputeRejected
}

type DisputeOutcome string

const (
	OutcomeBuyerWins     DisputeOutcome = "buyer_wins"
	OutcomePartialRefund DisputeOutcome = "partial_refund"
	OutcomeSellerWins    DisputeOutcome = "seller_wins"
	OutcomeDismissed     DisputeOutcome = "dismissed"
	OutcomeWithdrawn     DisputeOutcome = "withdrawn"
)

func (o DisputeOutcome) FavoursBuyer() bool {
	return o == OutcomeBuyerWins || o == OutcomePartialRefund
}

// MatchesDecision checks that an admin ruling and its outcome agree.
func (o DisputeOutcome) MatchesDecision(status DisputeStatus) bool {
	switch status {
	case DisputeApproved:
		return o.FavoursBuyer()
	case DisputeRejected:
		return o == OutcomeSellerWins || o == OutcomeDismissed
	}
	return false
}

type DisputeRequest struct {
	ID                   string
	RefundID             string
	RequestedBy          int64
	Reason               string
	Status               DisputeStatus
	ProcessedBy          *int64
	ResolvedAt           *time.Time
	AdminNote            string
	Outcome              DisputeOutcome
	AwardedAmount        *decimal.Decimal
	RefundStatusOriginal RefundStatus
	Evidence             []*DisputeEvidence
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// CompelsPayment reports whether an admin ruling obliges the seller to pay
// without further proof. The ruling still binds after the buyer acknowledges it.
func (d *DisputeRequest) CompelsPayment() bool {
	if d == nil || !d.Outcome.FavoursBuyer() {
		return false
	}
	return d.Status == DisputeApproved || d.Status == DisputeResolved
}
