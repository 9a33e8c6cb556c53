package domain

import "time"

type CounterOfferStatus string

const (
	CounterOfferPending    CounterOfferStatus = "pending"
	CounterOfferAccepted   CounterOfferStatus = "accepted"
	CounterOfferRejected   CounterOfferStatus = "rejected"
	CounterOfferSuperseded CounterOfferStatus = "superseded"
)

// CounterRefundRequest is one seller proposal in the negotiation ledger.
// An empty method is a message-only offer.
type CounterRefundRequest struct {
	ID                  string
	RefundID            string
	CounterRefundMethod RefundMethod
	CounterRefundType   RefundType
	Notes               string
	Status              CounterOfferStatus
	ResponseReason      string
	RequestedBy         int64
	RequestedAt         time.Time
	RespondedAt         *time.Time
}
