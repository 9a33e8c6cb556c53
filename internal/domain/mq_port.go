package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventRefundCreated         = "refund.created"
	EventRefundCancelled       = "refund.cancelled"
	EventRefundApproved        = "refund.approved"
	EventRefundRejected        = "refund.rejected"
	EventCounterOfferCreated   = "refund.counter_offer.created"
	EventCounterOfferAccepted  = "refund.counter_offer.accepted"
	EventCounterOfferRejected  = "refund.counter_offer.rejected"
	EventProofAdded            = "refund.proof.added"
	EventRefundPaymentUpdated  = "refund.payment.updated"
	EventRefundCompleted       = "refund.completed"
	EventReturnAddressSet      = "refund.return_address.set"
	EventReturnTrackingUpdated = "refund.return.tracking_updated"
	EventReturnReviewed        = "refund.return.reviewed"
	EventRefundAdminUpdated    = "refund.admin_updated"
	EventDisputeFiled          = "dispute.filed"
	EventDisputeReviewStarted  = "dispute.review_started"
	EventDisputeDecided        = "dispute.decided"
	EventDisputeAcknowledged   = "dispute.acknowledged"
	EventDisputeWithdrawn      = "dispute.withdrawn"
	EventDisputeEvidenceAdded  = "dispute.evidence.added"
)

type RefundEvent struct {
	Type          string    `json:"type"`
	RefundID      string    `json:"refund_id"`
	OrderID       string    `json:"order_id"`
	DisputeID     string    `json:"dispute_id,omitempty"`
	ActorID       int64     `json:"actor_id"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	DisputeStatus string    `json:"dispute_status,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	PublishRefundEvent(ctx context.Context, event RefundEvent) error
}

// Locker serializes work on one key across service instances.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

type WalletCredit struct {
	UserID    int64
	RefundID  string
	OrderID   string
	Amount    decimal.Decimal
	Reference string
}

type WalletGateway interface {
	CreditRefund(ctx context.Context, credit WalletCredit) error
}
