package domain

import "context"

type RefundRepository interface {
	CreateRefund(ctx context.Context, refund *Refund) error
	GetRefundByID(ctx context.Context, refundID string) (*Refund, error)
	// GetRefundForUpdate locks the refund row until the surrounding transaction ends.
	GetRefundForUpdate(ctx context.Context, refundID string) (*Refund, error)
	// SaveRefund persists the refund if its version is unchanged and bumps the version.
	SaveRefund(ctx context.Context, refund *Refund) error
	HasActiveRefundForOrder(ctx context.Context, orderID string) (bool, error)
	ListRefunds(ctx context.Context, filter RefundFilter) ([]*Refund, int64, error)
}

type CounterOfferRepository interface {
	CreateCounterOffer(ctx context.Context, offer *CounterRefundRequest) error
	GetLatestPendingCounterOffer(ctx context.Context, refundID string) (*CounterRefundRequest, error)
	UpdateCounterOffer(ctx context.Context, offer *CounterRefundRequest) error
	SupersedePendingCounterOffers(ctx context.Context, refundID string) error
	ListCounterOffers(ctx context.Context, refundID string) ([]*CounterRefundRequest, error)
}

type ProofRepository interface {
	CountProofs(ctx context.Context, refundID string) (int64, error)
	CreateProof(ctx context.Context, proof *RefundProof) error
	ListProofs(ctx context.Context, refundID string) ([]*RefundProof, error)
}

type ReturnRepository interface {
	CreateReturnRequest(ctx context.Context, item *ReturnRequestItem) error
	GetReturnRequestByRefundID(ctx context.Context, refundID string) (*ReturnRequestItem, error)
	UpdateReturnRequest(ctx context.Context, item *ReturnRequestItem) error
	CountReturnMedia(ctx context.Context, returnRequestID string) (int64, error)
	AddReturnMedia(ctx context.Context, media []*ReturnMedia) error
	GetReturnAddress(ctx context.Context, refundID string) (*ReturnAddress, error)
	UpsertReturnAddress(ctx context.Context, address *ReturnAddress) error
}

type DisputeRepository interface {
	CreateDispute(ctx context.Context, dispute *DisputeRequest) error
	GetDisputeByID(ctx context.Context, disputeID string) (*DisputeRequest, error)
	GetDisputeForUpdate(ctx context.Context, disputeID string) (*DisputeRequest, error)
	GetDisputeByRefundID(ctx context.Context, refundID string) (*DisputeRequest, error)
	UpdateDispute(ctx context.Context, dispute *DisputeRequest) error
	CreateEvidence(ctx context.Context, evidence *DisputeEvidence) error
}

// DirectoryRepository reads the marketplace records the workflow authorizes against.
type DirectoryRepository interface {
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetUserByUUID(ctx context.Context, uuid string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetOrderByID(ctx context.Context, orderID string) (*Order, error)
	GetShopByID(ctx context.Context, shopID int64) (*Shop, error)
	ListShopIDsByOwner(ctx context.Context, ownerID int64) ([]int64, error)
}

// Store bundles the repositories. Transaction runs fn against a Store bound
// to a single database transaction.
type Store interface {
	RefundRepository
	CounterOfferRepository
	ProofRepository
	ReturnRepository
	DisputeRepository
	DirectoryRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
