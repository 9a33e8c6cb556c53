package refund

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	refunddto "github.com/LavaJover/shvark-refund-service/internal/usecase/dto/refund"
	"github.com/LavaJover/shvark-refund-service/internal/usecase/workflow"
	"go.uber.org/zap"
)

type RefundUsecase interface {
	CreateRefund(ctx context.Context, actor *domain.Actor, input *refunddto.CreateRefundInput) (*domain.Refund, error)
	CancelRefund(ctx context.Context, actor *domain.Actor, refundID string) (*domain.Refund, error)
	SellerRespond(ctx context.Context, actor *domain.Actor, refundID string, input *refunddto.SellerResponseInput) (*domain.Refund, error)
	RespondToNegotiation(ctx context.Context, actor *domain.Actor, refundID string, input *refunddto.NegotiationResponseInput) (*domain.Refund, error)
	AddProof(ctx context.Context, actor *domain.Actor, refundID string, input *refunddto.AddProofInput) (*domain.RefundProof, error)
	ProcessRefund(ctx context.Context, actor *domain.Actor, refundID string, input *refunddto.ProcessRefundInput) (*domain.Refund, error)
	ConfirmReceived(ctx context.Context, actor *domain.Actor, refundID string) (*domain.Refund, error)
	SetReturnAddress(ctx context.Context, actor *domain.Actor, refundID string, input *refunddto.ReturnAddressInput) (*domain.ReturnAddress, error)
	UpdateTracking(ctx context.Context, actor *domain.Actor, refundID string, input *refunddto.UpdateTrackingInput) (*domain.ReturnRequestItem, error)
	ReviewReturn(ctx context.Context, actor *domain.Actor, refundID string, input *refunddto.ReviewReturnInput) (*domain.ReturnRequestItem, error)
	AdminUpdateRefund(ctx context.Context, actor *domain.Actor, refundID string, input *refunddto.AdminUpdateInput) (*domain.Refund, error)
	GetRefund(ctx context.Context, actor *domain.Actor, refundID string) (*domain.RefundDetails, error)
	ListRefunds(ctx context.Context, actor *domain.Actor, input *refunddto.ListRefundsInput) (*refunddto.ListRefundsOutput, error)
}

// Limits bound attachments and the return window.
type Limits struct {
	MaxProofs      int
	MaxReturnMedia int
	ReturnWindow   time.Duration
}

func DefaultLimits() Limits {
	return Limits{
		MaxProofs:      domain.DefaultMaxRefundProofs,
		MaxReturnMedia: domain.DefaultMaxReturnMedia,
		ReturnWindow:   domain.DefaultReturnWindowDays * 24 * time.Hour,
	}
}

type DefaultRefundUsecase struct {
	exec   *workflow.Executor
	store  domain.Store
	wallet domain.WalletGateway
	limits Limits
	log    *zap.Logger
}

func NewDefaultRefundUsecase(
	exec *workflow.Executor,
	wallet domain.WalletGateway,
	limits Limits,
	log *zap.Logger,
) *DefaultRefundUsecase {
	defaults := DefaultLimits()
	if limits.MaxProofs <= 0 {
		limits.MaxProofs = defaults.MaxProofs
	}
	if limits.MaxReturnMedia <= 0 {
		limits.MaxReturnMedia = defaults.MaxReturnMedia
	}
	if limits.ReturnWindow <= 0 {
		limits.ReturnWindow = defaults.ReturnWindow
	}
	return &DefaultRefundUsecase{
		exec:   exec,
		store:  exec.Store(),
		wallet: wallet,
		limits: limits,
		log:    log,
	}
}

func refundOp(name, refundID string) workflow.Operation {
	return workflow.Operation{Name: name, RefundID: refundID}
}
