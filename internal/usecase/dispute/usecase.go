package dispute

import (
	"context"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	disputedto "github.com/LavaJover/shvark-refund-service/internal/usecase/dto/dispute"
	"github.com/LavaJover/shvark-refund-service/internal/usecase/workflow"
	"go.uber.org/zap"
)

type DisputeUsecase interface {
	FileDispute(ctx context.Context, actor *domain.Actor, input *disputedto.FileDisputeInput) (*domain.DisputeRequest, error)
	AddEvidence(ctx context.Context, actor *domain.Actor, disputeID string, input *disputedto.AddEvidenceInput) (*domain.DisputeEvidence, error)
	StartReview(ctx context.Context, actor *domain.Actor, disputeID string) (*domain.DisputeRequest, error)
	Resolve(ctx context.Context, actor *domain.Actor, disputeID string, input *disputedto.ResolveDisputeInput) (*domain.DisputeRequest, error)
	Acknowledge(ctx context.Context, actor *domain.Actor, disputeID string) (*domain.DisputeRequest, error)
	Withdraw(ctx context.Context, actor *domain.Actor, disputeID string) (*domain.DisputeRequest, error)
	GetDispute(ctx context.Context, actor *domain.Actor, disputeID string) (*domain.DisputeRequest, error)
}

type DefaultDisputeUsecase struct {
	exec   *workflow.Executor
	store  domain.Store
	wallet domain.WalletGateway
	log    *zap.Logger
}

func NewDefaultDisputeUsecase(exec *workflow.Executor, wallet domain.WalletGateway, log *zap.Logger) *DefaultDisputeUsecase {
	return &DefaultDisputeUsecase{
		exec:   exec,
		store:  exec.Store(),
		wallet: wallet,
		log:    log,
	}
}
