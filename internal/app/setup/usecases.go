package setup

import (
	"github.com/LavaJover/shvark-refund-service/internal/usecase/dispute"
	"github.com/LavaJover/shvark-refund-service/internal/usecase/identity"
	"github.com/LavaJover/shvark-refund-service/internal/usecase/refund"
	"github.com/LavaJover/shvark-refund-service/internal/usecase/workflow"
)

type UseCases struct {
	RefundUsecase  refund.RefundUsecase
	DisputeUsecase dispute.DisputeUsecase
	Resolver       *identity.Resolver
}

func InitializeUseCases(deps *Dependencies) *UseCases {
	exec := workflow.NewExecutor(
		deps.Store,
		deps.Locker,
		deps.Files,
		deps.Publisher,
		deps.Metrics,
		deps.Log,
	)
	wf := deps.Config.Workflow
	limits := refund.Limits{
		MaxProofs:      wf.MaxProofs,
		MaxReturnMedia: wf.MaxReturnMedia,
		ReturnWindow:   wf.ReturnWindow,
	}
	return &UseCases{
		RefundUsecase:  refund.NewDefaultRefundUsecase(exec, deps.Wallet, limits, deps.Log.Named("refund")),
		DisputeUsecase: dispute.NewDefaultDisputeUsecase(exec, deps.Wallet, deps.Log.Named("dispute")),
		Resolver:       identity.NewResolver(deps.Store),
	}
}
