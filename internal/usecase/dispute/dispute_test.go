package dispute

import (
	"context"
	"errors"
	"testing"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	disputedto "github.com/LavaJover/shvark-refund-service/internal/usecase/dto/dispute"
	refunddto "github.com/LavaJover/shvark-refund-service/internal/usecase/dto/refund"
	"github.com/LavaJover/shvark-refund-service/internal/usecase/identity"
	"github.com/LavaJover/shvark-refund-service/internal/usecase/refund"
	"github.com/LavaJover/shvark-refund-service/internal/usecase/workflow/workflowtest"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type fixture struct {
	env      *workflowtest.Env
	refunds  *refund.DefaultRefundUsecase
	disputes *DefaultDisputeUsecase
}

func setup(t *testing.T) *fixture {
	t.Helper()
	env := workflowtest.NewEnv(t)
	return &fixture{
		env:      env,
		refunds:  refund.NewDefaultRefundUsecase(env.Executor, env.Wallet, refund.DefaultLimits(), zap.NewNop()),
		disputes: NewDefaultDisputeUsecase(env.Executor, env.Wallet, zap.NewNop()),
	}
}

// rejectedRefund creates a refund the seller turned down.
func (f *fixture) rejectedRefund(t *testing.T, method string) *domain.Refund {
	t.Helper()
	ctx := context.Background()
	r, err := f.refunds.CreateRefund(ctx, f.env.As(f.env.Buyer), &refunddto.CreateRefundInput{
		OrderID:                    f.env.Order.ID,
		Reason:                     "never arrived",
		BuyerPreferredRefundMethod: method,
		RefundType:                 "keep",
	})
	if err != nil {
		t.Fatalf("CreateRefund: %v", err)
	}
	if _, err := f.refunds.SellerRespond(ctx, f.env.As(f.env.Seller), r.ID, &refunddto.SellerResponseInput{Action: "reject"}); err != nil {
		t.Fatalf("reject: %v", err)
	}
	return r
}

func (f *fixture) file(t *testing.T, refundID string) *domain.DisputeRequest {
	t.Helper()
	d, err := f.disputes.FileDispute(context.Background(), f.env.As(f.env.Buyer), &disputedto.FileDisputeInput{RefundID: refundID, Reason: "seller ignores me"})
	if err != nil {
		t.Fatalf("FileDispute: %v", err)
	}
	return d
}

func (f *fixture) refund(t *testing.T, id string) *domain.Refund {
	t.Helper()
	r, err := f.env.Store.GetRefundByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetRefundByID: %v", err)
	}
	return r
}

func TestFileDispute(t *testing.T) {
	f := setup(t)
	r := f.rejectedRefund(t, "bank")

	d := f.file(t, r.ID)
	if d.Status != domain.DisputeOpen || d.RefundStatusOriginal != domain.RefundRejected || d.RequestedBy != f.env.Buyer.ID {
		t.Fatalf("unexpected dispute %+v", d)
	}
	if got := f.refund(t, r.ID).Status; got != domain.RefundDispute {
		t.Fatalf("refund status = %s", got)
	}

	_, err := f.disputes.FileDispute(context.Background(), f.env.As(f.env.Buyer), &disputedto.FileDisputeInput{RefundID: r.ID, Reason: "again"})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("second dispute: expected ErrInvalidState, got %v", err)
	}
}

func TestFileDisputeEligibility(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	r, err := f.refunds.CreateRefund(ctx, f.env.As(f.env.Buyer), &refunddto.CreateRefundInput{
		OrderID: f.env.Order.ID, Reason: "broken", BuyerPreferredRefundMethod: "bank",
	})
	if err != nil {
		t.Fatalf("CreateRefund: %v", err)
	}

	input := &disputedto.FileDisputeInput{RefundID: r.ID, Reason: "too slow"}
	if _, err := f.disputes.FileDispute(ctx, f.env.As(f.env.Buyer), input); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("pending refund: expected ErrInvalidState, got %v", err)
	}
	if _, err := f.disputes.FileDispute(ctx, f.env.As(f.env.Seller), input); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("seller: expected ErrForbidden, got %v", err)
	}
	if _, err := f.disputes.FileDispute(ctx, f.env.As(f.env.Buyer), &disputedto.FileDisputeInput{RefundID: r.ID}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("no reason: expected ErrValidation, got %v", err)
	}

	// negotiation stalls
	if _, err := f.refunds.SellerRespond(ctx, f.env.As(f.env.Seller), r.ID, &refunddto.SellerResponseInput{Action: "negotiate", CounterRefundMethod: "voucher"}); err != nil {
		t.Fatalf("negotiate: %v", err)
	}
	if _, err := f.disputes.FileDispute(ctx, f.env.As(f.env.Buyer), input); err != nil {
		t.Fatalf("negotiation refund: %v", err)
	}
}

func TestFileDisputeAfterReturnRejected(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	buyer, seller := f.env.As(f.env.Buyer), f.env.As(f.env.Seller)

	r, err := f.refunds.CreateRefund(ctx, buyer, &refunddto.CreateRefundInput{
		OrderID: f.env.Order.ID, Reason: "wrong size", BuyerPreferredRefundMethod: "bank", RefundType: "return",
	})
	if err != nil {
		t.Fatalf("CreateRefund: %v", err)
	}
	steps := []func() error{
		func() error {
			_, err := f.refunds.SellerRespond(ctx, seller, r.ID, &refunddto.SellerResponseInput{Action: "approve"})
			return err
		},
		func() error {
			_, err := f.refunds.UpdateTracking(ctx, buyer, r.ID, &refunddto.UpdateTrackingInput{TrackingNumber: "LBC123"})
			return err
		},
		func() error {
			_, err := f.refunds.ReviewReturn(ctx, seller, r.ID, &refunddto.ReviewReturnInput{Action: "reject"})
			return err
		},
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	d := f.file(t, r.ID)
	if d.RefundStatusOriginal != domain.RefundApproved {
		t.Fatalf("original status = %s", d.RefundStatusOriginal)
	}
}

func TestStartReviewResolvesAdminIdentity(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	resolver := identity.NewResolver(f.env.Store)
	d := f.file(t, f.rejectedRefund(t, "bank").ID)

	for _, raw := range []string{"3", f.env.Admin.UUID, "admin", `"3"`, "“3”"} {
		user, err := resolver.RequireStaff(ctx, raw)
		if err != nil {
			t.Fatalf("resolve %s: %v", raw, err)
		}
		got, err := f.disputes.StartReview(ctx, &domain.Actor{User: user}, d.ID)
		if err != nil {
			t.Fatalf("start_review as %s: %v", raw, err)
		}
		if got.Status != domain.DisputeUnderReview || got.ProcessedBy == nil || *got.ProcessedBy != f.env.Admin.ID {
			t.Fatalf("start_review as %s: unexpected dispute %+v", raw, got)
		}
	}

	got, err := f.disputes.StartReview(ctx, f.env.As(f.env.Moderator), d.ID)
	if err != nil {
		t.Fatalf("moderator: %v", err)
	}
	if *got.ProcessedBy != f.env.Moderator.ID {
		t.Fatalf("processed_by = %d", *got.ProcessedBy)
	}
}

func TestStartReviewRequiresStaff(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	resolver := identity.NewResolver(f.env.Store)
	d := f.file(t, f.rejectedRefund(t, "bank").ID)

	if _, err := resolver.RequireStaff(ctx, "buyer.one"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("buyer as staff: expected ErrForbidden, got %v", err)
	}
	if _, err := resolver.RequireStaff(ctx, "999"); !errors.Is(err, domain.ErrActorNotFound) {
		t.Fatalf("unknown id: expected ErrActorNotFound, got %v", err)
	}
	if _, err := f.disputes.StartReview(ctx, f.env.As(f.env.Buyer), d.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("buyer: expected ErrForbidden, got %v", err)
	}
	if _, err := f.disputes.StartReview(ctx, f.env.As(f.env.Admin), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing dispute: expected ErrNotFound, got %v", err)
	}
}

func TestResolveValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	admin := f.env.As(f.env.Admin)
	d := f.file(t, f.rejectedRefund(t, "bank").ID)
	amount := func(s string) *decimal.Decimal {
		v := decimal.RequireFromString(s)
		return &v
	}

	cases := []struct {
		name  string
		input disputedto.ResolveDisputeInput
		want  error
	}{
		{"bad status", disputedto.ResolveDisputeInput{Status: "resolved", Outcome: "buyer_wins"}, domain.ErrValidation},
		{"outcome mismatch", disputedto.ResolveDisputeInput{Status: "approved", Outcome: "seller_wins"}, domain.ErrValidation},
		{"partial without amount", disputedto.ResolveDisputeInput{Status: "approved", Outcome: "partial_refund"}, domain.ErrValidation},
		{"negative amount", disputedto.ResolveDisputeInput{Status: "approved", Outcome: "buyer_wins", AwardedAmount: amount("-1")}, domain.ErrValidation},
		{"above order total", disputedto.ResolveDisputeInput{Status: "approved", Outcome: "partial_refund", AwardedAmount: amount("250.01")}, domain.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.disputes.Resolve(ctx, admin, d.ID, &tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	if _, err := f.disputes.Resolve(ctx, f.env.As(f.env.Seller), d.ID, &disputedto.ResolveDisputeInput{Status: "rejected", Outcome: "seller_wins"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("seller: expected ErrForbidden, got %v", err)
	}
}

func TestAcknowledgeRejectedDispute(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	r := f.rejectedRefund(t, "wallet")
	d := f.file(t, r.ID)

	if _, err := f.disputes.Acknowledge(ctx, f.env.As(f.env.Buyer), d.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("open dispute: expected ErrInvalidState, got %v", err)
	}
	if _, err := f.disputes.Resolve(ctx, f.env.As(f.env.Admin), d.ID, &disputedto.ResolveDisputeInput{Status: "rejected", Outcome: "seller_wins", AdminNote: "photos show intact item"}); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, err := f.disputes.Acknowledge(ctx, f.env.As(f.env.Seller), d.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("seller: expected ErrForbidden, got %v", err)
	}

	got, err := f.disputes.Acknowledge(ctx, f.env.As(f.env.Buyer), d.ID)
	if err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}
	if got.Status != domain.DisputeResolved {
		t.Fatalf("dispute status = %s", got.Status)
	}
	updated := f.refund(t, r.ID)
	if updated.Status != domain.RefundCompleted || updated.RefundPaymentStatus != domain.PaymentCompleted {
		t.Fatalf("refund = %s/%s", updated.Status, updated.RefundPaymentStatus)
	}
	if updated.AdminNote != "photos show intact item" {
		t.Fatalf("admin note = %q", updated.AdminNote)
	}
	if len(f.env.Wallet.Credits) != 0 {
		t.Fatalf("seller_wins must not credit the wallet: %+v", f.env.Wallet.Credits)
	}
}

func TestAcknowledgeApprovedDisputeCreditsWallet(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	r := f.rejectedRefund(t, "wallet")
	d := f.file(t, r.ID)

	awarded := decimal.RequireFromString("120.50")
	resolved, err := f.disputes.Resolve(ctx, f.env.As(f.env.Admin), d.ID, &disputedto.ResolveDisputeInput{
		Status: "approved", Outcome: "partial_refund", AwardedAmount: &awarded,
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Status != domain.DisputeApproved || resolved.ResolvedAt == nil {
		t.Fatalf("unexpected ruling %+v", resolved)
	}
	if got := f.refund(t, r.ID); got.Status != domain.RefundDispute || got.AwardedAmount == nil || !got.AwardedAmount.Equal(awarded) {
		t.Fatalf("refund after ruling = %+v", got)
	}

	if _, err := f.disputes.Acknowledge(ctx, f.env.As(f.env.Buyer), d.ID); err != nil {
		t.Fatalf("Acknowledge: %v", err)
	}
	updated := f.refund(t, r.ID)
	if updated.Status != domain.RefundCompleted || updated.RefundPaymentStatus != domain.PaymentCompleted {
		t.Fatalf("refund = %s/%s", updated.Status, updated.RefundPaymentStatus)
	}
	if len(f.env.Wallet.Credits) != 1 || !f.env.Wallet.Credits[0].Amount.Equal(awarded) || f.env.Wallet.Credits[0].UserID != f.env.Buyer.ID {
		t.Fatalf("credits = %+v", f.env.Wallet.Credits)
	}

	if _, err := f.disputes.Acknowledge(ctx, f.env.As(f.env.Buyer), d.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("second acknowledge: expected ErrInvalidState, got %v", err)
	}
}

func TestWithdrawRestoresRefundStatus(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	r := f.rejectedRefund(t, "bank")
	d := f.file(t, r.ID)

	got, err := f.disputes.Withdraw(ctx, f.env.As(f.env.Buyer), d.ID)
	if err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if got.Status != domain.DisputeResolved || got.Outcome != domain.OutcomeWithdrawn {
		t.Fatalf("unexpected dispute %+v", got)
	}
	if status := f.refund(t, r.ID).Status; status != domain.RefundRejected {
		t.Fatalf("refund status = %s", status)
	}
	if _, err := f.disputes.Withdraw(ctx, f.env.As(f.env.Buyer), d.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("second withdraw: expected ErrInvalidState, got %v", err)
	}
}

func TestAddEvidence(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	d := f.file(t, f.rejectedRefund(t, "bank").ID)

	for _, u := range []*domain.User{f.env.Buyer, f.env.Seller} {
		ev, err := f.disputes.AddEvidence(ctx, f.env.As(u), d.ID, &disputedto.AddEvidenceInput{File: workflowtest.Image("chat"), Notes: "screenshot"})
		if err != nil {
			t.Fatalf("user %d: %v", u.ID, err)
		}
		if ev.UploadedBy != u.ID || ev.FileURL == "" {
			t.Fatalf("unexpected evidence %+v", ev)
		}
	}
	if _, err := f.disputes.AddEvidence(ctx, f.env.As(f.env.Stranger), d.ID, &disputedto.AddEvidenceInput{File: workflowtest.Image("x")}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("stranger: expected ErrForbidden, got %v", err)
	}
	if _, err := f.disputes.AddEvidence(ctx, f.env.As(f.env.Buyer), d.ID, &disputedto.AddEvidenceInput{}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("no file: expected ErrValidation, got %v", err)
	}
	if f.env.Files.Len() != 2 {
		t.Fatalf("stored objects = %d", f.env.Files.Len())
	}

	got, err := f.disputes.GetDispute(ctx, f.env.As(f.env.Seller), d.ID)
	if err != nil {
		t.Fatalf("GetDispute: %v", err)
	}
	if len(got.Evidence) != 2 {
		t.Fatalf("evidence = %d", len(got.Evidence))
	}
	if _, err := f.disputes.GetDispute(ctx, f.env.As(f.env.Stranger), d.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("stranger read: expected ErrForbidden, got %v", err)
	}
}

// negotiatingRefund leaves a pending voucher offer on the table.
func (f *fixture) negotiatingRefund(t *testing.T) *domain.Refund {
	t.Helper()
	ctx := context.Background()
	r, err := f.refunds.CreateRefund(ctx, f.env.As(f.env.Buyer), &refunddto.CreateRefundInput{
		OrderID: f.env.Order.ID, Reason: "scratched", BuyerPreferredRefundMethod: "bank", RefundType: "keep",
	})
	if err != nil {
		t.Fatalf("CreateRefund: %v", err)
	}
	if _, err := f.refunds.SellerRespond(ctx, f.env.As(f.env.Seller), r.ID, &refunddto.SellerResponseInput{Action: "negotiate", CounterRefundMethod: "voucher"}); err != nil {
		t.Fatalf("negotiate: %v", err)
	}
	return r
}

func TestFilingDisputeClosesPendingOffers(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	r := f.negotiatingRefund(t)
	d := f.file(t, r.ID)

	offers, err := f.env.Store.ListCounterOffers(ctx, r.ID)
	if err != nil {
		t.Fatalf("ListCounterOffers: %v", err)
	}
	if len(offers) != 1 || offers[0].Status != domain.CounterOfferSuperseded {
		t.Fatalf("unexpected offers %+v", offers)
	}

	_, err = f.refunds.RespondToNegotiation(ctx, f.env.As(f.env.Buyer), r.ID, &refunddto.NegotiationResponseInput{Action: "accept"})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("accept during dispute: expected ErrInvalidState, got %v", err)
	}
	got := f.refund(t, r.ID)
	if got.Status != domain.RefundDispute || got.FinalRefundMethod == domain.MethodVoucher {
		t.Fatalf("refund moved during dispute: %+v", got)
	}

	if _, err := f.disputes.Withdraw(ctx, f.env.As(f.env.Buyer), d.ID); err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if status := f.refund(t, r.ID).Status; status != domain.RefundNegotiation {
		t.Fatalf("refund status after withdraw = %s", status)
	}
	_, err = f.refunds.RespondToNegotiation(ctx, f.env.As(f.env.Buyer), r.ID, &refunddto.NegotiationResponseInput{Action: "accept"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("superseded offer revived: expected ErrNotFound, got %v", err)
	}
}

func TestRefundActionsBlockedWhileDisputed(t *testing.T) {
	ctx := context.Background()
	actions := []struct {
		name string
		run  func(f *fixture, refundID string) error
	}{
		{"respond_to_negotiation", func(f *fixture, id string) error {
			_, err := f.refunds.RespondToNegotiation(ctx, f.env.As(f.env.Buyer), id, &refunddto.NegotiationResponseInput{Action: "accept"})
			return err
		}},
		{"confirm_received", func(f *fixture, id string) error {
			_, err := f.refunds.ConfirmReceived(ctx, f.env.As(f.env.Buyer), id)
			return err
		}},
		{"cancel", func(f *fixture, id string) error {
			_, err := f.refunds.CancelRefund(ctx, f.env.As(f.env.Buyer), id)
			return err
		}},
		{"seller_approve", func(f *fixture, id string) error {
			_, err := f.refunds.SellerRespond(ctx, f.env.As(f.env.Seller), id, &refunddto.SellerResponseInput{Action: "approve"})
			return err
		}},
	}
	origins := []struct {
		name   string
		refund func(f *fixture, t *testing.T) *domain.Refund
	}{
		{"negotiation", func(f *fixture, t *testing.T) *domain.Refund { return f.negotiatingRefund(t) }},
		{"rejected", func(f *fixture, t *testing.T) *domain.Refund { return f.rejectedRefund(t, "bank") }},
	}

	for _, origin := range origins {
		for _, review := range []bool{false, true} {
			for _, action := range actions {
				f := setup(t)
				r := origin.refund(f, t)
				d := f.file(t, r.ID)
				if review {
					if _, err := f.disputes.StartReview(ctx, f.env.As(f.env.Admin), d.ID); err != nil {
						t.Fatalf("StartReview: %v", err)
					}
				}
				if err := action.run(f, r.ID); !errors.Is(err, domain.ErrInvalidState) {
					t.Fatalf("%s from %s (under review: %v): expected ErrInvalidState, got %v", action.name, origin.name, review, err)
				}
				if status := f.refund(t, r.ID).Status; status != domain.RefundDispute {
					t.Fatalf("%s from %s: refund status = %s", action.name, origin.name, status)
				}
			}
		}
	}
}

func TestDecisionsCarryEvidence(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	d := f.file(t, f.rejectedRefund(t, "bank").ID)
	if _, err := f.disputes.AddEvidence(ctx, f.env.As(f.env.Buyer), d.ID, &disputedto.AddEvidenceInput{File: workflowtest.Image("receipt")}); err != nil {
		t.Fatalf("AddEvidence: %v", err)
	}

	reviewed, err := f.disputes.StartReview(ctx, f.env.As(f.env.Admin), d.ID)
	if err != nil {
		t.Fatalf("StartReview: %v", err)
	}
	if len(reviewed.Evidence) != 1 {
		t.Fatalf("start_review evidence = %d", len(reviewed.Evidence))
	}
	withdrawn, err := f.disputes.Withdraw(ctx, f.env.As(f.env.Buyer), d.ID)
	if err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if len(withdrawn.Evidence) != 1 {
		t.Fatalf("withdraw evidence = %d", len(withdrawn.Evidence))
	}
}
