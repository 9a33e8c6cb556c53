package refund

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	refunddto "github.com/LavaJover/shvark-refund-service/internal/usecase/dto/refund"
	"github.com/LavaJover/shvark-refund-service/internal/usecase/workflow/workflowtest"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*workflowtest.Env, *DefaultRefundUsecase) {
	t.Helper()
	env := workflowtest.NewEnv(t)
	uc := NewDefaultRefundUsecase(env.Executor, env.Wallet, DefaultLimits(), zap.NewNop())
	return env, uc
}

func createRefund(t *testing.T, env *workflowtest.Env, uc *DefaultRefundUsecase, method, refundType string) *domain.Refund {
	t.Helper()
	refund, err := uc.CreateRefund(context.Background(), env.As(env.Buyer), &refunddto.CreateRefundInput{
		OrderID:                    env.Order.ID,
		Reason:                     "item arrived broken",
		BuyerPreferredRefundMethod: method,
		RefundType:                 refundType,
	})
	if err != nil {
		t.Fatalf("CreateRefund: %v", err)
	}
	return refund
}

func approve(t *testing.T, env *workflowtest.Env, uc *DefaultRefundUsecase, refundID string) *domain.Refund {
	t.Helper()
	refund, err := uc.SellerRespond(context.Background(), env.As(env.Seller), refundID, &refunddto.SellerResponseInput{Action: "approve"})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	return refund
}

func negotiate(env *workflowtest.Env, uc *DefaultRefundUsecase, refundID, method, refundType string) (*domain.Refund, error) {
	return uc.SellerRespond(context.Background(), env.As(env.Seller), refundID, &refunddto.SellerResponseInput{
		Action:              "negotiate",
		CounterRefundMethod: method,
		CounterRefundType:   refundType,
		CounterNotes:        "how about this instead",
	})
}

func setAddress(t *testing.T, env *workflowtest.Env, uc *DefaultRefundUsecase, refundID string) {
	t.Helper()
	_, err := uc.SetReturnAddress(context.Background(), env.As(env.Seller), refundID, &refunddto.ReturnAddressInput{
		RecipientName: "Returns Desk",
		ContactNumber: "+63 900 000 0000",
		City:          "Quezon City",
		Barangay:      "Diliman",
		Street:        "1 Warehouse Rd",
	})
	if err != nil {
		t.Fatalf("SetReturnAddress: %v", err)
	}
}

func reload(t *testing.T, env *workflowtest.Env, refundID string) *domain.Refund {
	t.Helper()
	refund, err := env.Store.GetRefundByID(context.Background(), refundID)
	if err != nil {
		t.Fatalf("GetRefundByID: %v", err)
	}
	return refund
}

func TestCreateRefund(t *testing.T) {
	env, uc := setup(t)
	ctx := context.Background()

	refund := createRefund(t, env, uc, "wallet", "keep")
	if refund.Status != domain.RefundPending || refund.RefundPaymentStatus != domain.PaymentPending {
		t.Fatalf("unexpected initial state %s/%s", refund.Status, refund.RefundPaymentStatus)
	}
	if refund.Version != 1 {
		t.Fatalf("version = %d", refund.Version)
	}
	if got := env.Publisher.Types(); len(got) != 1 || got[0] != domain.EventRefundCreated {
		t.Fatalf("events = %v", got)
	}

	_, err := uc.CreateRefund(ctx, env.As(env.Buyer), &refunddto.CreateRefundInput{
		OrderID: env.Order.ID, Reason: "again", BuyerPreferredRefundMethod: "bank",
	})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("second refund: expected ErrInvalidState, got %v", err)
	}
}

func TestCreateRefundValidation(t *testing.T) {
	env, uc := setup(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		actor *domain.User
		input refunddto.CreateRefundInput
		want  error
	}{
		{"not the buyer", env.Stranger, refunddto.CreateRefundInput{OrderID: env.Order.ID, Reason: "x", BuyerPreferredRefundMethod: "bank"}, domain.ErrForbidden},
		{"unknown order", env.Buyer, refunddto.CreateRefundInput{OrderID: "missing", Reason: "x", BuyerPreferredRefundMethod: "bank"}, domain.ErrNotFound},
		{"empty reason", env.Buyer, refunddto.CreateRefundInput{OrderID: env.Order.ID, BuyerPreferredRefundMethod: "bank"}, domain.ErrValidation},
		{"cash method", env.Buyer, refunddto.CreateRefundInput{OrderID: env.Order.ID, Reason: "x", BuyerPreferredRefundMethod: "cash"}, domain.ErrValidation},
		{"bad type", env.Buyer, refunddto.CreateRefundInput{OrderID: env.Order.ID, Reason: "x", BuyerPreferredRefundMethod: "bank", RefundType: "swap"}, domain.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := tc.input
			_, err := uc.CreateRefund(ctx, env.As(tc.actor), &input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateRefundInfersReturnType(t *testing.T) {
	env, uc := setup(t)
	refund := createRefund(t, env, uc, "return:wallet", "")
	if refund.RefundType != domain.RefundTypeReturn {
		t.Fatalf("refund type = %s", refund.RefundType)
	}
}

func TestCancelRefund(t *testing.T) {
	env, uc := setup(t)
	ctx := context.Background()
	refund := createRefund(t, env, uc, "bank", "keep")

	if _, err := uc.CancelRefund(ctx, env.As(env.Seller), refund.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("seller cancel: expected ErrForbidden, got %v", err)
	}
	cancelled, err := uc.CancelRefund(ctx, env.As(env.Buyer), refund.ID)
	if err != nil {
		t.Fatalf("CancelRefund: %v", err)
	}
	if cancelled.Status != domain.RefundCancelled {
		t.Fatalf("status = %s", cancelled.Status)
	}
	if _, err := uc.CancelRefund(ctx, env.As(env.Buyer), refund.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("second cancel: expected ErrInvalidState, got %v", err)
	}
	// a cancelled refund no longer blocks a new one
	createRefund(t, env, uc, "bank", "keep")
}

func TestSellerApprove(t *testing.T) {
	env, uc := setup(t)
	refund := createRefund(t, env, uc, "voucher", "keep")

	approved := approve(t, env, uc, refund.ID)
	if approved.Status != domain.RefundApproved {
		t.Fatalf("status = %s", approved.Status)
	}
	if approved.FinalRefundMethod != domain.MethodVoucher {
		t.Fatalf("final method = %s", approved.FinalRefundMethod)
	}
	if approved.ApprovedAt == nil {
		t.Fatal("approved_at not set")
	}
	if approved.RefundPaymentStatus != domain.PaymentPending {
		t.Fatalf("payment = %s", approved.RefundPaymentStatus)
	}
	if _, err := env.Store.GetReturnRequestByRefundID(context.Background(), refund.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("keep refund should have no return request, got %v", err)
	}
}

func TestSellerApproveReturnOpensReturnRequest(t *testing.T) {
	env, uc := setup(t)
	refund := createRefund(t, env, uc, "bank", "return")

	approved := approve(t, env, uc, refund.ID)
	rr, err := env.Store.GetReturnRequestByRefundID(context.Background(), refund.ID)
	if err != nil {
		t.Fatalf("return request: %v", err)
	}
	if rr.Status != domain.ReturnPending {
		t.Fatalf("return status = %s", rr.Status)
	}
	if approved.ReturnDeadline == nil {
		t.Fatal("refund return deadline not set")
	}
	want := approved.ApprovedAt.Add(DefaultLimits().ReturnWindow)
	if d := rr.ReturnDeadline.Sub(want).Abs(); d > time.Second {
		t.Fatalf("deadline = %s, want %s", rr.ReturnDeadline, want)
	}
}

func TestSellerRespondAuthorization(t *testing.T) {
	env, uc := setup(t)
	ctx := context.Background()
	refund := createRefund(t, env, uc, "bank", "keep")

	for _, u := range []*domain.User{env.Buyer, env.Stranger} {
		_, err := uc.SellerRespond(ctx, env.As(u), refund.ID, &refunddto.SellerResponseInput{Action: "approve"})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("user %d: expected ErrForbidden, got %v", u.ID, err)
		}
	}

	otherShop := int64(99)
	scoped := &domain.Actor{User: env.Seller, ShopID: &otherShop}
	if _, err := uc.SellerRespond(ctx, scoped, refund.ID, &refunddto.SellerResponseInput{Action: "approve"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("wrong shop scope: expected ErrForbidden, got %v", err)
	}

	rightShop := env.Shop.ID
	scoped = &domain.Actor{User: env.Seller, ShopID: &rightShop}
	if _, err := uc.SellerRespond(ctx, scoped, refund.ID, &refunddto.SellerResponseInput{Action: "approve"}); err != nil {
		t.Fatalf("scoped seller: %v", err)
	}
}

func TestSellerRespondUnknownAction(t *testing.T) {
	env, uc := setup(t)
	refund := createRefund(t, env, uc, "bank", "keep")

	_, err := uc.SellerRespond(context.Background(), env.As(env.Seller), refund.ID, &refunddto.SellerResponseInput{Action: "shrug"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestNegotiateRejectsMethodOutsideWhitelist(t *testing.T) {
	env, uc := setup(t)
	refund := createRefund(t, env, uc, "bank", "keep")

	_, err := negotiate(env, uc, refund.ID, "cash", "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "invalid") {
		t.Fatalf("error %q should mention invalid", err)
	}
	offers, _ := env.Store.ListCounterOffers(context.Background(), refund.ID)
	if len(offers) != 0 {
		t.Fatalf("no offer should be stored, got %d", len(offers))
	}
	if got := reload(t, env, refund.ID); got.Status != domain.RefundPending {
		t.Fatalf("status = %s", got.Status)
	}
}

func TestNegotiateRejectsInvalidType(t *testing.T) {
	env, uc := setup(t)
	refund := createRefund(t, env, uc, "bank", "keep")

	_, err := negotiate(env, uc, refund.ID, "wallet", "exchange")
	if !errors.Is(err, domain.ErrValidation) || !strings.Contains(err.Error(), "invalid") {
		t.Fatalf("expected invalid type error, got %v", err)
	}
}

func TestNegotiateReturnMethodRequiresAddress(t *testing.T) {
	env, uc := setup(t)
	refund := createRefund(t, env, uc, "bank", "keep")

	for _, method := range []string{"return:bank", "return:wallet"} {
		_, err := negotiate(env, uc, refund.ID, method, "return")
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", method, err)
		}
		if !strings.Contains(err.Error(), "Return address required") {
			t.Fatalf("%s: error %q should require a return address", method, err)
		}
	}

	setAddress(t, env, uc, refund.ID)
	updated, err := negotiate(env, uc, refund.ID, "return:bank", "return")
	if err != nil {
		t.Fatalf("negotiate after address: %v", err)
	}
	if updated.Status != domain.RefundNegotiation {
		t.Fatalf("status = %s", updated.Status)
	}
	// the pending offer does not touch the agreed terms
	if updated.FinalRefundMethod != "" || updated.RefundType != domain.RefundTypeKeep {
		t.Fatalf("terms changed before acceptance: %s/%s", updated.FinalRefundMethod, updated.RefundType)
	}
}

func TestMessageOnlyOffer(t *testing.T) {
	env, uc := setup(t)
	refund := createRefund(t, env, uc, "bank", "keep")

	updated, err := negotiate(env, uc, refund.ID, "", "")
	if err != nil {
		t.Fatalf("message-only offer: %v", err)
	}
	if updated.Status != domain.RefundNegotiation {
		t.Fatalf("status = %s", updated.Status)
	}
	offer, err := env.Store.GetLatestPendingCounterOffer(context.Background(), refund.ID)
	if err != nil {
		t.Fatalf("pending offer: %v", err)
	}
	if offer.CounterRefundMethod != "" || offer.Notes == "" {
		t.Fatalf("unexpected offer %+v", offer)
	}
}

func TestAcceptCounterOffer(t *testing.T) {
	env, uc := setup(t)
	ctx := context.Background()
	refund := createRefund(t, env, uc, "bank", "return")

	if _, err := negotiate(env, uc, refund.ID, "voucher", "keep"); err != nil {
		t.Fatalf("negotiate: %v", err)
	}
	accepted, err := uc.RespondToNegotiation(ctx, env.As(env.Buyer), refund.ID, &refunddto.NegotiationResponseInput{Action: "accept"})
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.Status != domain.RefundApproved {
		t.Fatalf("status = %s", accepted.Status)
	}
	if accepted.FinalRefundMethod != domain.MethodVoucher {
		t.Fatalf("final method = %s", accepted.FinalRefundMethod)
	}
	if accepted.RefundType != domain.RefundTypeKeep {
		t.Fatalf("refund type = %s", accepted.RefundType)
	}

	offers, err := env.Store.ListCounterOffers(ctx, refund.ID)
	if err != nil {
		t.Fatalf("ListCounterOffers: %v", err)
	}
	if len(offers) != 1 || offers[0].Status != domain.CounterOfferAccepted || offers[0].RespondedAt == nil {
		t.Fatalf("unexpected offers %+v", offers)
	}
	if got := reload(t, env, refund.ID); got.Status != domain.RefundApproved || got.FinalRefundMethod != domain.MethodVoucher {
		t.Fatalf("persisted refund %s/%s", got.Status, got.FinalRefundMethod)
	}
}

func TestAcceptOfferWithoutTypeKeepsRefundType(t *testing.T) {
	env, uc := setup(t)
	refund := createRefund(t, env, uc, "bank", "keep")

	if _, err := negotiate(env, uc, refund.ID, "wallet", ""); err != nil {
		t.Fatalf("negotiate: %v", err)
	}
	accepted, err := uc.RespondToNegotiation(context.Background(), env.As(env.Buyer), refund.ID, &refunddto.NegotiationResponseInput{Action: "accept"})
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.RefundType != domain.RefundTypeKeep || accepted.FinalRefundMethod != domain.MethodWallet {
		t.Fatalf("got %s/%s", accepted.FinalRefundMethod, accepted.RefundType)
	}
}

func TestRejectCounterOffer(t *testing.T) {
	env, uc := setup(t)
	ctx := context.Background()
	refund := createRefund(t, env, uc, "bank", "keep")

	if _, err := negotiate(env, uc, refund.ID, "voucher", ""); err != nil {
		t.Fatalf("negotiate: %v", err)
	}
	rejected, err := uc.RespondToNegotiation(ctx, env.As(env.Buyer), refund.ID, &refunddto.NegotiationResponseInput{Action: "reject", Reason: "I want my money"})
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != domain.RefundNegotiation {
		t.Fatalf("status = %s", rejected.Status)
	}
	offers, _ := env.Store.ListCounterOffers(ctx, refund.ID)
	if len(offers) != 1 || offers[0].Status != domain.CounterOfferRejected || offers[0].ResponseReason != "I want my money" {
		t.Fatalf("unexpected offers %+v", offers)
	}

	_, err = uc.RespondToNegotiation(ctx, env.As(env.Buyer), refund.ID, &refunddto.NegotiationResponseInput{Action: "accept"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("no pending offer: expected ErrNotFound, got %v", err)
	}
}

func TestRespondToNegotiationChecks(t *testing.T) {
	env, uc := setup(t)
	ctx := context.Background()
	refund := createRefund(t, env, uc, "bank", "keep")

	_, err := uc.RespondToNegotiation(ctx, env.As(env.Buyer), refund.ID, &refunddto.NegotiationResponseInput{Action: "accept"})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("pending refund: expected ErrInvalidState, got %v", err)
	}
	if _, err := negotiate(env, uc, refund.ID, "wallet", ""); err != nil {
		t.Fatalf("negotiate: %v", err)
	}
	_, err = uc.RespondToNegotiation(ctx, env.As(env.Seller), refund.ID, &refunddto.NegotiationResponseInput{Action: "accept"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("seller answering: expected ErrForbidden, got %v", err)
	}
	_, err = uc.RespondToNegotiation(ctx, env.As(env.Buyer), refund.ID, &refunddto.NegotiationResponseInput{Action: "maybe"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("bad action: expected ErrValidation, got %v", err)
	}
}

func TestNewOfferSupersedesPending(t *testing.T) {
	env, uc := setup(t)
	ctx := context.Background()
	refund := createRefund(t, env, uc, "bank", "keep")

	if _, err := negotiate(env, uc, refund.ID, "voucher", ""); err != nil {
		t.Fatalf("first offer: %v", err)
	}
	if _, err := negotiate(env, uc, refund.ID, "wallet", ""); err != nil {
		t.Fatalf("second offer: %v", err)
	}
	offers, _ := env.Store.ListCounterOffers(ctx, refund.ID)
	pending := 0
	for _, o := range offers {
		switch o.Status {
		case domain.CounterOfferPending:
			pending++
			if o.CounterRefundMethod != domain.MethodWallet {
				t.Fatalf("latest pending offer is %s", o.CounterRefundMethod)
			}
		case domain.CounterOfferSuperseded:
		default:
			t.Fatalf("unexpected offer status %s", o.Status)
		}
	}
	if pending != 1 || len(offers) != 2 {
		t.Fatalf("pending=%d total=%d", pending, len(offers))
	}
}

func TestNegotiateAfterPaymentStarted(t *testing.T) {
	env, uc := setup(t)
	ctx := context.Background()
	refund := createRefund(t, env, uc, "bank", "keep")
	approve(t, env, uc, refund.ID)
	addProof(t, env, uc, refund.ID, env.Seller)
	if _, err := uc.ProcessRefund(ctx, env.As(env.Seller), refund.ID, &refunddto.ProcessRefundInput{SetStatus: "processing"}); err != nil {
		t.Fatalf("process: %v", err)
	}
	if _, err := negotiate(env, uc, refund.ID, "voucher", ""); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestSellerRejectsRefund(t *testing.T) {
	env, uc := setup(t)
	refund := createRefund(t, env, uc, "bank", "keep")

	rejected, err := uc.SellerRespond(context.Background(), env.As(env.Seller), refund.ID, &refunddto.SellerResponseInput{Action: "reject"})
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != domain.RefundRejected {
		t.Fatalf("status = %s", rejected.Status)
	}
	_, err = uc.SellerRespond(context.Background(), env.As(env.Seller), refund.ID, &refunddto.SellerResponseInput{Action: "approve"})
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("approve after reject: expected ErrInvalidState, got %v", err)
	}
}
