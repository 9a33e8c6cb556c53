package refund

import (
	"context"
	"errors"
	"testing"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	refunddto "github.com/LavaJover/shvark-refund-service/internal/usecase/dto/refund"
)

func TestGetRefundDetails(t *testing.T) {
	env, uc := setup(t)
	ctx := context.Background()
	refund := createRefund(t, env, uc, "bank", "keep")
	setAddress(t, env, uc, refund.ID)
	if _, err := negotiate(env, uc, refund.ID, "voucher", ""); err != nil {
		t.Fatalf("negotiate: %v", err)
	}
	addProof(t, env, uc, refund.ID, env.Seller)

	for _, u := range []*domain.User{env.Buyer, env.Seller, env.Admin} {
		details, err := uc.GetRefund(ctx, env.As(u), refund.ID)
		if err != nil {
			t.Fatalf("user %d: %v", u.ID, err)
		}
		if len(details.CounterOffers) != 1 || len(details.Proofs) != 1 || details.ReturnAddress == nil {
			t.Fatalf("user %d: incomplete details %+v", u.ID, details)
		}
		if details.ReturnRequest != nil || details.Dispute != nil {
			t.Fatalf("user %d: unexpected sub-records", u.ID)
		}
	}

	if _, err := uc.GetRefund(ctx, env.As(env.Stranger), refund.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("stranger: expected ErrForbidden, got %v", err)
	}
	if _, err := uc.GetRefund(ctx, env.As(env.Buyer), "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing: expected ErrNotFound, got %v", err)
	}
}

func TestListRefundsVisibility(t *testing.T) {
	env, uc := setup(t)
	ctx := context.Background()
	refund := createRefund(t, env, uc, "bank", "keep")

	for _, tc := range []struct {
		user *domain.User
		want int64
	}{
		{env.Buyer, 1},
		{env.Seller, 1},
		{env.Admin, 1},
		{env.Stranger, 0},
	} {
		out, err := uc.ListRefunds(ctx, env.As(tc.user), &refunddto.ListRefundsInput{})
		if err != nil {
			t.Fatalf("user %d: %v", tc.user.ID, err)
		}
		if out.Total != tc.want || int64(len(out.Refunds)) != tc.want {
			t.Fatalf("user %d: total=%d len=%d, want %d", tc.user.ID, out.Total, len(out.Refunds), tc.want)
		}
		if tc.want == 1 && out.Refunds[0].ID != refund.ID {
			t.Fatalf("user %d: got refund %s", tc.user.ID, out.Refunds[0].ID)
		}
	}

	out, err := uc.ListRefunds(ctx, env.As(env.Admin), &refunddto.ListRefundsInput{Status: "approved"})
	if err != nil {
		t.Fatalf("status filter: %v", err)
	}
	if out.Total != 0 {
		t.Fatalf("approved refunds = %d", out.Total)
	}
	if _, err := uc.ListRefunds(ctx, env.As(env.Admin), &refunddto.ListRefundsInput{Status: "weird"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("bad status: expected ErrValidation, got %v", err)
	}
}
