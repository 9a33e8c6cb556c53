package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordOperation(t *testing.T) {
	m := NewRefundMetrics(prometheus.NewRegistry())

	m.RecordOperation("approve", nil)
	m.RecordOperation("approve", nil)
	m.RecordOperation("approve", errors.New("boom"))
	m.RecordOperation("approve", fmt.Errorf("%w: no", domain.ErrForbidden))

	if got := testutil.ToFloat64(m.OperationsTotal.WithLabelValues("approve", "ok")); got != 2 {
		t.Fatalf("ok count = %v", got)
	}
	if got := testutil.ToFloat64(m.OperationsTotal.WithLabelValues("approve", "error")); got != 1 {
		t.Fatalf("error count = %v", got)
	}
	if got := testutil.ToFloat64(m.OperationsTotal.WithLabelValues("approve", "forbidden")); got != 1 {
		t.Fatalf("forbidden count = %v", got)
	}
}

func TestRecordTransitionSkipsSelfLoops(t *testing.T) {
	m := NewRefundMetrics(prometheus.NewRegistry())

	m.RecordTransition("pending", "pending")
	m.RecordTransition("pending", "approved")

	if got := testutil.CollectAndCount(m.StatusTransitionsTotal); got != 1 {
		t.Fatalf("series = %d", got)
	}
}

func TestRecordAttachments(t *testing.T) {
	m := NewRefundMetrics(prometheus.NewRegistry())
	m.RecordAttachments("return_media", 3)

	if got := testutil.ToFloat64(m.AttachmentsTotal.WithLabelValues("return_media")); got != 3 {
		t.Fatalf("attachments = %v", got)
	}
}

type stubWallet struct{ err error }

func (s stubWallet) CreditRefund(context.Context, domain.WalletCredit) error { return s.err }

func TestInstrumentedWallet(t *testing.T) {
	m := NewRefundMetrics(prometheus.NewRegistry())

	ok := InstrumentWallet(stubWallet{}, m)
	failing := InstrumentWallet(stubWallet{err: domain.ErrWalletCredit}, m)

	if err := ok.CreditRefund(context.Background(), domain.WalletCredit{RefundID: "r1"}); err != nil {
		t.Fatalf("ok credit: %v", err)
	}
	if err := failing.CreditRefund(context.Background(), domain.WalletCredit{RefundID: "r2"}); !errors.Is(err, domain.ErrWalletCredit) {
		t.Fatalf("expected ErrWalletCredit, got %v", err)
	}
	if got := testutil.ToFloat64(m.WalletCreditsTotal.WithLabelValues("ok")); got != 1 {
		t.Fatalf("ok = %v", got)
	}
	if got := testutil.ToFloat64(m.WalletCreditsTotal.WithLabelValues("error")); got != 1 {
		t.Fatalf("error = %v", got)
	}
}
