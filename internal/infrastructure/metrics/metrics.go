package metrics

import (
	"context"
	"errors"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RefundMetrics holds the workflow counters and the HTTP latency histogram.
type RefundMetrics struct {
	// Workflow operations by name and result (ok / error kind)
	OperationsTotal *prometheus.CounterVec
	// Refund status changes
	StatusTransitionsTotal *prometheus.CounterVec
	// Stored files: proof, return_media, dispute_evidence
	AttachmentsTotal *prometheus.CounterVec
	// Dispute operations by name and result
	DisputeOperationsTotal *prometheus.CounterVec
	// Wallet credits issued on completion
	WalletCreditsTotal *prometheus.CounterVec

	HTTPRequestDuration *prometheus.HistogramVec
}

func NewRefundMetrics(reg prometheus.Registerer) *RefundMetrics {
	factory := promauto.With(reg)
	return &RefundMetrics{
		OperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refund_operations_total",
				Help: "Refund workflow operations by result",
			},
			[]string{"operation", "result"},
		),
		StatusTransitionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refund_status_transitions_total",
				Help: "Refund status transitions",
			},
			[]string{"from", "to"},
		),
		AttachmentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refund_attachments_total",
				Help: "Attachments stored for refunds and disputes",
			},
			[]string{"kind"},
		),
		DisputeOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dispute_operations_total",
				Help: "Dispute operations by result",
			},
			[]string{"operation", "result"},
		),
		WalletCreditsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refund_wallet_credits_total",
				Help: "Wallet credits issued for completed refunds",
			},
			[]string{"result"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

func (m *RefundMetrics) RecordOperation(operation string, err error) {
	m.OperationsTotal.WithLabelValues(operation, Result(err)).Inc()
}

func (m *RefundMetrics) RecordDisputeOperation(operation string, err error) {
	m.DisputeOperationsTotal.WithLabelValues(operation, Result(err)).Inc()
}

func (m *RefundMetrics) RecordTransition(from, to string) {
	if from == to {
		return
	}
	m.StatusTransitionsTotal.WithLabelValues(from, to).Inc()
}

func (m *RefundMetrics) RecordAttachments(kind string, n int) {
	m.AttachmentsTotal.WithLabelValues(kind).Add(float64(n))
}

// InstrumentedWallet counts wallet credits by result.
type InstrumentedWallet struct {
	next    domain.WalletGateway
	metrics *RefundMetrics
}

func InstrumentWallet(next domain.WalletGateway, m *RefundMetrics) *InstrumentedWallet {
	return &InstrumentedWallet{next: next, metrics: m}
}

func (w *InstrumentedWallet) CreditRefund(ctx context.Context, credit domain.WalletCredit) error {
	err := w.next.CreditRefund(ctx, credit)
	result := "ok"
	if err != nil {
		result = "error"
	}
	w.metrics.WalletCreditsTotal.WithLabelValues(result).Inc()
	return err
}

// Result turns an operation error into a low-cardinality label.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrLimitExceeded),
		errors.Is(err, domain.ErrInvalidState), errors.Is(err, domain.ErrInvalidActor):
		return "rejected"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrActorNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConcurrentUpdate), errors.Is(err, domain.ErrLocked):
		return "conflict"
	default:
		return "error"
	}
}
