package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

// Operation names one workflow step. Mutating steps lock the refund
// (or, when creating, the order) for their whole duration.
type Operation struct {
	Name     string
	RefundID string
	// LockKey overrides the default refund:<id> key.
	LockKey string
	Dispute bool
}

func (op Operation) lockKey() string {
	if op.LockKey != "" {
		return op.LockKey
	}
	return "refund:" + op.RefundID
}

type Option func(*Executor)

func WithClock(now func() time.Time) Option {
	return func(e *Executor) { e.now = now }
}

// WithSyncEvents publishes events before Run returns.
func WithSyncEvents() Option {
	return func(e *Executor) { e.dispatch = func(f func()) { f() } }
}

// Executor runs workflow steps atomically: lock, transaction, save with
// version check, then metrics and events once the transaction committed.
type Executor struct {
	store     domain.Store
	locker    domain.Locker
	files     domain.FileStore
	publisher domain.EventPublisher
	metrics   *metrics.RefundMetrics
	log       *zap.Logger
	now       func() time.Time
	dispatch  func(func())
}

func NewExecutor(
	store domain.Store,
	locker domain.Locker,
	files domain.FileStore,
	publisher domain.EventPublisher,
	m *metrics.RefundMetrics,
	log *zap.Logger,
	opts ...Option,
) *Executor {
	e := &Executor{
		store:     store,
		locker:    locker,
		files:     files,
		publisher: publisher,
		metrics:   m,
		log:       log,
		now:       time.Now,
		dispatch:  func(f func()) { go f() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Executor) Now() time.Time {
	return e.now().UTC()
}

func (e *Executor) Store() domain.Store {
	return e.store
}

// Run loads the refund FOR UPDATE, hands it to fn and saves it afterwards.
func (e *Executor) Run(ctx context.Context, op Operation, actor *domain.Actor, fn func(ctx context.Context, step *Step) error) (*domain.Refund, error) {
	return e.execute(ctx, op, actor, func(ctx context.Context, step *Step) error {
		refund, err := step.Tx.GetRefundForUpdate(ctx, op.RefundID)
		if err != nil {
			return err
		}
		parties, err := LoadParties(ctx, step.Tx, refund)
		if err != nil {
			return err
		}
		step.Refund = refund
		step.Parties = parties
		step.from = refund.Status

		if err := fn(ctx, step); err != nil {
			return err
		}
		return step.Tx.SaveRefund(ctx, refund)
	})
}

// Create runs fn for a step that creates the refund itself; fn must set step.Refund.
func (e *Executor) Create(ctx context.Context, op Operation, actor *domain.Actor, fn func(ctx context.Context, step *Step) error) (*domain.Refund, error) {
	return e.execute(ctx, op, actor, func(ctx context.Context, step *Step) error {
		if err := fn(ctx, step); err != nil {
			return err
		}
		if step.Refund == nil {
			return errors.New("create step produced no refund")
		}
		step.from = ""
		return nil
	})
}

func (e *Executor) execute(ctx context.Context, op Operation, actor *domain.Actor, body func(ctx context.Context, step *Step) error) (refund *domain.Refund, err error) {
	defer func() {
		if op.Dispute {
			e.metrics.RecordDisputeOperation(op.Name, err)
		} else {
			e.metrics.RecordOperation(op.Name, err)
		}
	}()

	unlock, err := e.locker.Lock(ctx, op.lockKey())
	if err != nil {
		return nil, err
	}
	defer unlock()

	step := &Step{
		Actor: actor,
		Now:   e.Now(),
		files: e.files,
	}
	err = e.store.Transaction(ctx, func(tx domain.Store) error {
		step.Tx = tx
		return body(ctx, step)
	})
	if err != nil {
		e.discardUploads(step)
		e.log.Debug("workflow step failed",
			zap.String("operation", op.Name),
			zap.String("refund_id", op.RefundID),
			zap.Int64("actor_id", actor.UserID()),
			zap.Error(err),
		)
		return nil, err
	}

	e.afterCommit(op, step)
	return step.Refund, nil
}

func (e *Executor) afterCommit(op Operation, step *Step) {
	refund := step.Refund
	if step.from != "" {
		e.metrics.RecordTransition(string(step.from), string(refund.Status))
	}
	for kind, n := range step.attachments {
		e.metrics.RecordAttachments(kind, n)
	}
	e.log.Info("workflow step applied",
		zap.String("operation", op.Name),
		zap.String("refund_id", refund.ID),
		zap.Int64("actor_id", step.Actor.UserID()),
		zap.String("status", string(refund.Status)),
		zap.String("payment_status", string(refund.RefundPaymentStatus)),
	)

	events := step.events
	if len(events) == 0 {
		return
	}
	e.dispatch(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		for _, event := range events {
			if err := e.publisher.PublishRefundEvent(ctx, event); err != nil {
				e.log.Error("failed to publish refund event",
					zap.String("type", event.Type),
					zap.String("refund_id", event.RefundID),
					zap.Error(err),
				)
			}
		}
	})
}

// discardUploads removes objects stored by a step whose transaction rolled back.
func (e *Executor) discardUploads(step *Step) {
	if len(step.uploaded) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, key := range step.uploaded {
		if err := e.files.Remove(ctx, key); err != nil {
			e.log.Warn("failed to remove orphaned object", zap.String("key", key), zap.Error(err))
		}
	}
}

// Step is the state of one workflow step inside its transaction.
type Step struct {
	Tx      domain.Store
	Refund  *domain.Refund
	Parties *Parties
	Actor   *domain.Actor
	Now     time.Time

	from        domain.RefundStatus
	files       domain.FileStore
	uploaded    []string
	attachments map[string]int
	events      []domain.RefundEvent
}

// Emit queues an event for publishing after commit. The refund fields are
// read when Emit is called.
func (s *Step) Emit(eventType string) {
	s.EmitDispute(eventType, nil)
}

func (s *Step) EmitDispute(eventType string, dispute *domain.DisputeRequest) {
	event := domain.RefundEvent{
		Type:          eventType,
		RefundID:      s.Refund.ID,
		OrderID:       s.Refund.OrderID,
		ActorID:       s.Actor.UserID(),
		Status:        string(s.Refund.Status),
		PaymentStatus: string(s.Refund.RefundPaymentStatus),
		OccurredAt:    s.Now,
	}
	if dispute != nil {
		event.DisputeID = dispute.ID
		event.DisputeStatus = string(dispute.Status)
	}
	s.events = append(s.events, event)
}

// Upload stores a file and remembers it so a rollback can remove it again.
func (s *Step) Upload(ctx context.Context, kind, key string, file domain.Attachment) (*domain.StoredObject, error) {
	obj, err := s.files.Put(ctx, key, file)
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", kind, err)
	}
	s.uploaded = append(s.uploaded, obj.Key)
	if s.attachments == nil {
		s.attachments = make(map[string]int)
	}
	s.attachments[kind]++
	return obj, nil
}
