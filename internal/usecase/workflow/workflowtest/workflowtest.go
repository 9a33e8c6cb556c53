// Package workflowtest provides an sqlite-backed store, seeded marketplace
// records and in-memory adapters for workflow tests.
package workflowtest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/postgres/models"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/postgres/repository"
	"github.com/LavaJover/shvark-refund-service/internal/usecase/workflow"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a fresh in-memory database with the refund schema.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Env is a seeded marketplace: one shop owned by Seller, one order of Buyer
// in that shop, an admin, a moderator and an unrelated user.
type Env struct {
	DB        *gorm.DB
	Store     *repository.DefaultStore
	Files     *MemoryFileStore
	Publisher *RecordingPublisher
	Wallet    *FakeWallet
	Metrics   *metrics.RefundMetrics
	Executor  *workflow.Executor

	Buyer     *domain.User
	Seller    *domain.User
	Admin     *domain.User
	Moderator *domain.User
	Stranger  *domain.User
	Shop      *domain.Shop
	Order     *domain.Order
}

func NewEnv(t testing.TB) *Env {
	t.Helper()
	db := NewDB(t)
	store := repository.NewDefaultStore(db)
	env := &Env{
		DB:        db,
		Store:     store,
		Files:     NewMemoryFileStore(),
		Publisher: &RecordingPublisher{},
		Wallet:    &FakeWallet{},
		Metrics:   metrics.NewRefundMetrics(prometheus.NewRegistry()),
		Buyer:     &domain.User{ID: 1, UUID: "7f1a0c9e-3b7d-4c1e-9a56-0d2b8f4e6a11", Username: "buyer.one"},
		Seller:    &domain.User{ID: 2, UUID: "0b5e2f6a-8c41-4d7b-b3e9-5a9c1d2e7f30", Username: "seller_two"},
		Admin:     &domain.User{ID: 3, UUID: "c3d4e5f6-a7b8-4c9d-8e0f-1a2b3c4d5e6f", Username: "admin", IsAdmin: true},
		Moderator: &domain.User{ID: 4, UUID: "d9e8f7a6-b5c4-4d3e-9f2a-1b0c9d8e7f6a", Username: "mod", IsModerator: true},
		Stranger:  &domain.User{ID: 5, UUID: "e1f2a3b4-c5d6-4e7f-8a9b-0c1d2e3f4a5b", Username: "stranger"},
		Shop:      &domain.Shop{ID: 10, OwnerID: 2, Name: "Seller Two Goods"},
		Order:     &domain.Order{ID: "ord_100", BuyerID: 1, ShopID: 10, TotalAmount: decimal.RequireFromString("250.00")},
	}
	env.Executor = workflow.NewExecutor(store, NoLock{}, env.Files, env.Publisher, env.Metrics, zap.NewNop(), workflow.WithSyncEvents())

	ctx := context.Background()
	for _, u := range []*domain.User{env.Buyer, env.Seller, env.Admin, env.Moderator, env.Stranger} {
		if err := store.SeedUser(ctx, u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	if err := store.SeedShop(ctx, env.Shop); err != nil {
		t.Fatalf("seed shop: %v", err)
	}
	if err := store.SeedOrder(ctx, env.Order); err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return env
}

func (e *Env) As(u *domain.User) *domain.Actor {
	return &domain.Actor{User: u}
}

// Image returns a small attachment with a png name.
func Image(name string) domain.Attachment {
	return domain.Attachment{Filename: name + ".png", ContentType: "image/png", Data: []byte("\x89PNG" + name)}
}

func Images(n int) []domain.Attachment {
	files := make([]domain.Attachment, n)
	for i := range files {
		files[i] = Image(fmt.Sprintf("img%d", i))
	}
	return files
}

type NoLock struct{}

func (NoLock) Lock(context.Context, string) (func(), error) { return func() {}, nil }

type MemoryFileStore struct {
	mu      sync.Mutex
	objects map[string]domain.Attachment
	FailPut bool
}

func NewMemoryFileStore() *MemoryFileStore {
	return &MemoryFileStore{objects: make(map[string]domain.Attachment)}
}

func (s *MemoryFileStore) Put(_ context.Context, key string, file domain.Attachment) (*domain.StoredObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailPut {
		return nil, errors.New("object store unavailable")
	}
	s.objects[key] = file
	return &domain.StoredObject{Key: key, URL: "http://objects.test/" + key}, nil
}

func (s *MemoryFileStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *MemoryFileStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

type RecordingPublisher struct {
	mu     sync.Mutex
	Events []domain.RefundEvent
}

func (p *RecordingPublisher) PublishRefundEvent(_ context.Context, event domain.RefundEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
	return nil
}

func (p *RecordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.Events))
	for i, e := range p.Events {
		types[i] = e.Type
	}
	return types
}

type FakeWallet struct {
	mu      sync.Mutex
	Credits []domain.WalletCredit
	Err     error
}

func (w *FakeWallet) CreditRefund(_ context.Context, credit domain.WalletCredit) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Err != nil {
		return w.Err
	}
	w.Credits = append(w.Credits, credit)
	return nil
}
