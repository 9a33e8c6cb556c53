package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-refund-service/internal/client"
	"github.com/LavaJover/shvark-refund-service/internal/config"
	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/lock"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/postgres/repository"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config    *config.RefundConfig
	DB        *gorm.DB
	Log       *zap.Logger
	Registry  *prometheus.Registry
	Metrics   *metrics.RefundMetrics
	Store     domain.Store
	Files     domain.FileStore
	Locker    domain.Locker
	Publisher domain.EventPublisher
	// Wallet is nil when no wallet service is configured.
	Wallet domain.WalletGateway

	closers []func() error
}

func InitializeDependencies(ctx context.Context, cfg *config.RefundConfig, log *zap.Logger) (*Dependencies, error) {
	db := postgres.MustInitDB(cfg)
	if err := migrate.RunMigrations(db, cfg.RefundDB.MigrationsPath, log); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if sqlDB, err := db.DB(); err == nil {
		registry.MustRegister(collectors.NewDBStatsCollector(sqlDB, "refund_db"))
	}
	m := metrics.NewRefundMetrics(registry)

	deps := &Dependencies{
		Config:   cfg,
		DB:       db,
		Log:      log,
		Registry: registry,
		Metrics:  m,
		Store:    repository.NewDefaultStore(db),
	}

	files, err := initFileStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("file store: %w", err)
	}
	deps.Files = files

	deps.Locker = initLocker(deps, cfg, log)
	deps.Publisher = initPublisher(deps, cfg, log)

	if cfg.WalletService.Host != "" {
		wallet := client.NewHTTPWalletClient(fmt.Sprintf("%s:%s", cfg.WalletService.Host, cfg.WalletService.Port))
		deps.Wallet = metrics.InstrumentWallet(wallet, m)
	} else {
		log.Warn("wallet service is not configured, wallet refunds will not be credited")
	}
	return deps, nil
}

func initFileStore(ctx context.Context, cfg *config.RefundConfig) (*storage.MinioFileStore, error) {
	if cfg.Minio.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	files, err := storage.NewMinioFileStore(cfg)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := files.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return files, nil
}

func initLocker(deps *Dependencies, cfg *config.RefundConfig, log *zap.Logger) domain.Locker {
	if cfg.Redis.Addr == "" {
		log.Warn("redis is not configured, falling back to database row locks only")
		return lock.NoopLocker{}
	}
	rdb := lock.NewRedisClient(cfg)
	deps.closers = append(deps.closers, rdb.Close)
	return lock.NewRedisLocker(rdb, cfg.Workflow.LockTTL, log)
}

func initPublisher(deps *Dependencies, cfg *config.RefundConfig, log *zap.Logger) domain.EventPublisher {
	if cfg.KafkaService.Host == "" {
		log.Warn("kafka is not configured, refund events are dropped")
		return kafka.NoopPublisher{}
	}
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	pub := kafka.NewKafkaPublisher(brokers, cfg.KafkaService.Topic)
	deps.closers = append(deps.closers, pub.Close)
	return pub
}

// Close releases connections in reverse order of creation.
func (d *Dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			d.Log.Warn("close failed", zap.Error(err))
		}
	}
	if sqlDB, err := d.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
