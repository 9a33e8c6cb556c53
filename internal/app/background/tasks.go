package background

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-refund-service/internal/delivery/grpcapi"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type BackgroundTasks struct {
	Health *grpcapi.HealthHandler
	DB     *gorm.DB
	Log    *zap.Logger
}

func NewBackgroundTasks(health *grpcapi.HealthHandler, db *gorm.DB, log *zap.Logger) *BackgroundTasks {
	return &BackgroundTasks{
		Health: health,
		DB:     db,
		Log:    log,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.Health.Watch(ctx, 15*time.Second)
	go bt.startPoolStats(ctx)
}

// startPoolStats logs a saturated connection pool, which usually means
// requests are queueing behind row locks.
func (bt *BackgroundTasks) startPoolStats(ctx context.Context) {
	sqlDB, err := bt.DB.DB()
	if err != nil {
		bt.Log.Warn("pool stats disabled", zap.Error(err))
		return
	}
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := sqlDB.Stats()
			if stats.WaitCount > 0 && stats.InUse >= stats.MaxOpenConnections && stats.MaxOpenConnections > 0 {
				bt.Log.Warn("database pool saturated",
					zap.Int("in_use", stats.InUse),
					zap.Int64("wait_count", stats.WaitCount),
					zap.Duration("wait_duration", stats.WaitDuration),
				)
			}
		}
	}
}
