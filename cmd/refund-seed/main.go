package main

import (
	"context"
	"flag"
	"log"

	"github.com/LavaJover/shvark-refund-service/internal/config"
	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/postgres/repository"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Fixture mirrors the marketplace records a local refund service needs.
type Fixture struct {
	Users []struct {
		ID          int64  `yaml:"id"`
		UUID        string `yaml:"uuid"`
		Username    string `yaml:"username"`
		IsAdmin     bool   `yaml:"is_admin"`
		IsModerator bool   `yaml:"is_moderator"`
	} `yaml:"users"`
	Shops []struct {
		ID      int64  `yaml:"id"`
		OwnerID int64  `yaml:"owner_id"`
		Name    string `yaml:"name"`
	} `yaml:"shops"`
	Orders []struct {
		ID          string `yaml:"id"`
		BuyerID     int64  `yaml:"buyer_id"`
		ShopID      int64  `yaml:"shop_id"`
		TotalAmount string `yaml:"total_amount"`
	} `yaml:"orders"`
}

func main() {
	fixturePath := flag.String("fixture", "seed.yaml", "path to the seed fixture")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	cfg := config.MustLoad()
	zlog, err := logger.New(cfg.LogConfig)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zlog.Sync()

	var fixture Fixture
	if err := cleanenv.ReadConfig(*fixturePath, &fixture); err != nil {
		zlog.Fatal("failed to read fixture", zap.String("path", *fixturePath), zap.Error(err))
	}

	db := postgres.MustInitDB(cfg)
	if err := migrate.RunMigrations(db, cfg.RefundDB.MigrationsPath, zlog); err != nil {
		zlog.Fatal("migrations failed", zap.Error(err))
	}
	store := repository.NewDefaultStore(db)
	ctx := context.Background()

	for _, u := range fixture.Users {
		user := &domain.User{ID: u.ID, UUID: u.UUID, Username: u.Username, IsAdmin: u.IsAdmin, IsModerator: u.IsModerator}
		if err := store.SeedUser(ctx, user); err != nil {
			zlog.Fatal("seed user", zap.Int64("id", u.ID), zap.Error(err))
		}
	}
	for _, s := range fixture.Shops {
		if err := store.SeedShop(ctx, &domain.Shop{ID: s.ID, OwnerID: s.OwnerID, Name: s.Name}); err != nil {
			zlog.Fatal("seed shop", zap.Int64("id", s.ID), zap.Error(err))
		}
	}
	for _, o := range fixture.Orders {
		total, err := decimal.NewFromString(o.TotalAmount)
		if err != nil {
			zlog.Fatal("bad order total", zap.String("order_id", o.ID), zap.Error(err))
		}
		order := &domain.Order{ID: o.ID, BuyerID: o.BuyerID, ShopID: o.ShopID, TotalAmount: total}
		if err := store.SeedOrder(ctx, order); err != nil {
			zlog.Fatal("seed order", zap.String("order_id", o.ID), zap.Error(err))
		}
	}
	zlog.Info("seed complete",
		zap.Int("users", len(fixture.Users)),
		zap.Int("shops", len(fixture.Shops)),
		zap.Int("orders", len(fixture.Orders)),
	)
}
