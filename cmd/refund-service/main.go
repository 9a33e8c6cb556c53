package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/LavaJover/shvark-refund-service/internal/app/background"
	"github.com/LavaJover/shvark-refund-service/internal/app/setup"
	"github.com/LavaJover/shvark-refund-service/internal/config"
	"github.com/LavaJover/shvark-refund-service/internal/delivery/grpcapi"
	"github.com/LavaJover/shvark-refund-service/internal/delivery/http/handlers"
	"github.com/LavaJover/shvark-refund-service/internal/delivery/http/router"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()

	zlog, err := logger.New(cfg.LogConfig)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := setup.InitializeDependencies(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to init dependencies", zap.Error(err))
	}
	defer deps.Close()

	uc := setup.InitializeUseCases(deps)

	// gRPC health
	sqlDB, err := deps.DB.DB()
	if err != nil {
		zlog.Fatal("failed to get sql db", zap.Error(err))
	}
	healthHandler := grpcapi.NewHealthHandler(sqlDB, zlog.Named("health"))
	grpcServer := grpc.NewServer()
	healthHandler.Register(grpcServer)

	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%s", cfg.GRPCServer.Host, cfg.GRPCServer.Port))
	if err != nil {
		zlog.Fatal("failed to listen", zap.Error(err))
	}
	go func() {
		zlog.Info("gRPC server started", zap.String("addr", lis.Addr().String()))
		if err := grpcServer.Serve(lis); err != nil {
			zlog.Error("gRPC server stopped", zap.Error(err))
		}
	}()

	// HTTP
	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := router.New(router.Deps{
		Refunds:      handlers.NewRefundHandler(uc.RefundUsecase, zlog.Named("http")),
		Disputes:     handlers.NewDisputeHandler(uc.DisputeUsecase, zlog.Named("http")),
		Users:        uc.Resolver,
		Metrics:      deps.Metrics,
		Gatherer:     deps.Registry,
		Log:          zlog.Named("access"),
		AllowOrigins: cfg.HTTPServer.AllowOrigins,
	})
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler:      engine,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}
	go func() {
		zlog.Info("HTTP server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Error("HTTP server stopped", zap.Error(err))
			stop()
		}
	}()

	background.NewBackgroundTasks(healthHandler, deps.DB, zlog.Named("background")).StartAll(ctx)

	<-ctx.Done()
	zlog.Info("shutting down")
	healthHandler.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Warn("HTTP shutdown", zap.Error(err))
	}
	grpcServer.GracefulStop()
}
