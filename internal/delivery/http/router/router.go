package router

import (
	"net/http"

	"github.com/LavaJover/shvark-refund-service/internal/delivery/http/handlers"
	"github.com/LavaJover/shvark-refund-service/internal/delivery/http/middleware"
	"github.com/LavaJover/shvark-refund-service/internal/infrastructure/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Deps struct {
	Refunds  *handlers.RefundHandler
	Disputes *handlers.DisputeHandler
	Users    middleware.UserResolver
	Metrics  *metrics.RefundMetrics
	Gatherer prometheus.Gatherer
	Log      *zap.Logger
	// AllowOrigins empty means any origin.
	AllowOrigins []string
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(deps.Log))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	corsConfig := cors.DefaultConfig()
	if len(deps.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = deps.AllowOrigins
	}
	corsConfig.AddAllowHeaders(middleware.UserIDHeader, middleware.ShopIDHeader, middleware.RequestIDHeader)
	corsConfig.AddExposeHeaders(middleware.RequestIDHeader)
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	actor := middleware.Actor(deps.Users)
	deps.Refunds.Register(r.Group("/refunds", actor))
	deps.Disputes.Register(r.Group("/disputes", actor))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	return r
}
