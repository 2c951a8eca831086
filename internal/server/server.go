package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/kitewave/pulse/internal/analytics"
	analyticsdomain "github.com/kitewave/pulse/internal/analytics/domain"
	"github.com/kitewave/pulse/internal/clock"
	"github.com/kitewave/pulse/internal/config"
	"github.com/kitewave/pulse/internal/observability"
	obsmiddleware "github.com/kitewave/pulse/internal/observability/logger"
	obsmetrics "github.com/kitewave/pulse/internal/observability/metrics"
	obstracing "github.com/kitewave/pulse/internal/observability/tracing"
	"github.com/kitewave/pulse/internal/ratelimit"
)

var Module = fx.Module("http.server",
	clock.Module,
	analytics.Module,
	ratelimit.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	analyticsSvc analyticsdomain.Service
	obsMetrics   *obsmetrics.Metrics
	queryLimiter *ratelimit.QueryLimiter
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	AnalyticsSvc analyticsdomain.Service
	ObsMetrics   *obsmetrics.Metrics     `optional:"true"`
	QueryLimiter *ratelimit.QueryLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		analyticsSvc: p.AnalyticsSvc,
		obsMetrics:   p.ObsMetrics,
		queryLimiter: p.QueryLimiter,
	}

	svc.registerAnalyticsRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAnalyticsRoutes() {
	api := s.engine.Group("/api/analytics")
	api.Use(s.QueryRateLimit())

	api.GET("/growth", s.GetGrowthMetrics)
	api.GET("/retention", s.GetRetentionMetrics)
	api.GET("/engagement", s.GetEngagementMetrics)
	api.GET("/auth-patterns", s.GetAuthPatternMetrics)
	api.GET("/message-volume", s.GetMessageVolumeMetrics)
	api.GET("/segmentation", s.GetUserSegmentationMetrics)
	api.GET("/funnel", s.GetConversionFunnelMetrics)
	api.GET("/revenue", s.GetRevenueMetrics)
	api.GET("/payment-analysis", s.GetPaymentAnalysisMetrics)
	api.GET("/system-health", s.GetSystemHealthMetrics)
	api.GET("/rate-limit-impact", s.GetRateLimitImpactMetrics)
}
