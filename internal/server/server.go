// Package server hosts the HTTP delivery layer: document rendering,
// dashboard aggregation and operational probes.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/DevHusayn/InvoicePro/internal/config"
	dashboarddomain "github.com/DevHusayn/InvoicePro/internal/dashboard/domain"
	invoicedomain "github.com/DevHusayn/InvoicePro/internal/invoice/domain"
	"github.com/DevHusayn/InvoicePro/internal/observability/logger"
	"github.com/DevHusayn/InvoicePro/internal/observability/metrics"
	"github.com/DevHusayn/InvoicePro/internal/observability/tracing"
)

// Server carries the HTTP handlers and their service dependencies.
type Server struct {
	cfg    config.Config
	log    *zap.Logger
	engine *gin.Engine

	invoiceSvc   invoicedomain.Service
	dashboardSvc dashboarddomain.Service
}

type EngineParam struct {
	fx.In

	Config      config.Config
	HTTPMetrics *metrics.HTTPMetrics `optional:"true"`
}

// NewEngine builds the gin engine with the shared middleware chain.
func NewEngine(p EngineParam) *gin.Engine {
	if p.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	engine.Use(tracing.GinMiddleware(p.Config.ServiceName))
	engine.Use(metrics.GinMiddleware(p.HTTPMetrics))
	return engine
}

type ServerParam struct {
	fx.In

	Config       config.Config
	Log          *zap.Logger
	Engine       *gin.Engine
	InvoiceSvc   invoicedomain.Service
	DashboardSvc dashboarddomain.Service
}

func NewServer(p ServerParam) *Server {
	return &Server{
		cfg:          p.Config,
		log:          p.Log.Named("server"),
		engine:       p.Engine,
		invoiceSvc:   p.InvoiceSvc,
		dashboardSvc: p.DashboardSvc,
	}
}

// RegisterAPIRoutes mounts every route the service exposes.
func (s *Server) RegisterAPIRoutes() {
	s.engine.GET("/healthz", s.Healthz)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")
	api.POST("/invoices/render", s.RenderInvoice)
	api.POST("/dashboard/summary", s.DashboardSummary)
}

func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": s.cfg.ServiceName,
		"version": s.cfg.ServiceVersion,
	})
}

// RunHTTP binds the engine to the configured address under the fx
// lifecycle, shutting down gracefully on stop.
func RunHTTP(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, engine *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
