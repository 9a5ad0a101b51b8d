package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/janhq/product-search-api/internal/config"
	"github.com/janhq/product-search-api/internal/interfaces/httpserver/handlers"
	"github.com/janhq/product-search-api/internal/interfaces/httpserver/middlewares"
	"github.com/janhq/product-search-api/internal/interfaces/httpserver/routes"
)

// HttpServer wraps the gin engine with graceful shutdown helpers.
type HttpServer struct {
	cfg       *config.Config
	engine    *gin.Engine
	log       zerolog.Logger
	routeProv *routes.Provider
}

// NewHttpServer constructs the HTTP server with default middleware and routes.
func NewHttpServer(cfg *config.Config, log zerolog.Logger, handlerProvider *handlers.Provider) *HttpServer {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middlewares.RequestID())
	if cfg.EnableTracing {
		engine.Use(middlewares.TracingMiddleware(cfg.ServiceName))
	}
	engine.Use(middlewares.LoggingMiddleware(log))
	engine.Use(middlewares.MetricsMiddleware())
	engine.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))

	registerPublicRoutes(engine, cfg, handlerProvider.Health)

	routeProvider := routes.NewProvider(handlerProvider)
	routeProvider.Register(engine)

	return &HttpServer{
		cfg:       cfg,
		engine:    engine,
		log:       log,
		routeProv: routeProvider,
	}
}

// Handler exposes the gin engine, mainly for tests.
func (s *HttpServer) Handler() http.Handler {
	return s.engine
}

// Run starts the HTTP listener and handles graceful shutdown via context cancellation.
func (s *HttpServer) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr()).Msg("HTTP server listening")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("HTTP server error")
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("Context cancelled, shutting down HTTP server")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func registerPublicRoutes(engine *gin.Engine, cfg *config.Config, health *handlers.HealthHandler) {
	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": cfg.ServiceName,
			"status":  "ok",
		})
	})

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	engine.GET("/readyz", health.Ready)

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	openAPIDoc := BuildOpenAPIDocument(cfg)
	engine.GET("/openapi.json", func(c *gin.Context) {
		c.JSON(http.StatusOK, openAPIDoc)
	})
}
