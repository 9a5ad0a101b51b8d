package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/janhq/product-search-api/internal/config"
	"github.com/janhq/product-search-api/internal/infrastructure/logger"
	"github.com/janhq/product-search-api/internal/infrastructure/observability"
	"github.com/janhq/product-search-api/internal/interfaces/httpserver"
)

type Application struct {
	httpServer *httpserver.HttpServer
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.GetLogger()
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	app, err := CreateApplication(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build application")
	}

	log.Info().
		Str("search_endpoint", cfg.SearchEndpoint).
		Str("generation_base_url", cfg.GenerationBaseURL).
		Str("generation_model", cfg.GenerationModel).
		Int("search_failure_status", cfg.SearchFailureStatus).
		Msg("product search service starting")

	if err := app.Start(ctx); err != nil {
		log.Error().Err(err).Msg("application stopped with error")
		return
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
