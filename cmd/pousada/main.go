package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"pousada/internal/backend"
	"pousada/internal/cli"
	apphttp "pousada/internal/http"
	"pousada/internal/log"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err.Error())
		os.Exit(1)
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	res, err := backend.NewFactory(logger.Logger.With(log.FieldComponent, log.ComponentBackend)).CreateBackend(startCtx, bcfg)
	if err != nil {
		logger.Error("Failed to create backend", log.FieldError, err.Error(), "backend", bcfg.Type)
		os.Exit(1)
	}

	// Fail fast on unreadable data rather than on the first request.
	units, txs, err := backend.Warm(startCtx, res.Backend)
	if err != nil {
		logger.Error("Failed to load data", log.FieldError, err.Error(), "backend", bcfg.Type)
		_ = res.Close()
		os.Exit(1)
	}
	logger.Info("Data loaded", "backend", bcfg.Type, "units", len(units), "transactions", len(txs))

	srv := apphttp.NewServer(apphttp.Options{
		Addr:         ":" + cfg.Port,
		Source:       res.Backend,
		DueSoonDays:  cfg.DueSoonDays,
		PendingLimit: cfg.PendingLimit,
		CacheTTL:     cfg.CacheTTL,
		Logger:       logger,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err.Error())
		}
		if err := res.Close(); err != nil {
			logger.Error("Backend cleanup error", log.FieldError, err.Error())
		}
	})

	go func() {
		logger.Info("Starting pousada server", "port", cfg.Port, "backend", bcfg.Type)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", log.FieldError, err.Error(), "port", cfg.Port)
			os.Exit(1)
		}
	}()

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
