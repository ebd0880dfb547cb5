package main

import (
	"context"
	"errors"
	"os"
	"time"

	"pousada/internal/amqp"
	"pousada/internal/backend"
	"pousada/internal/cli"
	"pousada/internal/log"
	"pousada/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), log.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the overdue worker")
		os.Exit(1)
	}

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

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err.Error())
		_ = res.Close()
		os.Exit(1)
	}
	logger.Info("Initialized AMQP client", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)

	w := worker.NewOverdueWorker(res.Backend, client, cfg.DueSoonDays)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(context.Context) {
		if err := client.Close(); err != nil {
			logger.Error("AMQP close error", log.FieldError, err.Error())
		}
		if err := res.Close(); err != nil {
			logger.Error("Backend cleanup error", log.FieldError, err.Error())
		}
	})

	logger.Info("Starting overdue worker", "interval", cfg.ScanInterval, "due_soon_days", cfg.DueSoonDays)
	if err := w.Run(ctx, cfg.ScanInterval); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Overdue worker stopped", log.FieldError, err.Error())
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker shutdown complete")
}
