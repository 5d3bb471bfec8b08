package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/amqp"
	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/cli"
	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/services"
	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting ingest-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	// The worker shares the SQLite database with the server; the memory
	// backend has no cross-process story so it is not offered here.
	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ingestWorker := worker.NewIngestWorker(amqpClient, services.NewIngestProcessor(repo))

	go func() {
		if err := ingestWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Message consumption failed", "error", err)
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	cancel()
	logger.Info("Shutting down worker...")

	// Give in-flight message handling a moment to finish.
	time.Sleep(5 * time.Second)
	logger.Info("Worker shutdown complete")
}
