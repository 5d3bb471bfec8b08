package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/amqp"
	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/cli"
	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/forecast"
	apphttp "github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/http"
	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/insight"
	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/narrative"
	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/ocr"
	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/storage"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	var store storage.Store
	switch cfg.DataBackend {
	case "sqlite":
		repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
		defer repo.Close()
		store = repo
		logger.Info("Initialized sqlite backend", "path", cfg.SQLiteDBPath)
	default:
		store = storage.NewMemoryStore()
		logger.Info("Initialized memory backend")
	}

	// Statement ingestion is optional: without AMQP the upload endpoint
	// still stores statements, they just stay pending.
	var publisher apphttp.StatementPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, statement ingestion disabled", "error", err)
		} else {
			defer amqpClient.Close()
			publisher = amqpClient
		}
	}

	var summarizer insight.Summarizer
	if cfg.GeminiAPIKey != "" {
		gemini, err := narrative.NewGeminiSummarizer(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("Gemini unavailable, narrative summaries disabled", "error", err)
		} else {
			defer gemini.Close()
			summarizer = gemini
			logger.Info("Gemini narrative enabled", "model", cfg.GeminiModel)
		}
	} else {
		logger.Info("Gemini disabled - no GEMINI_API_KEY provided")
	}

	var ocrClient *ocr.Client
	if cfg.OCRBaseURL != "" {
		ocrClient = ocr.NewClient(cfg.OCRBaseURL)
	}

	srv := apphttp.NewServer(
		cfg,
		store,
		publisher,
		insight.NewAnalyzer(summarizer),
		forecast.NewClient(cfg.ForecastBaseURL),
		ocrClient,
	)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting forecaster server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
