package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/cache"
	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/config"
	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/core"
	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/forecast"
	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/insight"
	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/ocr"
	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/storage"
)

// StatementPublisher enqueues stored statements for background ingestion. The
// AMQP client implements it; tests use a stub.
type StatementPublisher interface {
	PublishStatementIngest(ctx context.Context, statementID string) error
}

type Server struct {
	http.Server

	store     storage.Store
	publisher StatementPublisher
	analyzer  *insight.Analyzer
	forecasts *forecast.Client
	ocr       *ocr.Client

	ocrLanguage string
	months      int

	rateLimiter *rateLimiter

	// Insight and forecast responses are cached keyed by snapshot content,
	// so a new snapshot naturally invalidates both.
	insightCache  *cache.LRUCache[core.InsightResult]
	forecastCache *cache.LRUCache[*forecast.Bundle]
	cacheManager  *cache.Manager

	shutdownOnce sync.Once
}

func NewServer(
	cfg *config.Config,
	store storage.Store,
	publisher StatementPublisher,
	analyzer *insight.Analyzer,
	forecasts *forecast.Client,
	ocrClient *ocr.Client,
) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    ":" + cfg.Port,
			Handler: mux,
		},
		store:         store,
		publisher:     publisher,
		analyzer:      analyzer,
		forecasts:     forecasts,
		ocr:           ocrClient,
		ocrLanguage:   cfg.OCRLanguage,
		months:        cfg.ForecastMonths,
		rateLimiter:   newRateLimiter(cfg.RateLimitPerMinute),
		insightCache:  cache.NewLRUCache[core.InsightResult](cfg.CacheSize, cfg.CacheTTL),
		forecastCache: cache.NewLRUCache[*forecast.Bundle](cfg.CacheSize, cfg.CacheTTL),
		cacheManager:  cache.NewManager(),
	}

	s.cacheManager.Register(s.insightCache)
	s.cacheManager.Register(s.forecastCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	mux.HandleFunc("/api/records", s.withMiddleware(s.handleRecords))
	mux.HandleFunc("/api/records/latest", s.withMiddleware(s.handleLatestRecord))
	mux.HandleFunc("/api/statements", s.withMiddleware(s.handleCreateStatement))
	mux.HandleFunc("/api/ocr", s.withMiddleware(s.handleOCR))
	mux.HandleFunc("/api/categorize", s.withMiddleware(s.handleCategorize))
	mux.HandleFunc("/api/insights", s.withMiddleware(s.handleInsights))
	mux.HandleFunc("/api/forecasts", s.withMiddleware(s.handleForecasts))

	return s
}

// withMiddleware adds security headers, rate limiting and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		if !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				"client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.LatestRecord(r.Context()); err != nil && !errors.Is(err, core.ErrNoRecord) {
		writeError(w, http.StatusServiceUnavailable, "store not ready")
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// Shutdown stops the HTTP server plus the cache and rate limiter goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
