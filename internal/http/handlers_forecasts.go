package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/core"
	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/forecast"
)

// handleForecasts fetches the full projection bundle for the latest snapshot.
// Optional query parameters: months (horizon) and delta (what-if saving bump).
func (s *Server) handleForecasts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rec, err := s.store.LatestRecord(r.Context())
	if errors.Is(err, core.ErrNoRecord) {
		writeError(w, http.StatusNotFound, "no financial record yet")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load latest record", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load record")
		return
	}

	opts := forecast.BundleOptions{Months: s.months}
	if v := r.URL.Query().Get("months"); v != "" {
		months, err := strconv.Atoi(v)
		if err != nil || months < 1 {
			writeError(w, http.StatusBadRequest, "months must be a positive integer")
			return
		}
		opts.Months = months
	}
	if v := r.URL.Query().Get("delta"); v != "" {
		delta, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "delta must be a number")
			return
		}
		opts.Delta = delta
	}

	key := fmt.Sprintf("%s:%d:%g", snapshotKey(rec), opts.Months, opts.Delta)
	if cached, ok := s.forecastCache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	bundle := s.forecasts.FetchBundle(r.Context(), rec, opts)
	s.forecastCache.Set(key, bundle)

	writeJSON(w, http.StatusOK, bundle)
}
