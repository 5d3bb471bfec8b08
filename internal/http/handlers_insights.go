package http

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/core"
)

// snapshotKey derives a cache key from the snapshot content, so cached
// responses expire the moment a new snapshot lands.
func snapshotKey(rec core.FinancialRecord) string {
	payload, err := json.Marshal(rec)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// handleInsights computes health metrics plus the AI narrative for the latest
// snapshot.
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
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

	key := snapshotKey(rec)
	if key != "" {
		if cached, ok := s.insightCache.Get(key); ok {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	result := s.analyzer.Analyze(r.Context(), rec)
	if key != "" {
		s.insightCache.Set(key, result)
	}

	writeJSON(w, http.StatusOK, result)
}
