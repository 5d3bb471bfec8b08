package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/core"
)

// handleRecords accepts a full financial snapshot and stores it as the new
// latest record.
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var rec core.FinancialRecord
	if err := decodeJSON(r, &rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid record payload: "+err.Error())
		return
	}

	if rec.Income < 0 {
		writeError(w, http.StatusUnprocessableEntity, "income cannot be negative")
		return
	}

	id, err := s.store.SaveRecord(r.Context(), rec)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to save record", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save record")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleLatestRecord(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, rec)
}
