package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/core"
)

type statementRequest struct {
	Text string `json:"text"`
}

type statementResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// handleCreateStatement stores raw statement text and queues it for
// background categorization. The response returns immediately with the
// statement still pending.
func (s *Server) handleCreateStatement(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req statementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid statement payload: "+err.Error())
		return
	}

	st, err := s.store.SaveStatement(r.Context(), strings.TrimSpace(req.Text))
	if errors.Is(err, core.ErrEmptyStatement) {
		writeError(w, http.StatusUnprocessableEntity, "statement text cannot be empty")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to save statement", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save statement")
		return
	}

	if s.publisher != nil {
		if err := s.publisher.PublishStatementIngest(r.Context(), st.ID); err != nil {
			slog.ErrorContext(r.Context(), "Failed to queue statement",
				"statementId", st.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to queue statement for processing")
			return
		}
	}

	writeJSON(w, http.StatusAccepted, statementResponse{ID: st.ID, Status: st.Status})
}
