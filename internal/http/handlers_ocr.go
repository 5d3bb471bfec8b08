package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/categorize"
)

// Receipts top out well below this; anything bigger is not a statement scan.
const maxImageBytes = 10 << 20

type ocrResponse struct {
	Text       string             `json:"text"`
	Categories map[string]float64 `json:"categories"`
}

// handleOCR forwards an uploaded statement image to the OCR service and
// categorizes the recognized text in one pass.
func (s *Server) handleOCR(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if s.ocr == nil {
		writeError(w, http.StatusServiceUnavailable, "OCR service not configured")
		return
	}

	img, err := io.ReadAll(io.LimitReader(r.Body, maxImageBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read image body")
		return
	}
	if len(img) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "image body cannot be empty")
		return
	}
	if len(img) > maxImageBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "image exceeds 10MB limit")
		return
	}

	language := r.URL.Query().Get("lang")
	if language == "" {
		language = s.ocrLanguage
	}

	text, err := s.ocr.Recognize(r.Context(), img, language)
	if err != nil {
		slog.ErrorContext(r.Context(), "OCR recognition failed", "error", err)
		writeError(w, http.StatusBadGateway, "OCR recognition failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ocrResponse{
		Text:       text,
		Categories: categorize.Categorize(text),
	})
}

type categorizeRequest struct {
	Text string `json:"text"`
}

// handleCategorize previews categorization for raw text without touching the
// store.
func (s *Server) handleCategorize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req categorizeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid categorize payload: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]map[string]float64{
		"categories": categorize.Categorize(req.Text),
	})
}
