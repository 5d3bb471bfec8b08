package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/config"
	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/core"
	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/forecast"
	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/insight"
	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/storage"
)

type stubPublisher struct {
	published []string
	err       error
}

func (p *stubPublisher) PublishStatementIngest(_ context.Context, statementID string) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, statementID)
	return nil
}

type stubSummarizer struct {
	summary string
	calls   int
}

func (s *stubSummarizer) Summarize(context.Context, string, core.FinancialRecord) (string, error) {
	s.calls++
	return s.summary, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Port:               "8081",
		DataBackend:        "memory",
		ForecastMonths:     120,
		OCRLanguage:        "eng",
		CacheSize:          10,
		CacheTTL:           time.Minute,
		RateLimitPerMinute: 1000,
	}
}

func newTestServer(t *testing.T, store storage.Store, pub StatementPublisher, sum insight.Summarizer, forecasts *forecast.Client) *Server {
	t.Helper()

	s := NewServer(testConfig(), store, pub, insight.NewAnalyzer(sum), forecasts, nil)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Shutdown(ctx)
	})
	return s
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t, storage.NewMemoryStore(), nil, nil, nil)

	rec := doJSON(t, s.Handler, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Errorf("/healthz status = %d, want 200", rec.Code)
	}

	rec = doJSON(t, s.Handler, http.MethodGet, "/readyz", "")
	if rec.Code != http.StatusOK {
		t.Errorf("/readyz status = %d, want 200", rec.Code)
	}
}

func TestCreateAndFetchRecord(t *testing.T) {
	s := newTestServer(t, storage.NewMemoryStore(), nil, nil, nil)

	rec := doJSON(t, s.Handler, http.MethodPost, "/api/records",
		`{"income": 50000, "rent": 12000, "savings": 10000}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create record status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s.Handler, http.MethodGet, "/api/records/latest", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("latest record status = %d", rec.Code)
	}

	var got core.FinancialRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode latest record: %v", err)
	}
	if got.Income != 50000 || got.Rent != 12000 {
		t.Errorf("latest record = %+v", got)
	}
}

func TestCreateRecordRejectsBadPayload(t *testing.T) {
	s := newTestServer(t, storage.NewMemoryStore(), nil, nil, nil)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"invalid json", `{income}`, http.StatusBadRequest},
		{"unknown field", `{"salary": 100}`, http.StatusBadRequest},
		{"negative income", `{"income": -5}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, s.Handler, http.MethodPost, "/api/records", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestLatestRecordEmpty(t *testing.T) {
	s := newTestServer(t, storage.NewMemoryStore(), nil, nil, nil)

	rec := doJSON(t, s.Handler, http.MethodGet, "/api/records/latest", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCreateStatementQueuesIngest(t *testing.T) {
	store := storage.NewMemoryStore()
	pub := &stubPublisher{}
	s := newTestServer(t, store, pub, nil, nil)

	rec := doJSON(t, s.Handler, http.MethodPost, "/api/statements",
		`{"text": "Rent paid Rs. 12000"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp statementResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != core.StatementPending {
		t.Errorf("status = %q, want %q", resp.Status, core.StatementPending)
	}
	if len(pub.published) != 1 || pub.published[0] != resp.ID {
		t.Errorf("published = %v, want [%s]", pub.published, resp.ID)
	}
}

func TestCreateStatementRejectsEmptyText(t *testing.T) {
	s := newTestServer(t, storage.NewMemoryStore(), &stubPublisher{}, nil, nil)

	rec := doJSON(t, s.Handler, http.MethodPost, "/api/statements", `{"text": "   "}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestCategorizePreview(t *testing.T) {
	s := newTestServer(t, storage.NewMemoryStore(), nil, nil, nil)

	rec := doJSON(t, s.Handler, http.MethodPost, "/api/categorize",
		`{"text": "Swiggy order rs 350\nNetflix Rs. 649"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp map[string]map[string]float64
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	cats := resp["categories"]
	if cats[core.CategoryFood] != 350 {
		t.Errorf("Food = %v, want 350", cats[core.CategoryFood])
	}
	if cats[core.CategorySubscriptions] != 649 {
		t.Errorf("Subscriptions = %v, want 649", cats[core.CategorySubscriptions])
	}
}

func TestInsightsServesNarrativeAndCaches(t *testing.T) {
	store := storage.NewMemoryStore()
	if _, err := store.SaveRecord(context.Background(), core.FinancialRecord{Income: 50000, Rent: 10000}); err != nil {
		t.Fatal(err)
	}
	sum := &stubSummarizer{summary: "Looking healthy."}
	s := newTestServer(t, store, nil, sum, nil)

	for i := 0; i < 2; i++ {
		rec := doJSON(t, s.Handler, http.MethodGet, "/api/insights", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}

		var result core.InsightResult
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			t.Fatalf("decode insight: %v", err)
		}
		if result.AISummary != "Looking healthy." {
			t.Errorf("AISummary = %q", result.AISummary)
		}
	}

	if sum.calls != 1 {
		t.Errorf("summarizer calls = %d, want 1 (second hit cached)", sum.calls)
	}
}

func TestInsightsWithoutRecord(t *testing.T) {
	s := newTestServer(t, storage.NewMemoryStore(), nil, nil, nil)

	rec := doJSON(t, s.Handler, http.MethodGet, "/api/insights", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestForecastsBundle(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/what-if":
			w.Write([]byte(`{"base": [{"ds": "2026-01-01", "yhat": 10}], "bump": [{"ds": "2026-01-01", "yhat": 20}]}`))
		default:
			w.Write([]byte(`{"forecast": [{"ds": "2026-01-01", "yhat": 42}]}`))
		}
	}))
	defer upstream.Close()

	store := storage.NewMemoryStore()
	if _, err := store.SaveRecord(context.Background(), core.FinancialRecord{Income: 50000, Rent: 10000}); err != nil {
		t.Fatal(err)
	}
	s := newTestServer(t, store, nil, nil, forecast.NewClient(upstream.URL))

	rec := doJSON(t, s.Handler, http.MethodGet, "/api/forecasts?months=12&delta=2000", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var bundle forecast.Bundle
	if err := json.Unmarshal(rec.Body.Bytes(), &bundle); err != nil {
		t.Fatalf("decode bundle: %v", err)
	}
	if len(bundle.NetWorth) != 1 || bundle.NetWorth[0].Y != 42 {
		t.Errorf("NetWorth = %+v", bundle.NetWorth)
	}
	if len(bundle.WhatIfBump) != 1 || bundle.WhatIfBump[0].Y != 20 {
		t.Errorf("WhatIfBump = %+v", bundle.WhatIfBump)
	}
	if len(bundle.LoanPayoff) != 0 {
		t.Errorf("LoanPayoff should be skipped with no loan, got %+v", bundle.LoanPayoff)
	}
}

func TestForecastsRejectsBadQuery(t *testing.T) {
	store := storage.NewMemoryStore()
	if _, err := store.SaveRecord(context.Background(), core.FinancialRecord{Income: 50000}); err != nil {
		t.Fatal(err)
	}
	s := newTestServer(t, store, nil, nil, forecast.NewClient("http://localhost:0"))

	rec := doJSON(t, s.Handler, http.MethodGet, "/api/forecasts?months=zero", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(2)
	defer rl.stop()

	if !rl.allow("1.2.3.4") || !rl.allow("1.2.3.4") {
		t.Fatal("first two requests should pass")
	}
	if rl.allow("1.2.3.4") {
		t.Error("third request within the window should be limited")
	}
	if !rl.allow("5.6.7.8") {
		t.Error("other clients should not be affected")
	}
}
