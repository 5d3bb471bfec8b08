package forecast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/core"
)

// Default projection parameters, applied when the caller leaves them zero.
const (
	DefaultMonths       = 120
	DefaultInterestRate = 10.0
	DefaultReturnRate   = 0.08
)

// Client talks to the remote forecasting service over its configurable base
// address. All calls are context-bound; no retries are attempted.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SavingsForecast requests the savings/net-worth projection.
func (c *Client) SavingsForecast(ctx context.Context, monthlySaving float64, months int) (core.ForecastSeries, error) {
	raw, err := c.post(ctx, "/forecast", map[string]any{
		"monthlySaving": monthlySaving,
		"months":        months,
	})
	if err != nil {
		return nil, err
	}
	return NormalizeSavings(raw), nil
}

// LoanPayoff requests the remaining-balance amortization timeline.
func (c *Client) LoanPayoff(ctx context.Context, principal, installment, annualRate float64) (core.ForecastSeries, error) {
	raw, err := c.post(ctx, "/loan-payoff", map[string]any{
		"principal":          principal,
		"monthlyInstallment": installment,
		"annualInterestRate": annualRate,
	})
	if err != nil {
		return nil, err
	}
	return NormalizeLoanPayoff(raw), nil
}

// RetirementCorpus requests the retirement corpus projection.
func (c *Client) RetirementCorpus(ctx context.Context, currentSavings, monthlyContribution, annualReturnRate float64, months int) (core.ForecastSeries, error) {
	raw, err := c.post(ctx, "/retirement", map[string]any{
		"currentSavings":      currentSavings,
		"monthlyContribution": monthlyContribution,
		"annualReturnRate":    annualReturnRate,
		"months":              months,
	})
	if err != nil {
		return nil, err
	}
	return NormalizeRetirement(raw), nil
}

// WhatIf requests the paired base/bumped simulation.
func (c *Client) WhatIf(ctx context.Context, baseSaving, delta float64, months int) (base, bump core.ForecastSeries, err error) {
	raw, err := c.post(ctx, "/what-if", map[string]any{
		"baseMonthlySaving":  baseSaving,
		"deltaMonthlySaving": delta,
		"months":             months,
	})
	if err != nil {
		return nil, nil, err
	}
	base, bump = NormalizeWhatIf(raw)
	return base, bump, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal forecast request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build forecast request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call forecast service %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("forecast service %s returned status %d", path, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read forecast response %s: %w", path, err)
	}
	return raw, nil
}

// BundleOptions carries the caller-tunable projection parameters.
type BundleOptions struct {
	Months       int
	Delta        float64 // what-if monthly saving bump
	InterestRate float64 // annual loan interest rate, percent
	ReturnRate   float64 // annual investment return rate, fraction
}

func (o BundleOptions) withDefaults() BundleOptions {
	if o.Months <= 0 {
		o.Months = DefaultMonths
	}
	if o.InterestRate == 0 {
		o.InterestRate = DefaultInterestRate
	}
	if o.ReturnRate == 0 {
		o.ReturnRate = DefaultReturnRate
	}
	return o
}

// Bundle groups every normalized series for one record, plus per-kind error
// notes for calls that failed. A skipped or failed call leaves an empty
// series; the bundle itself is always produced.
type Bundle struct {
	NetWorth   core.ForecastSeries `json:"netWorth"`
	LoanPayoff core.ForecastSeries `json:"loanPayoff"`
	Retirement core.ForecastSeries `json:"retirement"`
	WhatIfBase core.ForecastSeries `json:"whatIfBase"`
	WhatIfBump core.ForecastSeries `json:"whatIfBump"`
	Errors     map[string]string   `json:"errors,omitempty"`
}

// FetchBundle derives the request payloads from the record and issues all
// applicable forecast calls concurrently. Gating rules: the savings and
// what-if calls need a positive monthly saving, the loan call needs positive
// principal and installment, the retirement call needs a positive horizon.
// Skipped calls are never sent and resolve to empty series.
func (c *Client) FetchBundle(ctx context.Context, rec core.FinancialRecord, opts BundleOptions) *Bundle {
	opts = opts.withDefaults()

	bundle := &Bundle{
		NetWorth:   core.ForecastSeries{},
		LoanPayoff: core.ForecastSeries{},
		Retirement: core.ForecastSeries{},
		WhatIfBase: core.ForecastSeries{},
		WhatIfBump: core.ForecastSeries{},
	}

	saving := rec.MonthlySaving()
	retirementMonths := rec.RetirementMonths()

	var savingsErr, loanErr, retirementErr, whatIfErr error

	g, gctx := errgroup.WithContext(ctx)

	if saving > 0 {
		g.Go(func() error {
			series, err := c.SavingsForecast(gctx, saving, opts.Months)
			if err != nil {
				savingsErr = err
				return nil
			}
			bundle.NetWorth = series
			return nil
		})
	}

	if rec.LoanAmount > 0 && rec.EMI > 0 {
		g.Go(func() error {
			series, err := c.LoanPayoff(gctx, rec.LoanAmount, rec.EMI, opts.InterestRate)
			if err != nil {
				loanErr = err
				return nil
			}
			bundle.LoanPayoff = series
			return nil
		})
	}

	if retirementMonths > 0 {
		contribution := saving
		if contribution < 0 {
			contribution = 0
		}
		g.Go(func() error {
			series, err := c.RetirementCorpus(gctx, rec.CurrentSavings, contribution, opts.ReturnRate, retirementMonths)
			if err != nil {
				retirementErr = err
				return nil
			}
			bundle.Retirement = series
			return nil
		})
	}

	if saving > 0 && opts.Delta > 0 {
		g.Go(func() error {
			base, bump, err := c.WhatIf(gctx, saving, opts.Delta, opts.Months)
			if err != nil {
				whatIfErr = err
				return nil
			}
			bundle.WhatIfBase = base
			bundle.WhatIfBump = bump
			return nil
		})
	}

	_ = g.Wait()

	bundle.Errors = map[string]string{}
	for kind, err := range map[string]error{
		"netWorth":   savingsErr,
		"loanPayoff": loanErr,
		"retirement": retirementErr,
		"whatIf":     whatIfErr,
	} {
		if err != nil {
			slog.WarnContext(ctx, "Forecast call failed", "kind", kind, "error", err)
			bundle.Errors[kind] = err.Error()
		}
	}
	if len(bundle.Errors) == 0 {
		bundle.Errors = nil
	}

	return bundle
}
