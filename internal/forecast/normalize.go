// Package forecast calls the remote forecasting service and reconciles its
// heterogeneous responses into a stable point series for charting.
//
// The service has drifted across versions: the same forecast may arrive as a
// bare JSON array or wrapped under a kind-specific key, and the per-element
// field names vary (a Prophet-era response uses ds/yhat, a newer one
// month/remaining). Normalization is table-driven: each kind declares an
// ordered list of wrapper keys and candidate field names, tried
// first-present-wins.
package forecast

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/core"
)

// seriesSpec declares how to locate and read one forecast kind inside a raw
// service response.
type seriesSpec struct {
	wrapperKeys []string
	labelKeys   []string
	valueKeys   []string
}

var (
	savingsSpec = seriesSpec{
		wrapperKeys: []string{"forecast", "series", "data", "result"},
		labelKeys:   []string{"ds", "date", "month", "period", "x"},
		valueKeys:   []string{"yhat", "projected", "value", "y"},
	}

	loanSpec = seriesSpec{
		wrapperKeys: []string{"timeline", "schedule", "series", "data"},
		labelKeys:   []string{"month", "ds", "date", "period", "x"},
		valueKeys:   []string{"remaining", "remaining_balance", "balance", "y"},
	}

	retirementSpec = seriesSpec{
		wrapperKeys: []string{"corpus", "projection", "series", "data"},
		labelKeys:   []string{"month", "ds", "date", "period", "x"},
		valueKeys:   []string{"projected_corpus", "corpus", "value", "y"},
	}

	whatIfSpec = seriesSpec{
		labelKeys: []string{"ds", "date", "month", "period", "x"},
		valueKeys: []string{"yhat", "projected", "value", "y"},
	}
)

// Candidate keys for the two labeled collections of a what-if response.
var (
	whatIfBaseKeys = []string{"base", "baseline"}
	whatIfBumpKeys = []string{"bump", "bumped", "boosted"}
)

// NormalizeSavings reshapes a savings/net-worth forecast response.
func NormalizeSavings(raw []byte) core.ForecastSeries {
	return savingsSpec.normalize(raw)
}

// NormalizeLoanPayoff reshapes a loan payoff timeline response.
func NormalizeLoanPayoff(raw []byte) core.ForecastSeries {
	return loanSpec.normalize(raw)
}

// NormalizeRetirement reshapes a retirement corpus projection response.
func NormalizeRetirement(raw []byte) core.ForecastSeries {
	return retirementSpec.normalize(raw)
}

// NormalizeWhatIf splits a simulation response into its base and bumped
// series. Both collections are normalized identically.
func NormalizeWhatIf(raw []byte) (base, bump core.ForecastSeries) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return core.ForecastSeries{}, core.ForecastSeries{}
	}
	base = whatIfSpec.normalize(firstPresent(envelope, whatIfBaseKeys))
	bump = whatIfSpec.normalize(firstPresent(envelope, whatIfBumpKeys))
	return base, bump
}

func firstPresent(envelope map[string]json.RawMessage, keys []string) []byte {
	for _, key := range keys {
		if inner, ok := envelope[key]; ok {
			return inner
		}
	}
	return nil
}

// normalize locates the element array and reshapes every element into an
// {x, y} point. Unusable responses yield an empty series, never an error.
func (s seriesSpec) normalize(raw []byte) core.ForecastSeries {
	series := core.ForecastSeries{}
	for _, row := range s.rows(raw) {
		element, ok := row.(map[string]any)
		if !ok {
			continue
		}
		series = append(series, core.ForecastPoint{
			X: s.label(element),
			Y: s.value(element),
		})
	}
	return series
}

// rows accepts either a bare array or an object wrapped under one of the
// known keys; when no wrapper key matches, the whole response is treated as
// the array.
func (s seriesSpec) rows(raw []byte) []any {
	if len(raw) == 0 {
		return nil
	}

	var arr []any
	if err := json.Unmarshal(raw, &arr); err == nil {
		return arr
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil
	}
	for _, key := range s.wrapperKeys {
		inner, ok := envelope[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(inner, &arr); err == nil {
			return arr
		}
	}
	return nil
}

// label extracts the period label from the first candidate field present.
// Labels carrying a time component are cut to the date-only first 10
// characters.
func (s seriesSpec) label(element map[string]any) string {
	for _, key := range s.labelKeys {
		v, ok := element[key]
		if !ok {
			continue
		}
		label := coerceString(v)
		if len(label) > 10 {
			label = label[:10]
		}
		return label
	}
	return ""
}

// value extracts the numeric value from the first candidate field present.
// Non-coercible values become 0.
func (s seriesSpec) value(element map[string]any) float64 {
	for _, key := range s.valueKeys {
		if v, ok := element[key]; ok {
			return coerceNumber(v)
		}
	}
	return 0
}

func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func coerceNumber(v any) float64 {
	switch t := v.(type) {
	case float64:
		return finite(t)
	case string:
		parsed, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0
		}
		return finite(parsed)
	default:
		return 0
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
