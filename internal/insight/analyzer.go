package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/core"
)

// Summarizer produces a narrative summary for a prompt plus record context.
// Implementations are expected to be slow and unreliable (remote model
// calls); the analyzer treats any failure as recoverable.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string, rec core.FinancialRecord) (string, error)
}

// FallbackSummary is attached when narrative generation fails. The local
// metrics are always served regardless.
const FallbackSummary = "AI analysis unavailable. Showing local metrics only."

const promptTemplate = `You're a financial advisor. Based on this user's financial data, give:
- Net worth analysis
- Budget feedback
- Debt advice
- Goal alignment
- Investment strategy

User Data:
%s
`

// Analyzer combines the local metrics engine with the narrative summarizer.
type Analyzer struct {
	summarizer Summarizer
}

func NewAnalyzer(summarizer Summarizer) *Analyzer {
	return &Analyzer{summarizer: summarizer}
}

// Analyze computes local metrics unconditionally, then attempts the
// narrative call. Narrative failure never propagates: the caller always gets
// at least the local metrics, with the fallback summary attached.
func (a *Analyzer) Analyze(ctx context.Context, rec core.FinancialRecord) core.InsightResult {
	result := ComputeMetrics(rec)

	if a.summarizer == nil {
		result.AISummary = FallbackSummary
		return result
	}

	summary, err := a.summarizer.Summarize(ctx, BuildPrompt(rec), rec)
	if err != nil || summary == "" {
		slog.WarnContext(ctx, "Narrative generation failed, serving local metrics only",
			"error", err)
		result.AISummary = FallbackSummary
		return result
	}

	result.AISummary = summary
	return result
}

// BuildPrompt renders the fixed advisor prompt with the record serialized as
// indented JSON, matching the shape the narrative model was tuned against.
func BuildPrompt(rec core.FinancialRecord) string {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		data = []byte("{}")
	}
	return fmt.Sprintf(promptTemplate, data)
}
