// Package narrative generates the AI financial summary via the Gemini API.
package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/core"
)

const DefaultModel = "gemini-2.5-flash"

// GeminiSummarizer implements insight.Summarizer against the Gemini API.
// Every call is treated as unreliable by the caller; this client only has to
// report failures honestly, not recover from them.
type GeminiSummarizer struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiSummarizer builds the client from an API key. An empty model name
// selects DefaultModel.
func NewGeminiSummarizer(ctx context.Context, apiKey, modelName string) (*GeminiSummarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	return &GeminiSummarizer{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// Summarize sends the advisor prompt plus a data-context block for the
// record and returns the model's text.
func (g *GeminiSummarizer) Summarize(ctx context.Context, prompt string, rec core.FinancialRecord) (string, error) {
	full := fmt.Sprintf("You are a finance assistant. Analyze:\n\n%s\n\n[DATA CONTEXT]\n%+v", prompt, rec)

	resp, err := g.model.GenerateContent(ctx, genai.Text(full))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty gemini response")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected gemini response part %T", resp.Candidates[0].Content.Parts[0])
	}

	return strings.TrimSpace(string(text)), nil
}

// Close releases the underlying API client.
func (g *GeminiSummarizer) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
