package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/categorize"
	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/core"
	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/storage"
)

// IngestProcessor turns a stored raw statement into an updated financial
// snapshot: categorize the text, fold the category totals into the latest
// snapshot and save the result as a new one.
type IngestProcessor struct {
	store storage.Store
}

func NewIngestProcessor(store storage.Store) *IngestProcessor {
	return &IngestProcessor{store: store}
}

// ProcessStatement runs the full ingest pipeline for one statement ID.
// Failures mark the statement failed so it is never silently stuck pending.
func (p *IngestProcessor) ProcessStatement(ctx context.Context, statementID string) error {
	st, err := p.store.GetStatement(ctx, statementID)
	if err != nil {
		return fmt.Errorf("load statement: %w", err)
	}

	categorized := categorize.Categorize(st.RawText)

	rec, err := p.store.LatestRecord(ctx)
	if err != nil && !errors.Is(err, core.ErrNoRecord) {
		p.markFailed(ctx, statementID)
		return fmt.Errorf("load latest record: %w", err)
	}
	// No snapshot yet: the statement seeds a fresh one.

	rec = rec.ApplyCategories(categorized)

	recordID, err := p.store.SaveRecord(ctx, rec)
	if err != nil {
		p.markFailed(ctx, statementID)
		return fmt.Errorf("save updated record: %w", err)
	}

	if err := p.store.MarkStatementStatus(ctx, statementID, core.StatementProcessed); err != nil {
		return fmt.Errorf("mark statement processed: %w", err)
	}

	slog.InfoContext(ctx, "Statement ingested",
		"statementId", statementID,
		"recordId", recordID,
		"categories", len(categorized))
	return nil
}

func (p *IngestProcessor) markFailed(ctx context.Context, statementID string) {
	if err := p.store.MarkStatementStatus(ctx, statementID, core.StatementFailed); err != nil {
		slog.ErrorContext(ctx, "Failed to mark statement failed",
			"statementId", statementID, "error", err)
	}
}
