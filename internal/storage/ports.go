package storage

import (
	"context"

	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/core"
)

// RecordStore persists financial snapshots. The latest snapshot is
// authoritative; no merging across saved snapshots happens at this layer.
type RecordStore interface {
	// SaveRecord stores a new snapshot and returns its reference.
	SaveRecord(ctx context.Context, rec core.FinancialRecord) (string, error)
	// LatestRecord returns the most recently created snapshot, or
	// core.ErrNoRecord when the store is empty. An empty store is a normal
	// state, not a failure.
	LatestRecord(ctx context.Context) (core.FinancialRecord, error)
}

// StatementStore persists raw statement texts awaiting categorization.
type StatementStore interface {
	SaveStatement(ctx context.Context, rawText string) (core.Statement, error)
	GetStatement(ctx context.Context, id string) (core.Statement, error)
	MarkStatementStatus(ctx context.Context, id, status string) error
}

// Store combines both persistence concerns; the SQLite and memory backends
// implement it.
type Store interface {
	RecordStore
	StatementStore
}
