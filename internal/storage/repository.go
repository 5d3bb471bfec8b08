package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/core"
)

// SQLiteRepository is the document store for financial snapshots and raw
// statements. Snapshots are stored as JSON payloads; the schema only indexes
// what the queries need (creation order).
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SaveRecord implements RecordStore. Each save is a whole new snapshot;
// previous ones are kept for history but never merged.
func (r *SQLiteRepository) SaveRecord(ctx context.Context, rec core.FinancialRecord) (string, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO records (payload) VALUES (?)`, string(payload))
	if err != nil {
		return "", fmt.Errorf("insert record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("record insert id: %w", err)
	}

	slog.InfoContext(ctx, "Financial record saved", "id", id)
	return strconv.FormatInt(id, 10), nil
}

// LatestRecord implements RecordStore. Most-recently-created wins.
func (r *SQLiteRepository) LatestRecord(ctx context.Context) (core.FinancialRecord, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM records ORDER BY id DESC LIMIT 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return core.FinancialRecord{}, core.ErrNoRecord
	}
	if err != nil {
		return core.FinancialRecord{}, fmt.Errorf("query latest record: %w", err)
	}

	var rec core.FinancialRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return core.FinancialRecord{}, fmt.Errorf("unmarshal record payload: %w", err)
	}
	return rec, nil
}

// SaveStatement implements StatementStore.
func (r *SQLiteRepository) SaveStatement(ctx context.Context, rawText string) (core.Statement, error) {
	if rawText == "" {
		return core.Statement{}, core.ErrEmptyStatement
	}

	id := uuid.NewString()
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO statements (id, raw_text, status) VALUES (?, ?, ?)`,
		id, rawText, core.StatementPending); err != nil {
		return core.Statement{}, fmt.Errorf("insert statement: %w", err)
	}

	slog.InfoContext(ctx, "Statement saved", "id", id, "bytes", len(rawText))
	return r.GetStatement(ctx, id)
}

// GetStatement implements StatementStore.
func (r *SQLiteRepository) GetStatement(ctx context.Context, id string) (core.Statement, error) {
	var st core.Statement
	err := r.db.QueryRowContext(ctx,
		`SELECT id, raw_text, status, created_at FROM statements WHERE id = ?`, id).
		Scan(&st.ID, &st.RawText, &st.Status, &st.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Statement{}, fmt.Errorf("statement %s not found", id)
	}
	if err != nil {
		return core.Statement{}, fmt.Errorf("query statement: %w", err)
	}
	return st, nil
}

// MarkStatementStatus implements StatementStore.
func (r *SQLiteRepository) MarkStatementStatus(ctx context.Context, id, status string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE statements SET status = ? WHERE id = ?`, status, id); err != nil {
		return fmt.Errorf("update statement status: %w", err)
	}
	return nil
}
