package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/core"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()

	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testStores(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"sqlite": newTestRepository(t),
		"memory": NewMemoryStore(),
	}
}

func TestLatestRecordEmpty(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.LatestRecord(context.Background())
			if !errors.Is(err, core.ErrNoRecord) {
				t.Fatalf("expected ErrNoRecord, got %v", err)
			}
		})
	}
}

func TestSaveAndLatestRecord(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			first := core.FinancialRecord{Income: 50000, Rent: 12000, Savings: 10000}
			second := core.FinancialRecord{Income: 55000, Rent: 12000, Savings: 14000}

			id1, err := store.SaveRecord(ctx, first)
			if err != nil {
				t.Fatalf("SaveRecord: %v", err)
			}
			id2, err := store.SaveRecord(ctx, second)
			if err != nil {
				t.Fatalf("SaveRecord: %v", err)
			}
			if id1 == id2 {
				t.Fatalf("expected distinct record ids, got %q twice", id1)
			}

			got, err := store.LatestRecord(ctx)
			if err != nil {
				t.Fatalf("LatestRecord: %v", err)
			}
			if got.Income != second.Income || got.Savings != second.Savings {
				t.Errorf("latest record = %+v, want %+v", got, second)
			}
		})
	}
}

func TestStatementLifecycle(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			st, err := store.SaveStatement(ctx, "Swiggy order Rs. 450\nRent paid 12000")
			if err != nil {
				t.Fatalf("SaveStatement: %v", err)
			}
			if st.ID == "" {
				t.Fatal("expected a generated statement id")
			}
			if st.Status != core.StatementPending {
				t.Errorf("new statement status = %q, want %q", st.Status, core.StatementPending)
			}

			got, err := store.GetStatement(ctx, st.ID)
			if err != nil {
				t.Fatalf("GetStatement: %v", err)
			}
			if got.RawText != st.RawText {
				t.Errorf("raw text = %q, want %q", got.RawText, st.RawText)
			}

			if err := store.MarkStatementStatus(ctx, st.ID, core.StatementProcessed); err != nil {
				t.Fatalf("MarkStatementStatus: %v", err)
			}
			got, err = store.GetStatement(ctx, st.ID)
			if err != nil {
				t.Fatalf("GetStatement after update: %v", err)
			}
			if got.Status != core.StatementProcessed {
				t.Errorf("status = %q, want %q", got.Status, core.StatementProcessed)
			}
		})
	}
}

func TestSaveStatementRejectsEmpty(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.SaveStatement(context.Background(), "")
			if !errors.Is(err, core.ErrEmptyStatement) {
				t.Fatalf("expected ErrEmptyStatement, got %v", err)
			}
		})
	}
}

func TestGetStatementUnknownID(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := store.GetStatement(context.Background(), "no-such-id"); err == nil {
				t.Fatal("expected error for unknown statement id")
			}
		})
	}
}
