package storage

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rohitnarwaar/Sho-AI-Finance-Forecaster/internal/core"
)

// MemoryStore is the in-memory backend used for development and tests. Same
// contract as the SQLite repository, no persistence across restarts.
type MemoryStore struct {
	mu         sync.RWMutex
	records    []core.FinancialRecord
	statements map[string]core.Statement
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		statements: make(map[string]core.Statement),
	}
}

func (m *MemoryStore) SaveRecord(_ context.Context, rec core.FinancialRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return strconv.Itoa(len(m.records)), nil
}

func (m *MemoryStore) LatestRecord(_ context.Context) (core.FinancialRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.records) == 0 {
		return core.FinancialRecord{}, core.ErrNoRecord
	}
	return m.records[len(m.records)-1], nil
}

func (m *MemoryStore) SaveStatement(_ context.Context, rawText string) (core.Statement, error) {
	if rawText == "" {
		return core.Statement{}, core.ErrEmptyStatement
	}

	st := core.Statement{
		ID:        uuid.NewString(),
		RawText:   rawText,
		Status:    core.StatementPending,
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.statements[st.ID] = st
	return st, nil
}

func (m *MemoryStore) GetStatement(_ context.Context, id string) (core.Statement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.statements[id]
	if !ok {
		return core.Statement{}, fmt.Errorf("statement %s not found", id)
	}
	return st, nil
}

func (m *MemoryStore) MarkStatementStatus(_ context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.statements[id]
	if !ok {
		return fmt.Errorf("statement %s not found", id)
	}
	st.Status = status
	m.statements[id] = st
	return nil
}
