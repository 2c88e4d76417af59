// Package memory is the in-memory mirror backend, used in tests and when no
// spreadsheet is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"conti/internal/sheets"
)

type Store struct {
	mu    sync.Mutex
	rows  []sheets.ExpenseRow
	index map[string]int // expense id -> position in rows
}

var (
	_ sheets.RowAppender = (*Store)(nil)
	_ sheets.RowDeleter  = (*Store)(nil)
)

func New() *Store {
	return &Store{index: make(map[string]int)}
}

// AppendExpense records the row and returns a synthetic row reference.
// Appending an id that is already present replaces the existing row.
func (s *Store) AppendExpense(_ context.Context, row sheets.ExpenseRow) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.index[row.ID]; ok {
		s.rows[i] = row
		return fmt.Sprintf("mem:%d", i+1), nil
	}
	s.rows = append(s.rows, row)
	s.index[row.ID] = len(s.rows) - 1
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

// DeleteExpense removes the row for id. Unknown ids are a no-op.
func (s *Store) DeleteExpense(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return nil
	}
	s.rows = append(s.rows[:i], s.rows[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.rows); j++ {
		s.index[s.rows[j].ID] = j
	}
	return nil
}

// Rows returns a copy of the mirrored rows in append order.
func (s *Store) Rows() []sheets.ExpenseRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sheets.ExpenseRow(nil), s.rows...)
}
