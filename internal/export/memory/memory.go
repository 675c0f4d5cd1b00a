// Package memory is an in-process export target used in development
// and tests, where no Google credentials are available.
package memory

import (
	"context"
	"fmt"
	"sync"

	"finbuddy/internal/export"
)

type Store struct {
	mu   sync.Mutex
	rows []export.Row
}

var _ export.LedgerWriter = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// AppendRow stores the row and returns a synthetic row reference.
func (s *Store) AppendRow(_ context.Context, row export.Row) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, row)
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

// Rows returns a copy of everything appended so far.
func (s *Store) Rows() []export.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]export.Row(nil), s.rows...)
}
