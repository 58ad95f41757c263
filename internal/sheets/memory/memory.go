// Package memory is an in-memory ExportSink used in tests and when no
// spreadsheet is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"fundtrackr/internal/core"
)

type Sink struct {
	mu   sync.Mutex
	rows []core.Transaction
}

func New() *Sink {
	return &Sink{}
}

// AppendSnapshot stores the snapshot and returns a synthetic row reference.
func (s *Sink) AppendSnapshot(_ context.Context, txs []core.Transaction) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, txs...)
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

// Rows returns a copy of everything appended so far.
func (s *Sink) Rows() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.rows...)
}
