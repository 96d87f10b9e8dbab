// Package memory holds an in-process mirror used in tests and when no
// spreadsheet is configured.
package memory

import (
	"context"
	"sync"

	ports "daftar/internal/sheets"
)

type Mirror struct {
	mu   sync.Mutex
	rows [][]string
}

var _ ports.RowMirror = (*Mirror)(nil)

func New() *Mirror {
	return &Mirror{}
}

func (m *Mirror) ReplaceRows(_ context.Context, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = make([][]string, len(rows))
	copy(m.rows, rows)
	return nil
}

// Rows returns the last mirrored snapshot.
func (m *Mirror) Rows() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]string, len(m.rows))
	copy(out, m.rows)
	return out
}
