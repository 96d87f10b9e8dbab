// Package sheets declares the outbound port for mirroring ledger backups to a
// spreadsheet.
package sheets

import "context"

// RowMirror replaces the mirror sheet's contents with the given rows. The
// backup worker pushes the full active ledger on every run, so the mirror is
// always a snapshot, never an append log.
type RowMirror interface {
	ReplaceRows(ctx context.Context, rows [][]string) error
}
