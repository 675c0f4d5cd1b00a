// Package export defines the outbound port for mirroring ledger
// changes to an external spreadsheet-like target.
package export

import (
	"context"
	"time"
)

// Row is one exported ledger change. Deletes carry the record's last
// known name so the sheet keeps a readable tombstone.
type Row struct {
	When     time.Time
	Kind     string
	Name     string
	Amount   float64
	Category string
	Op       string
}

// LedgerWriter appends rows to the export target and returns an
// opaque reference to the written row.
type LedgerWriter interface {
	AppendRow(ctx context.Context, row Row) (ref string, err error)
}
