// Package worker consumes ledger events and mirrors the referenced
// records to the configured export target.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"finbuddy/internal/amqp"
	"finbuddy/internal/core"
	"finbuddy/internal/export"
)

// LedgerReader is the slice of storage the worker needs to resolve an
// event into a full record.
type LedgerReader interface {
	GetIncome(ctx context.Context, id int64) (*core.Income, error)
	GetExpense(ctx context.Context, id int64) (*core.Expense, error)
	GetLoan(ctx context.Context, id int64) (*core.Loan, error)
	GetInvestment(ctx context.Context, id int64) (*core.Investment, error)
}

type ExportWorker struct {
	storage LedgerReader
	writer  export.LedgerWriter
}

func NewExportWorker(storage LedgerReader, writer export.LedgerWriter) *ExportWorker {
	return &ExportWorker{storage: storage, writer: writer}
}

// HandleLedgerEvent resolves one event into an export row and appends
// it. Deletes write a tombstone row since the record is already gone.
func (w *ExportWorker) HandleLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	row := export.Row{
		When: msg.Timestamp,
		Kind: msg.Kind,
		Op:   msg.Op,
	}
	if row.When.IsZero() {
		row.When = time.Now()
	}

	if msg.Op != amqp.OpDelete {
		var err error
		row, err = w.fillFromRecord(ctx, row, msg)
		if errors.Is(err, core.ErrNotFound) {
			// Record deleted between publish and consume. Export a
			// tombstone rather than requeueing forever.
			slog.WarnContext(ctx, "Ledger record vanished before export",
				"kind", msg.Kind, "id", msg.ID, "op", msg.Op)
			row.Op = amqp.OpDelete
		} else if err != nil {
			return fmt.Errorf("load %s %d: %w", msg.Kind, msg.ID, err)
		}
	}

	ref, err := w.writer.AppendRow(ctx, row)
	if err != nil {
		return fmt.Errorf("append export row: %w", err)
	}

	slog.InfoContext(ctx, "Exported ledger event",
		"kind", msg.Kind,
		"id", msg.ID,
		"op", row.Op,
		"ref", ref)
	return nil
}

func (w *ExportWorker) fillFromRecord(ctx context.Context, row export.Row, msg *amqp.LedgerEventMessage) (export.Row, error) {
	switch msg.Kind {
	case amqp.KindIncome:
		in, err := w.storage.GetIncome(ctx, msg.ID)
		if err != nil {
			return row, err
		}
		row.Name = in.Name
		row.Amount = in.Amount
		row.Category = incomeCategory(in.Type)
	case amqp.KindExpense:
		ex, err := w.storage.GetExpense(ctx, msg.ID)
		if err != nil {
			return row, err
		}
		row.Name = ex.Name
		row.Amount = ex.Amount
		row.Category = expenseCategory(ex.Type)
	case amqp.KindLoan:
		l, err := w.storage.GetLoan(ctx, msg.ID)
		if err != nil {
			return row, err
		}
		row.Name = l.Name
		row.Amount = l.MonthlyEMI
		row.Category = "emi"
	case amqp.KindInvestment:
		v, err := w.storage.GetInvestment(ctx, msg.ID)
		if err != nil {
			return row, err
		}
		row.Name = v.Type
		row.Amount = v.Principal
		row.Category = "principal"
	default:
		return row, fmt.Errorf("unknown ledger kind %q", msg.Kind)
	}
	return row, nil
}

func incomeCategory(t core.IncomeType) string {
	switch t {
	case core.IncomeSalary:
		return "salary"
	case core.IncomeSideHustle:
		return "sidehustle"
	case core.IncomeBusiness:
		return "business"
	case core.IncomeWithdraw:
		return "withdraw"
	default:
		return "unknown"
	}
}

func expenseCategory(t core.ExpenseType) string {
	switch t {
	case core.ExpenseDaily:
		return "daily"
	case core.ExpenseWeekly:
		return "weekly"
	case core.ExpenseMonthly:
		return "monthly"
	default:
		return "unknown"
	}
}
