package services

import (
	"context"
	"fmt"

	"finbuddy/internal/core"
)

// LedgerReader is the slice of storage the summary calculations read.
type LedgerReader interface {
	ListIncomes(ctx context.Context, userID int64) ([]core.Income, error)
	ListExpenses(ctx context.Context, userID int64) ([]core.Expense, error)
	ListUnpaidLoans(ctx context.Context, userID int64) ([]core.Loan, error)
}

// SummaryService computes per-user financial summaries from fresh
// ledger reads.
type SummaryService struct {
	storage LedgerReader
}

func NewSummaryService(storage LedgerReader) *SummaryService {
	return &SummaryService{storage: storage}
}

// AggregateIncome sums the user's income records per category.
func (s *SummaryService) AggregateIncome(ctx context.Context, userID int64) (core.IncomeSummary, error) {
	records, err := s.storage.ListIncomes(ctx, userID)
	if err != nil {
		return core.IncomeSummary{}, fmt.Errorf("list incomes: %w", err)
	}
	return core.AggregateIncomes(records), nil
}

// AggregateExpense sums the user's expense records per category.
func (s *SummaryService) AggregateExpense(ctx context.Context, userID int64) (core.ExpenseSummary, error) {
	records, err := s.storage.ListExpenses(ctx, userID)
	if err != nil {
		return core.ExpenseSummary{}, fmt.Errorf("list expenses: %w", err)
	}
	return core.AggregateExpenses(records), nil
}

// DeductLoans nets the user's unpaid EMI obligations against baseline.
func (s *SummaryService) DeductLoans(ctx context.Context, userID int64, baseline float64) (core.LoanSummary, error) {
	unpaid, err := s.storage.ListUnpaidLoans(ctx, userID)
	if err != nil {
		return core.LoanSummary{}, fmt.Errorf("list unpaid loans: %w", err)
	}
	return core.DeductLoans(unpaid, baseline), nil
}

// TotalSavings computes income total minus monthly expense total, then
// deducts outstanding EMIs from that figure.
func (s *SummaryService) TotalSavings(ctx context.Context, userID int64) (core.LoanSummary, error) {
	income, err := s.AggregateIncome(ctx, userID)
	if err != nil {
		return core.LoanSummary{}, err
	}
	expense, err := s.AggregateExpense(ctx, userID)
	if err != nil {
		return core.LoanSummary{}, err
	}
	return s.DeductLoans(ctx, userID, income.Total-expense.MonthlyTotal)
}

// Dashboard bundles the three summaries served on the dashboard.
func (s *SummaryService) Dashboard(ctx context.Context, userID int64) (core.DashboardSummary, error) {
	income, err := s.AggregateIncome(ctx, userID)
	if err != nil {
		return core.DashboardSummary{}, err
	}
	expense, err := s.AggregateExpense(ctx, userID)
	if err != nil {
		return core.DashboardSummary{}, err
	}
	savings, err := s.DeductLoans(ctx, userID, income.Total-expense.MonthlyTotal)
	if err != nil {
		return core.DashboardSummary{}, err
	}
	return core.DashboardSummary{
		Income:  income,
		Expense: expense,
		Savings: savings,
	}, nil
}
