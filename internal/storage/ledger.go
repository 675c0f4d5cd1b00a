package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"finbuddy/internal/core"
)

// Income records.

func (r *SQLiteRepository) CreateIncome(ctx context.Context, in *core.Income) error {
	ts := now()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO incomes (user_id, name, amount, type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.UserID, in.Name, in.Amount, int(in.Type), ts, ts)
	if err != nil {
		return fmt.Errorf("create income: %w", err)
	}
	if in.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("income id: %w", err)
	}
	in.CreatedAt = ts
	in.UpdatedAt = ts
	return nil
}

func (r *SQLiteRepository) GetIncome(ctx context.Context, id int64) (*core.Income, error) {
	in := &core.Income{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, amount, type, created_at, updated_at
		FROM incomes WHERE id = ?`, id).
		Scan(&in.ID, &in.UserID, &in.Name, &in.Amount, &in.Type, &in.CreatedAt, &in.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get income %d: %w", id, err)
	}
	return in, nil
}

func (r *SQLiteRepository) ListIncomes(ctx context.Context, userID int64) ([]core.Income, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, amount, type, created_at, updated_at
		FROM incomes WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	defer rows.Close()

	var out []core.Income
	for rows.Next() {
		var in core.Income
		if err := rows.Scan(&in.ID, &in.UserID, &in.Name, &in.Amount, &in.Type, &in.CreatedAt, &in.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateIncome(ctx context.Context, in *core.Income) error {
	ts := now()
	res, err := r.db.ExecContext(ctx, `
		UPDATE incomes SET name = ?, amount = ?, type = ?, updated_at = ? WHERE id = ?`,
		in.Name, in.Amount, int(in.Type), ts, in.ID)
	if err != nil {
		return fmt.Errorf("update income %d: %w", in.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	in.UpdatedAt = ts
	return nil
}

func (r *SQLiteRepository) DeleteIncome(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM incomes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete income %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// SumSalaryIncome sums a user's salary-category income. This is the
// ledger read behind the salary-proportional goal split.
func (r *SQLiteRepository) SumSalaryIncome(ctx context.Context, userID int64) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM incomes WHERE user_id = ? AND type = ?`,
		userID, int(core.IncomeSalary)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum salary income for user %d: %w", userID, err)
	}
	return total, nil
}

// Expense records.

func (r *SQLiteRepository) CreateExpense(ctx context.Context, ex *core.Expense) error {
	ts := now()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (user_id, name, amount, type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ex.UserID, ex.Name, ex.Amount, int(ex.Type), ts, ts)
	if err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	if ex.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("expense id: %w", err)
	}
	ex.CreatedAt = ts
	ex.UpdatedAt = ts
	return nil
}

func (r *SQLiteRepository) GetExpense(ctx context.Context, id int64) (*core.Expense, error) {
	ex := &core.Expense{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, amount, type, created_at, updated_at
		FROM expenses WHERE id = ?`, id).
		Scan(&ex.ID, &ex.UserID, &ex.Name, &ex.Amount, &ex.Type, &ex.CreatedAt, &ex.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get expense %d: %w", id, err)
	}
	return ex, nil
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context, userID int64) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, amount, type, created_at, updated_at
		FROM expenses WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var ex core.Expense
		if err := rows.Scan(&ex.ID, &ex.UserID, &ex.Name, &ex.Amount, &ex.Type, &ex.CreatedAt, &ex.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, ex)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateExpense(ctx context.Context, ex *core.Expense) error {
	ts := now()
	res, err := r.db.ExecContext(ctx, `
		UPDATE expenses SET name = ?, amount = ?, type = ?, updated_at = ? WHERE id = ?`,
		ex.Name, ex.Amount, int(ex.Type), ts, ex.ID)
	if err != nil {
		return fmt.Errorf("update expense %d: %w", ex.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	ex.UpdatedAt = ts
	return nil
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// Loan records.

func (r *SQLiteRepository) CreateLoan(ctx context.Context, l *core.Loan) error {
	ts := now()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO loans (user_id, name, amount, monthly_emi, tenure_left, is_paid, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.UserID, l.Name, l.Amount, l.MonthlyEMI, l.TenureLeft, l.IsPaid, ts, ts)
	if err != nil {
		return fmt.Errorf("create loan: %w", err)
	}
	if l.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("loan id: %w", err)
	}
	l.CreatedAt = ts
	l.UpdatedAt = ts
	return nil
}

func (r *SQLiteRepository) GetLoan(ctx context.Context, id int64) (*core.Loan, error) {
	l := &core.Loan{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, amount, monthly_emi, tenure_left, is_paid, created_at, updated_at
		FROM loans WHERE id = ?`, id).
		Scan(&l.ID, &l.UserID, &l.Name, &l.Amount, &l.MonthlyEMI, &l.TenureLeft, &l.IsPaid, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get loan %d: %w", id, err)
	}
	return l, nil
}

func (r *SQLiteRepository) ListLoans(ctx context.Context, userID int64) ([]core.Loan, error) {
	return r.listLoans(ctx, `
		SELECT id, user_id, name, amount, monthly_emi, tenure_left, is_paid, created_at, updated_at
		FROM loans WHERE user_id = ? ORDER BY id`, userID)
}

// ListUnpaidLoans returns loans still carrying EMI obligations, in
// insertion order. Paid loans never contribute to EMI aggregation.
func (r *SQLiteRepository) ListUnpaidLoans(ctx context.Context, userID int64) ([]core.Loan, error) {
	return r.listLoans(ctx, `
		SELECT id, user_id, name, amount, monthly_emi, tenure_left, is_paid, created_at, updated_at
		FROM loans WHERE user_id = ? AND is_paid = 0 ORDER BY id`, userID)
}

func (r *SQLiteRepository) listLoans(ctx context.Context, query string, userID int64) ([]core.Loan, error) {
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()

	var out []core.Loan
	for rows.Next() {
		var l core.Loan
		if err := rows.Scan(&l.ID, &l.UserID, &l.Name, &l.Amount, &l.MonthlyEMI, &l.TenureLeft, &l.IsPaid, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateLoan(ctx context.Context, l *core.Loan) error {
	ts := now()
	res, err := r.db.ExecContext(ctx, `
		UPDATE loans SET name = ?, amount = ?, monthly_emi = ?, tenure_left = ?, is_paid = ?, updated_at = ?
		WHERE id = ?`,
		l.Name, l.Amount, l.MonthlyEMI, l.TenureLeft, l.IsPaid, ts, l.ID)
	if err != nil {
		return fmt.Errorf("update loan %d: %w", l.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	l.UpdatedAt = ts
	return nil
}

func (r *SQLiteRepository) DeleteLoan(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM loans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete loan %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// Investment records.

func (r *SQLiteRepository) CreateInvestment(ctx context.Context, v *core.Investment) error {
	ts := now()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO investments (user_id, principal, rate_of_interest, compounding_frequency, time, type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		v.UserID, v.Principal, v.RateOfInterest, int(v.CompoundingFrequency), v.Time, v.Type, ts, ts)
	if err != nil {
		return fmt.Errorf("create investment: %w", err)
	}
	if v.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("investment id: %w", err)
	}
	v.CreatedAt = ts
	v.UpdatedAt = ts
	return nil
}

func (r *SQLiteRepository) GetInvestment(ctx context.Context, id int64) (*core.Investment, error) {
	v := &core.Investment{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, principal, rate_of_interest, compounding_frequency, time, type, created_at, updated_at
		FROM investments WHERE id = ?`, id).
		Scan(&v.ID, &v.UserID, &v.Principal, &v.RateOfInterest, &v.CompoundingFrequency, &v.Time, &v.Type, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get investment %d: %w", id, err)
	}
	return v, nil
}

func (r *SQLiteRepository) ListInvestments(ctx context.Context, userID int64) ([]core.Investment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, principal, rate_of_interest, compounding_frequency, time, type, created_at, updated_at
		FROM investments WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	defer rows.Close()

	var out []core.Investment
	for rows.Next() {
		var v core.Investment
		if err := rows.Scan(&v.ID, &v.UserID, &v.Principal, &v.RateOfInterest, &v.CompoundingFrequency, &v.Time, &v.Type, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan investment: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateInvestment(ctx context.Context, v *core.Investment) error {
	ts := now()
	res, err := r.db.ExecContext(ctx, `
		UPDATE investments SET principal = ?, rate_of_interest = ?, compounding_frequency = ?, time = ?, type = ?, updated_at = ?
		WHERE id = ?`,
		v.Principal, v.RateOfInterest, int(v.CompoundingFrequency), v.Time, v.Type, ts, v.ID)
	if err != nil {
		return fmt.Errorf("update investment %d: %w", v.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	v.UpdatedAt = ts
	return nil
}

func (r *SQLiteRepository) DeleteInvestment(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM investments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete investment %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return core.ErrNotFound
	}
	return nil
}
