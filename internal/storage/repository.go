package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"finbuddy/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the system of record for all finbuddy entities.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// now returns the timestamp written to created_at/updated_at columns.
// Stored from Go rather than CURRENT_TIMESTAMP so values scan back as
// time.Time under the modernc driver.
func now() time.Time {
	return time.Now().UTC()
}

// inTx runs fn inside a transaction, rolling back on error or panic.
func (r *SQLiteRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// CreateUser inserts a new user row.
func (r *SQLiteRepository) CreateUser(ctx context.Context, u *core.User) error {
	ts := now()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, full_name, email, password_hash, is_onboard, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, ?, ?)`,
		u.Username, u.FullName, u.Email, u.PasswordHash, ts, ts)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	u.ID = id
	u.CreatedAt = ts
	u.UpdatedAt = ts

	slog.InfoContext(ctx, "User created", "id", u.ID, "email", u.Email)
	return nil
}

func (r *SQLiteRepository) FindUserByEmail(ctx context.Context, email string) (*core.User, error) {
	u := &core.User{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, full_name, email, password_hash, is_onboard, created_at, updated_at
		FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Username, &u.FullName, &u.Email, &u.PasswordHash, &u.IsOnboard, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) GetUser(ctx context.Context, id int64) (*core.User, error) {
	u := &core.User{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, full_name, email, password_hash, is_onboard, created_at, updated_at
		FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Username, &u.FullName, &u.Email, &u.PasswordHash, &u.IsOnboard, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

// Onboard persists the onboarding wizard payload: profile plus initial
// ledger records, all-or-nothing, and flips the user's is_onboard flag.
func (r *SQLiteRepository) Onboard(ctx context.Context, userID int64, profile *core.Profile, incomes []core.Income, expenses []core.Expense, loans []core.Loan, investments []core.Investment) error {
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		ts := now()

		res, err := tx.ExecContext(ctx, `
			INSERT INTO profiles (user_id, location, occupation, age, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			userID, profile.Location, profile.Occupation, profile.Age, ts, ts)
		if err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		if profile.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("profile id: %w", err)
		}
		profile.UserID = userID
		profile.CreatedAt = ts
		profile.UpdatedAt = ts

		for _, in := range incomes {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO incomes (user_id, name, amount, type, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?)`,
				userID, in.Name, in.Amount, int(in.Type), ts, ts); err != nil {
				return fmt.Errorf("create onboarding income: %w", err)
			}
		}
		for _, ex := range expenses {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO expenses (user_id, name, amount, type, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?)`,
				userID, ex.Name, ex.Amount, int(ex.Type), ts, ts); err != nil {
				return fmt.Errorf("create onboarding expense: %w", err)
			}
		}
		for _, l := range loans {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO loans (user_id, name, amount, monthly_emi, tenure_left, is_paid, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				userID, l.Name, l.Amount, l.MonthlyEMI, l.TenureLeft, l.IsPaid, ts, ts); err != nil {
				return fmt.Errorf("create onboarding loan: %w", err)
			}
		}
		for _, v := range investments {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO investments (user_id, principal, rate_of_interest, compounding_frequency, time, type, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				userID, v.Principal, v.RateOfInterest, int(v.CompoundingFrequency), v.Time, v.Type, ts, ts); err != nil {
				return fmt.Errorf("create onboarding investment: %w", err)
			}
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET is_onboard = 1, updated_at = ? WHERE id = ?`, ts, userID); err != nil {
			return fmt.Errorf("mark user onboarded: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "User onboarded",
		"user_id", userID,
		"incomes", len(incomes),
		"expenses", len(expenses),
		"loans", len(loans),
		"investments", len(investments))
	return nil
}
