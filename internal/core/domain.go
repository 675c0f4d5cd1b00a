package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	IncomeSalary     IncomeType = 0
	IncomeSideHustle IncomeType = 1
	IncomeBusiness   IncomeType = 2
	IncomeWithdraw   IncomeType = 3

	ExpenseDaily   ExpenseType = 0
	ExpenseWeekly  ExpenseType = 1
	ExpenseMonthly ExpenseType = 2

	GoalModeEqual              GoalMode = 0
	GoalModeSalaryProportional GoalMode = 1

	CompoundAnnually     CompoundingFrequency = 0
	CompoundSemiannually CompoundingFrequency = 1
	CompoundQuarterly    CompoundingFrequency = 2
	CompoundMonthly      CompoundingFrequency = 3
)

type (
	// IncomeType is the stable integer code persisted for income categories.
	IncomeType int

	// ExpenseType is the stable integer code persisted for expense categories.
	ExpenseType int

	// GoalMode selects how a goal's amount is divided among its members.
	GoalMode int

	// CompoundingFrequency is the stable integer code for how often
	// interest compounds; PeriodsPerYear maps it to the formula input.
	CompoundingFrequency int

	User struct {
		ID           int64     `json:"id"`
		Username     string    `json:"username"`
		FullName     string    `json:"full_name"`
		Email        string    `json:"email"`
		PasswordHash string    `json:"-"`
		IsOnboard    bool      `json:"is_onboard"`
		CreatedAt    time.Time `json:"created_at"`
		UpdatedAt    time.Time `json:"updated_at"`
	}

	Profile struct {
		ID         int64     `json:"id"`
		UserID     int64     `json:"user_id"`
		Location   string    `json:"location"`
		Occupation string    `json:"occupation"`
		Age        int       `json:"age"`
		CreatedAt  time.Time `json:"created_at"`
		UpdatedAt  time.Time `json:"updated_at"`
	}

	Income struct {
		ID        int64      `json:"id"`
		UserID    int64      `json:"user_id"`
		Name      string     `json:"name"`
		Amount    float64    `json:"amount"`
		Type      IncomeType `json:"type"`
		CreatedAt time.Time  `json:"created_at"`
		UpdatedAt time.Time  `json:"updated_at"`
	}

	Expense struct {
		ID        int64       `json:"id"`
		UserID    int64       `json:"user_id"`
		Name      string      `json:"name"`
		Amount    float64     `json:"amount"`
		Type      ExpenseType `json:"type"`
		CreatedAt time.Time   `json:"created_at"`
		UpdatedAt time.Time   `json:"updated_at"`
	}

	Loan struct {
		ID         int64     `json:"id"`
		UserID     int64     `json:"user_id"`
		Name       string    `json:"name"`
		Amount     float64   `json:"amount"`
		MonthlyEMI float64   `json:"monthly_emi"`
		TenureLeft int       `json:"tenure_left"`
		IsPaid     bool      `json:"is_paid"`
		CreatedAt  time.Time `json:"created_at"`
		UpdatedAt  time.Time `json:"updated_at"`
	}

	Investment struct {
		ID                   int64                `json:"id"`
		UserID               int64                `json:"user_id"`
		Principal            float64              `json:"principal"`
		RateOfInterest       float64              `json:"rate_of_interest"`
		CompoundingFrequency CompoundingFrequency `json:"compounding_frequency"`
		Time                 float64              `json:"time"`
		Type                 string               `json:"type"`
		CreatedAt            time.Time            `json:"created_at"`
		UpdatedAt            time.Time            `json:"updated_at"`
	}

	Goal struct {
		ID         int64     `json:"id"`
		Name       string    `json:"name"`
		Amount     float64   `json:"amount"`
		Mode       GoalMode  `json:"mode"`
		IsAchieved bool      `json:"is_achieved"`
		CreatedAt  time.Time `json:"created_at"`
		UpdatedAt  time.Time `json:"updated_at"`
	}

	// GoalMember is a (goal, user) membership pair. UserName is joined in
	// from the users table when members are loaded for a goal.
	GoalMember struct {
		GoalID   int64  `json:"goal_id"`
		UserID   int64  `json:"user_id"`
		UserName string `json:"user_name,omitempty"`
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyName       = errors.New("empty name")
	ErrInvalidCategory = errors.New("invalid category code")
)

// ParseIncomeType validates a raw category code read at the boundary.
// Unknown codes are rejected here, not silently carried into aggregation.
func ParseIncomeType(code int) (IncomeType, error) {
	t := IncomeType(code)
	switch t {
	case IncomeSalary, IncomeSideHustle, IncomeBusiness, IncomeWithdraw:
		return t, nil
	}
	return 0, fmt.Errorf("income type %d: %w", code, ErrInvalidCategory)
}

func ParseExpenseType(code int) (ExpenseType, error) {
	t := ExpenseType(code)
	switch t {
	case ExpenseDaily, ExpenseWeekly, ExpenseMonthly:
		return t, nil
	}
	return 0, fmt.Errorf("expense type %d: %w", code, ErrInvalidCategory)
}

func ParseGoalMode(code int) (GoalMode, error) {
	m := GoalMode(code)
	switch m {
	case GoalModeEqual, GoalModeSalaryProportional:
		return m, nil
	}
	return 0, fmt.Errorf("goal mode %d: %w", code, ErrInvalidCategory)
}

func ParseCompoundingFrequency(code int) (CompoundingFrequency, error) {
	f := CompoundingFrequency(code)
	switch f {
	case CompoundAnnually, CompoundSemiannually, CompoundQuarterly, CompoundMonthly:
		return f, nil
	}
	return 0, fmt.Errorf("compounding frequency %d: %w", code, ErrInvalidCategory)
}

// PeriodsPerYear maps the persisted code to the number of compounding
// periods per year used by the growth formula.
func (f CompoundingFrequency) PeriodsPerYear() int {
	switch f {
	case CompoundSemiannually:
		return 2
	case CompoundQuarterly:
		return 4
	case CompoundMonthly:
		return 12
	default:
		return 1
	}
}

func (i Income) Validate() error {
	if len(strings.TrimSpace(i.Name)) == 0 {
		return ErrEmptyName
	}
	if i.Amount < 0 {
		return ErrInvalidAmount
	}
	_, err := ParseIncomeType(int(i.Type))
	return err
}

func (e Expense) Validate() error {
	if len(strings.TrimSpace(e.Name)) == 0 {
		return ErrEmptyName
	}
	if e.Amount < 0 {
		return ErrInvalidAmount
	}
	_, err := ParseExpenseType(int(e.Type))
	return err
}

func (l Loan) Validate() error {
	if len(strings.TrimSpace(l.Name)) == 0 {
		return ErrEmptyName
	}
	if l.Amount < 0 || l.MonthlyEMI < 0 {
		return ErrInvalidAmount
	}
	if l.TenureLeft < 0 {
		return &ValidationError{Field: "tenure_left", Reason: "must not be negative"}
	}
	return nil
}

func (v Investment) Validate() error {
	if v.Principal <= 0 {
		return ErrInvalidAmount
	}
	if len(strings.TrimSpace(v.Type)) == 0 {
		return ErrEmptyName
	}
	if v.Time < 0 {
		return &ValidationError{Field: "time", Reason: "must not be negative"}
	}
	_, err := ParseCompoundingFrequency(int(v.CompoundingFrequency))
	return err
}

func (g Goal) Validate() error {
	if len(strings.TrimSpace(g.Name)) == 0 {
		return ErrEmptyName
	}
	if g.Amount <= 0 {
		return ErrInvalidAmount
	}
	_, err := ParseGoalMode(int(g.Mode))
	return err
}
