package core

import (
	"errors"
	"testing"
)

func TestParseIncomeType(t *testing.T) {
	cases := []struct {
		code int
		want IncomeType
		ok   bool
	}{
		{0, IncomeSalary, true},
		{1, IncomeSideHustle, true},
		{2, IncomeBusiness, true},
		{3, IncomeWithdraw, true},
		{4, 0, false},
		{-1, 0, false},
		{99, 0, false},
	}
	for _, tc := range cases {
		got, err := ParseIncomeType(tc.code)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Errorf("code %d: got %v, err %v", tc.code, got, err)
			}
		} else if !errors.Is(err, ErrInvalidCategory) {
			t.Errorf("code %d: err = %v, want ErrInvalidCategory", tc.code, err)
		}
	}
}

func TestParseExpenseType(t *testing.T) {
	for code := 0; code <= 2; code++ {
		if _, err := ParseExpenseType(code); err != nil {
			t.Errorf("code %d: unexpected error %v", code, err)
		}
	}
	if _, err := ParseExpenseType(3); !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("code 3: err = %v, want ErrInvalidCategory", err)
	}
}

func TestCompoundingFrequencyPeriodsPerYear(t *testing.T) {
	cases := map[CompoundingFrequency]int{
		CompoundAnnually:     1,
		CompoundSemiannually: 2,
		CompoundQuarterly:    4,
		CompoundMonthly:      12,
	}
	for freq, want := range cases {
		if got := freq.PeriodsPerYear(); got != want {
			t.Errorf("%d.PeriodsPerYear() = %d, want %d", freq, got, want)
		}
	}
}

func TestIncomeValidate(t *testing.T) {
	valid := Income{Name: "job", Amount: 100, Type: IncomeSalary}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid income: %v", err)
	}

	cases := []struct {
		name   string
		income Income
		want   error
	}{
		{"empty name", Income{Name: "  ", Amount: 10, Type: IncomeSalary}, ErrEmptyName},
		{"negative amount", Income{Name: "x", Amount: -1, Type: IncomeSalary}, ErrInvalidAmount},
		{"bad category", Income{Name: "x", Amount: 10, Type: IncomeType(7)}, ErrInvalidCategory},
	}
	for _, tc := range cases {
		if err := tc.income.Validate(); !errors.Is(err, tc.want) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestGoalValidate(t *testing.T) {
	valid := Goal{Name: "trip", Amount: 500, Mode: GoalModeSalaryProportional}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid goal: %v", err)
	}
	if err := (Goal{Name: "trip", Amount: 0, Mode: GoalModeEqual}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero amount: err = %v", err)
	}
	if err := (Goal{Name: "trip", Amount: 10, Mode: GoalMode(5)}).Validate(); !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("bad mode: err = %v", err)
	}
}

func TestInvestmentValidate(t *testing.T) {
	valid := Investment{Principal: 1000, RateOfInterest: 8, CompoundingFrequency: CompoundQuarterly, Time: 5, Type: "mutual fund"}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid investment: %v", err)
	}
	if err := (Investment{Principal: 0, Type: "fd"}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero principal: err = %v", err)
	}
	bad := Investment{Principal: 100, CompoundingFrequency: CompoundingFrequency(9), Type: "fd"}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("bad frequency: err = %v", err)
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(&ValidationError{Field: "n", Reason: "bad"}) {
		t.Error("ValidationError not recognized")
	}
	if !IsValidation(ErrInvalidCategory) {
		t.Error("ErrInvalidCategory not recognized")
	}
	if IsValidation(ErrNotFound) {
		t.Error("ErrNotFound must not count as validation")
	}
}
