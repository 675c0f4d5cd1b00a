package core

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestAggregateIncomes(t *testing.T) {
	records := []Income{
		{Name: "job", Amount: 3000, Type: IncomeSalary},
		{Name: "bonus", Amount: 500, Type: IncomeSalary},
		{Name: "etsy", Amount: 250, Type: IncomeSideHustle},
		{Name: "shop", Amount: 1200, Type: IncomeBusiness},
		{Name: "stocks", Amount: 100, Type: IncomeWithdraw},
	}

	got := AggregateIncomes(records)

	if got.Breakdown.Salary != 3500 {
		t.Errorf("salary = %v, want 3500", got.Breakdown.Salary)
	}
	if got.Breakdown.SideHustle != 250 {
		t.Errorf("sidehustle = %v, want 250", got.Breakdown.SideHustle)
	}
	if got.Breakdown.Business != 1200 {
		t.Errorf("business = %v, want 1200", got.Breakdown.Business)
	}
	if got.Breakdown.Withdraw != 100 {
		t.Errorf("withdraw = %v, want 100", got.Breakdown.Withdraw)
	}
	if got.Total != 5050 {
		t.Errorf("total = %v, want 5050", got.Total)
	}
}

func TestAggregateIncomesTotalMatchesSum(t *testing.T) {
	// Total must equal the sum of all record amounts regardless of order.
	records := []Income{
		{Amount: 12.5, Type: IncomeWithdraw},
		{Amount: 7.25, Type: IncomeSalary},
		{Amount: 3.75, Type: IncomeBusiness},
		{Amount: 100, Type: IncomeSideHustle},
		{Amount: 0.5, Type: IncomeSalary},
	}
	want := 0.0
	for _, r := range records {
		want += r.Amount
	}

	forward := AggregateIncomes(records)
	reversed := make([]Income, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}
	backward := AggregateIncomes(reversed)

	if !almostEqual(forward.Total, want, 1e-9) {
		t.Errorf("forward total = %v, want %v", forward.Total, want)
	}
	if forward.Total != backward.Total {
		t.Errorf("order changed the total: %v vs %v", forward.Total, backward.Total)
	}
}

func TestAggregateIncomesEmpty(t *testing.T) {
	got := AggregateIncomes(nil)
	if got.Total != 0 {
		t.Errorf("total = %v, want 0", got.Total)
	}
	if got.Breakdown != (IncomeBreakdown{}) {
		t.Errorf("breakdown = %+v, want all zeros", got.Breakdown)
	}
}

func TestAggregateIncomesIgnoresUnknownCategory(t *testing.T) {
	records := []Income{
		{Amount: 100, Type: IncomeSalary},
		{Amount: 999, Type: IncomeType(42)},
	}
	got := AggregateIncomes(records)
	if got.Total != 100 {
		t.Errorf("total = %v, want 100 (unknown category must not count)", got.Total)
	}
}

func TestAggregateExpenses(t *testing.T) {
	records := []Expense{
		{Amount: 20, Type: ExpenseDaily},
		{Amount: 30, Type: ExpenseDaily},
		{Amount: 75, Type: ExpenseWeekly},
		{Amount: 900, Type: ExpenseMonthly},
	}

	got := AggregateExpenses(records)

	if got.Breakdown.Daily != 50 || got.Breakdown.Weekly != 75 || got.Breakdown.Monthly != 900 {
		t.Errorf("breakdown = %+v", got.Breakdown)
	}
	if got.MonthlyTotal != 1025 {
		t.Errorf("monthly_total = %v, want 1025", got.MonthlyTotal)
	}
}

func TestDeductLoans(t *testing.T) {
	unpaid := []Loan{
		{Name: "car", MonthlyEMI: 250, TenureLeft: 12},
		{Name: "house", MonthlyEMI: 1000, TenureLeft: 240},
	}

	got := DeductLoans(unpaid, 2000)

	if got.TotalEMI != 1250 {
		t.Errorf("total_emi = %v, want 1250", got.TotalEMI)
	}
	if got.SavingsAfterEMI != 750 {
		t.Errorf("savings_after_emi = %v, want 750", got.SavingsAfterEMI)
	}
	if len(got.Loans) != 2 {
		t.Fatalf("loans = %d entries, want 2", len(got.Loans))
	}
	// Breakdown preserves read order.
	if got.Loans[0].Name != "car" || got.Loans[1].Name != "house" {
		t.Errorf("loan order = %q, %q", got.Loans[0].Name, got.Loans[1].Name)
	}
	if got.Loans[1].TenureLeft != 240 {
		t.Errorf("tenure_left = %d, want 240", got.Loans[1].TenureLeft)
	}
}

func TestDeductLoansEmptySet(t *testing.T) {
	for _, baseline := range []float64{0, 1234.56, -400} {
		got := DeductLoans(nil, baseline)
		if got.TotalEMI != 0 {
			t.Errorf("baseline %v: total_emi = %v, want 0", baseline, got.TotalEMI)
		}
		if got.SavingsAfterEMI != baseline {
			t.Errorf("baseline %v: savings_after_emi = %v", baseline, got.SavingsAfterEMI)
		}
		if len(got.Loans) != 0 {
			t.Errorf("baseline %v: loans = %d entries, want 0", baseline, len(got.Loans))
		}
	}
}

func TestSplitEqual(t *testing.T) {
	goal := Goal{ID: 1, Name: "trip", Amount: 900, Mode: GoalModeEqual}
	members := []GoalMember{
		{GoalID: 1, UserID: 10},
		{GoalID: 1, UserID: 20},
		{GoalID: 1, UserID: 30},
	}

	got, err := SplitEqual(goal, members)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.TotalContributors != 3 {
		t.Errorf("total_contributors = %d, want 3", got.TotalContributors)
	}
	if got.GoalAmount != 900 {
		t.Errorf("goal_amount = %v, want 900", got.GoalAmount)
	}
	sum := 0.0
	for _, userID := range []int64{10, 20, 30} {
		c, ok := got.Contributions[userID]
		if !ok {
			t.Fatalf("missing contribution for user %d", userID)
		}
		if !almostEqual(c.Amount, 300, 1e-6) {
			t.Errorf("user %d amount = %v, want 300", userID, c.Amount)
		}
		if !almostEqual(c.Proportion, 1.0/3.0, 1e-9) {
			t.Errorf("user %d proportion = %v, want 1/3", userID, c.Proportion)
		}
		if c.Name != "" || c.Salary != 0 {
			t.Errorf("user %d: equal mode must not carry name/salary", userID)
		}
		sum += c.Amount
	}
	if !almostEqual(sum, goal.Amount, goal.Amount*1e-6) {
		t.Errorf("contribution sum = %v, want %v", sum, goal.Amount)
	}
}

func TestSplitEqualContributionsSumToGoal(t *testing.T) {
	// Sums must hold within relative tolerance for awkward member counts.
	for _, n := range []int{1, 2, 3, 7, 11} {
		goal := Goal{Amount: 1000, Mode: GoalModeEqual}
		members := make([]GoalMember, n)
		for i := range members {
			members[i] = GoalMember{UserID: int64(i + 1)}
		}
		got, err := SplitEqual(goal, members)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		sum := 0.0
		for _, c := range got.Contributions {
			sum += c.Amount
		}
		if !almostEqual(sum, goal.Amount, goal.Amount*1e-6) {
			t.Errorf("n=%d: sum = %v, want %v", n, sum, goal.Amount)
		}
	}
}

func TestSplitEqualNoMembers(t *testing.T) {
	_, err := SplitEqual(Goal{Amount: 100}, nil)
	if !errors.Is(err, ErrNoMembers) {
		t.Fatalf("err = %v, want ErrNoMembers", err)
	}
}

func TestSplitBySalary(t *testing.T) {
	goal := Goal{ID: 2, Name: "house fund", Amount: 900, Mode: GoalModeSalaryProportional}
	salaries := []MemberSalary{
		{UserID: 1, Name: "ada", Salary: 3000},
		{UserID: 2, Name: "bob", Salary: 2000},
		{UserID: 3, Name: "cal", Salary: 1000},
	}

	got, err := SplitBySalary(goal, salaries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.TotalContributors != 3 {
		t.Errorf("total_contributors = %d, want 3", got.TotalContributors)
	}
	if got.TotalSalaryPool != 6000 {
		t.Errorf("total_salary_pool = %v, want 6000", got.TotalSalaryPool)
	}
	if got.GoalName != "house fund" {
		t.Errorf("goal_name = %q", got.GoalName)
	}

	want := map[int64]struct {
		amount, proportion float64
	}{
		1: {450, 0.5},
		2: {300, 1.0 / 3.0},
		3: {150, 1.0 / 6.0},
	}
	sum := 0.0
	for userID, w := range want {
		c, ok := got.Contributions[userID]
		if !ok {
			t.Fatalf("missing contribution for user %d", userID)
		}
		if !almostEqual(c.Amount, w.amount, 1e-6) {
			t.Errorf("user %d amount = %v, want %v", userID, c.Amount, w.amount)
		}
		if !almostEqual(c.Proportion, w.proportion, 1e-9) {
			t.Errorf("user %d proportion = %v, want %v", userID, c.Proportion, w.proportion)
		}
		sum += c.Amount
	}
	if !almostEqual(sum, goal.Amount, goal.Amount*1e-6) {
		t.Errorf("contribution sum = %v, want %v", sum, goal.Amount)
	}
}

func TestSplitBySalaryExcludesZeroSalary(t *testing.T) {
	goal := Goal{Amount: 100, Mode: GoalModeSalaryProportional}
	salaries := []MemberSalary{
		{UserID: 1, Name: "earner", Salary: 2500},
		{UserID: 2, Name: "student", Salary: 0},
	}

	got, err := SplitBySalary(goal, salaries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.TotalContributors != 1 {
		t.Fatalf("total_contributors = %d, want 1", got.TotalContributors)
	}
	if _, ok := got.Contributions[2]; ok {
		t.Error("zero-salary member must be excluded, not zeroed")
	}
	c := got.Contributions[1]
	if !almostEqual(c.Amount, 100, 1e-9) || !almostEqual(c.Proportion, 1.0, 1e-9) {
		t.Errorf("sole earner got amount=%v proportion=%v, want 100 and 1.0", c.Amount, c.Proportion)
	}
}

func TestSplitBySalaryIdenticalSalaries(t *testing.T) {
	// No tie-break: identical salaries get identical proportions.
	goal := Goal{Amount: 500}
	got, err := SplitBySalary(goal, []MemberSalary{
		{UserID: 1, Salary: 1800},
		{UserID: 2, Salary: 1800},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, b := got.Contributions[1], got.Contributions[2]
	if a.Proportion != b.Proportion || a.Amount != b.Amount {
		t.Errorf("identical salaries split unevenly: %+v vs %+v", a, b)
	}
}

func TestSplitBySalaryErrors(t *testing.T) {
	goal := Goal{Amount: 100}

	if _, err := SplitBySalary(goal, nil); !errors.Is(err, ErrNoMembers) {
		t.Errorf("empty members: err = %v, want ErrNoMembers", err)
	}

	allZero := []MemberSalary{
		{UserID: 1, Salary: 0},
		{UserID: 2, Salary: -50},
	}
	if _, err := SplitBySalary(goal, allZero); !errors.Is(err, ErrNoSalaryData) {
		t.Errorf("all-zero salaries: err = %v, want ErrNoSalaryData", err)
	}
}

func TestGrowth(t *testing.T) {
	cases := []struct {
		name      string
		principal float64
		rate      float64
		periods   int
		years     float64
		final     float64
		profit    float64
	}{
		{"annual one year", 1000, 10, 1, 1, 1100, 100},
		{"annual two years", 1000, 10, 1, 2, 1210, 210},
		{"monthly compounding", 5000, 6, 12, 1, 5308.39, 308.39},
		{"zero rate", 750, 0, 4, 3, 750, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Growth(tc.principal, tc.rate, tc.periods, tc.years)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !almostEqual(got.FinalAmount, tc.final, 0.01) {
				t.Errorf("final_amount = %v, want %v", got.FinalAmount, tc.final)
			}
			if !almostEqual(got.Profit, tc.profit, 0.01) {
				t.Errorf("profit = %v, want %v", got.Profit, tc.profit)
			}
		})
	}
}

func TestGrowthRejectsNonPositivePeriods(t *testing.T) {
	for _, n := range []int{0, -1, -12} {
		_, err := Growth(1000, 10, n, 1)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("periods=%d: err = %v, want ValidationError", n, err)
		}
	}
}
