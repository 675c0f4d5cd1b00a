package core

import "math"

// AggregateIncomes sums income amounts per category. Records carrying a
// category code outside the known enumeration contribute nothing; they
// are ignored rather than rejected, since strict validation already
// happens at the write boundary and summaries must never fail over
// legacy rows.
func AggregateIncomes(records []Income) IncomeSummary {
	var b IncomeBreakdown
	for _, r := range records {
		switch r.Type {
		case IncomeSalary:
			b.Salary += r.Amount
		case IncomeSideHustle:
			b.SideHustle += r.Amount
		case IncomeBusiness:
			b.Business += r.Amount
		case IncomeWithdraw:
			b.Withdraw += r.Amount
		}
	}
	return IncomeSummary{
		Breakdown: b,
		Total:     b.Salary + b.SideHustle + b.Business + b.Withdraw,
	}
}

// AggregateExpenses sums expense amounts per category, with the same
// ignore-unknown policy as AggregateIncomes.
func AggregateExpenses(records []Expense) ExpenseSummary {
	var b ExpenseBreakdown
	for _, r := range records {
		switch r.Type {
		case ExpenseDaily:
			b.Daily += r.Amount
		case ExpenseWeekly:
			b.Weekly += r.Amount
		case ExpenseMonthly:
			b.Monthly += r.Amount
		}
	}
	return ExpenseSummary{
		Breakdown:    b,
		MonthlyTotal: b.Daily + b.Weekly + b.Monthly,
	}
}

// DeductLoans nets outstanding EMI obligations against a baseline savings
// figure. The caller decides what the baseline means: the loans endpoint
// passes 0 for a pure EMI view, TotalSavings passes income minus expenses.
// An empty unpaid set yields TotalEMI 0 and the baseline unchanged.
func DeductLoans(unpaid []Loan, baseline float64) LoanSummary {
	totalEMI := 0.0
	breakdown := make([]LoanDue, 0, len(unpaid))
	for _, l := range unpaid {
		totalEMI += l.MonthlyEMI
		breakdown = append(breakdown, LoanDue{
			Name:       l.Name,
			EMI:        l.MonthlyEMI,
			TenureLeft: l.TenureLeft,
		})
	}
	return LoanSummary{
		SavingsAfterEMI: baseline - totalEMI,
		TotalEMI:        totalEMI,
		Loans:           breakdown,
	}
}

// SplitEqual divides a goal's amount evenly across its members. Every
// member gets amount/n and proportion 1/n, keyed by user ID in member
// load order. Callers must not rely on any ordering beyond one entry per
// member.
func SplitEqual(goal Goal, members []GoalMember) (GoalSplit, error) {
	if len(members) == 0 {
		return GoalSplit{}, ErrNoMembers
	}

	n := len(members)
	portion := goal.Amount / float64(n)
	contributions := make(map[int64]Contribution, n)
	for _, m := range members {
		contributions[m.UserID] = Contribution{
			UserID:     m.UserID,
			Amount:     portion,
			Proportion: 1 / float64(n),
		}
	}

	return GoalSplit{
		GoalAmount:        goal.Amount,
		TotalContributors: n,
		Contributions:     contributions,
	}, nil
}

// MemberSalary is one goal member's summed salary-category income,
// fetched by the caller before splitting.
type MemberSalary struct {
	UserID int64
	Name   string
	Salary float64
}

// SplitBySalary divides a goal's amount proportionally to each member's
// salary. Members with salary <= 0 are excluded entirely: only
// salary-earning members fund a salary-proportional goal. The included
// proportions partition the pool exactly, so contribution amounts sum to
// the goal amount within floating-point tolerance.
func SplitBySalary(goal Goal, salaries []MemberSalary) (GoalSplit, error) {
	if len(salaries) == 0 {
		return GoalSplit{}, ErrNoMembers
	}

	pool := 0.0
	included := make([]MemberSalary, 0, len(salaries))
	for _, s := range salaries {
		if s.Salary > 0 {
			included = append(included, s)
			pool += s.Salary
		}
	}
	if len(included) == 0 {
		return GoalSplit{}, ErrNoSalaryData
	}

	contributions := make(map[int64]Contribution, len(included))
	for _, s := range included {
		proportion := s.Salary / pool
		contributions[s.UserID] = Contribution{
			UserID:     s.UserID,
			Name:       s.Name,
			Salary:     s.Salary,
			Amount:     goal.Amount * proportion,
			Proportion: proportion,
		}
	}

	return GoalSplit{
		GoalAmount:        goal.Amount,
		GoalName:          goal.Name,
		TotalContributors: len(included),
		TotalSalaryPool:   pool,
		Contributions:     contributions,
	}, nil
}

// Growth computes compound-interest final value and profit:
// final = P * (1 + (r/100)/n)^(n*t). The rate is an annual percentage,
// n the number of compounding periods per year, t the duration in years.
func Growth(principal, rate float64, periodsPerYear int, years float64) (InvestmentGrowth, error) {
	if periodsPerYear <= 0 {
		return InvestmentGrowth{}, &ValidationError{
			Field:  "compounding_frequency",
			Reason: "periods per year must be positive",
		}
	}

	n := float64(periodsPerYear)
	final := principal * math.Pow(1+(rate/100)/n, n*years)
	return InvestmentGrowth{
		FinalAmount: final,
		Profit:      final - principal,
	}, nil
}
