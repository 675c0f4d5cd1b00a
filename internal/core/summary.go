package core

type (
	// IncomeBreakdown holds per-category income sums. Every category is
	// present even when zero.
	IncomeBreakdown struct {
		Salary     float64 `json:"salary"`
		SideHustle float64 `json:"sidehustle"`
		Business   float64 `json:"business"`
		Withdraw   float64 `json:"withdraw"`
	}

	IncomeSummary struct {
		Breakdown IncomeBreakdown `json:"breakdown"`
		Total     float64         `json:"total"`
	}

	ExpenseBreakdown struct {
		Daily   float64 `json:"daily"`
		Weekly  float64 `json:"weekly"`
		Monthly float64 `json:"monthly"`
	}

	ExpenseSummary struct {
		Breakdown    ExpenseBreakdown `json:"breakdown"`
		MonthlyTotal float64          `json:"monthly_total"`
	}

	// LoanDue is one unpaid loan's outstanding obligation, in storage
	// read order.
	LoanDue struct {
		Name       string  `json:"name"`
		EMI        float64 `json:"emi"`
		TenureLeft int     `json:"tenure_left"`
	}

	LoanSummary struct {
		SavingsAfterEMI float64   `json:"savings_after_emi"`
		TotalEMI        float64   `json:"total_emi"`
		Loans           []LoanDue `json:"loans"`
	}

	// Contribution is one member's share of a goal. Name, Salary and the
	// split's TotalSalaryPool are populated in salary-proportional mode
	// only; equal mode carries just user, amount and proportion.
	Contribution struct {
		UserID     int64   `json:"user_id"`
		Amount     float64 `json:"amount"`
		Proportion float64 `json:"proportion"`
		Name       string  `json:"name,omitempty"`
		Salary     float64 `json:"salary,omitempty"`
	}

	GoalSplit struct {
		GoalAmount        float64                `json:"goal_amount"`
		GoalName          string                 `json:"goal_name,omitempty"`
		TotalContributors int                    `json:"total_contributors"`
		TotalSalaryPool   float64                `json:"total_salary_pool,omitempty"`
		Contributions     map[int64]Contribution `json:"contributions"`
	}

	InvestmentGrowth struct {
		FinalAmount float64 `json:"final_amount"`
		Profit      float64 `json:"profit"`
	}

	// DashboardSummary is the combined per-user view served by the
	// dashboard endpoint.
	DashboardSummary struct {
		Income  IncomeSummary  `json:"income"`
		Expense ExpenseSummary `json:"expense"`
		Savings LoanSummary    `json:"savings"`
	}
)
