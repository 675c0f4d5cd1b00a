package http

import (
	"context"
	"sync"
	"time"

	"finbuddy/internal/core"
)

// fakeStore is an in-memory Store used by handler tests.
type fakeStore struct {
	mu sync.Mutex

	nextID      int64
	users       map[int64]*core.User
	profiles    map[int64]*core.Profile
	incomes     map[int64]*core.Income
	expenses    map[int64]*core.Expense
	loans       map[int64]*core.Loan
	investments map[int64]*core.Investment
	goals       map[int64]*core.Goal
	members     map[int64][]core.GoalMember
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[int64]*core.User),
		profiles:    make(map[int64]*core.Profile),
		incomes:     make(map[int64]*core.Income),
		expenses:    make(map[int64]*core.Expense),
		loans:       make(map[int64]*core.Loan),
		investments: make(map[int64]*core.Investment),
		goals:       make(map[int64]*core.Goal),
		members:     make(map[int64][]core.GoalMember),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) CreateUser(_ context.Context, u *core.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u.ID = f.id()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	copied := *u
	f.users[u.ID] = &copied
	return nil
}

func (f *fakeStore) FindUserByEmail(_ context.Context, email string) (*core.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeStore) GetUser(_ context.Context, id int64) (*core.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeStore) Onboard(_ context.Context, userID int64, profile *core.Profile, incomes []core.Income, expenses []core.Expense, loans []core.Loan, investments []core.Investment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return core.ErrNotFound
	}
	profile.ID = f.id()
	profile.UserID = userID
	f.profiles[userID] = profile
	for i := range incomes {
		incomes[i].ID = f.id()
		copied := incomes[i]
		f.incomes[copied.ID] = &copied
	}
	for i := range expenses {
		expenses[i].ID = f.id()
		copied := expenses[i]
		f.expenses[copied.ID] = &copied
	}
	for i := range loans {
		loans[i].ID = f.id()
		copied := loans[i]
		f.loans[copied.ID] = &copied
	}
	for i := range investments {
		investments[i].ID = f.id()
		copied := investments[i]
		f.investments[copied.ID] = &copied
	}
	u.IsOnboard = true
	return nil
}

func (f *fakeStore) CreateIncome(_ context.Context, in *core.Income) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	in.ID = f.id()
	copied := *in
	f.incomes[in.ID] = &copied
	return nil
}

func (f *fakeStore) GetIncome(_ context.Context, id int64) (*core.Income, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if in, ok := f.incomes[id]; ok {
		copied := *in
		return &copied, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeStore) ListIncomes(_ context.Context, userID int64) ([]core.Income, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Income
	for id := int64(1); id <= f.nextID; id++ {
		if in, ok := f.incomes[id]; ok && in.UserID == userID {
			out = append(out, *in)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateIncome(_ context.Context, in *core.Income) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.incomes[in.ID]; !ok {
		return core.ErrNotFound
	}
	copied := *in
	f.incomes[in.ID] = &copied
	return nil
}

func (f *fakeStore) DeleteIncome(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.incomes[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.incomes, id)
	return nil
}

func (f *fakeStore) SumSalaryIncome(_ context.Context, userID int64) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0.0
	for _, in := range f.incomes {
		if in.UserID == userID && in.Type == core.IncomeSalary {
			total += in.Amount
		}
	}
	return total, nil
}

func (f *fakeStore) CreateExpense(_ context.Context, ex *core.Expense) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ex.ID = f.id()
	copied := *ex
	f.expenses[ex.ID] = &copied
	return nil
}

func (f *fakeStore) GetExpense(_ context.Context, id int64) (*core.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ex, ok := f.expenses[id]; ok {
		copied := *ex
		return &copied, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeStore) ListExpenses(_ context.Context, userID int64) ([]core.Expense, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Expense
	for id := int64(1); id <= f.nextID; id++ {
		if ex, ok := f.expenses[id]; ok && ex.UserID == userID {
			out = append(out, *ex)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateExpense(_ context.Context, ex *core.Expense) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.expenses[ex.ID]; !ok {
		return core.ErrNotFound
	}
	copied := *ex
	f.expenses[ex.ID] = &copied
	return nil
}

func (f *fakeStore) DeleteExpense(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.expenses[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.expenses, id)
	return nil
}

func (f *fakeStore) CreateLoan(_ context.Context, l *core.Loan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	l.ID = f.id()
	copied := *l
	f.loans[l.ID] = &copied
	return nil
}

func (f *fakeStore) GetLoan(_ context.Context, id int64) (*core.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if l, ok := f.loans[id]; ok {
		copied := *l
		return &copied, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeStore) ListLoans(_ context.Context, userID int64) ([]core.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Loan
	for id := int64(1); id <= f.nextID; id++ {
		if l, ok := f.loans[id]; ok && l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeStore) ListUnpaidLoans(_ context.Context, userID int64) ([]core.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Loan
	for id := int64(1); id <= f.nextID; id++ {
		if l, ok := f.loans[id]; ok && l.UserID == userID && !l.IsPaid {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateLoan(_ context.Context, l *core.Loan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.loans[l.ID]; !ok {
		return core.ErrNotFound
	}
	copied := *l
	f.loans[l.ID] = &copied
	return nil
}

func (f *fakeStore) DeleteLoan(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.loans[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.loans, id)
	return nil
}

func (f *fakeStore) CreateInvestment(_ context.Context, v *core.Investment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v.ID = f.id()
	copied := *v
	f.investments[v.ID] = &copied
	return nil
}

func (f *fakeStore) GetInvestment(_ context.Context, id int64) (*core.Investment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.investments[id]; ok {
		copied := *v
		return &copied, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeStore) ListInvestments(_ context.Context, userID int64) ([]core.Investment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Investment
	for id := int64(1); id <= f.nextID; id++ {
		if v, ok := f.investments[id]; ok && v.UserID == userID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateInvestment(_ context.Context, v *core.Investment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.investments[v.ID]; !ok {
		return core.ErrNotFound
	}
	copied := *v
	f.investments[v.ID] = &copied
	return nil
}

func (f *fakeStore) DeleteInvestment(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.investments[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.investments, id)
	return nil
}

func (f *fakeStore) CreateGoal(_ context.Context, g *core.Goal, creatorID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g.ID = f.id()
	copied := *g
	f.goals[g.ID] = &copied
	f.members[g.ID] = []core.GoalMember{{GoalID: g.ID, UserID: creatorID}}
	return nil
}

func (f *fakeStore) GetGoal(_ context.Context, id int64) (*core.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if g, ok := f.goals[id]; ok {
		copied := *g
		return &copied, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeStore) ListGoalsForUser(_ context.Context, userID int64) ([]core.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.Goal
	for id := int64(1); id <= f.nextID; id++ {
		g, ok := f.goals[id]
		if !ok {
			continue
		}
		for _, m := range f.members[id] {
			if m.UserID == userID {
				out = append(out, *g)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStore) ListGoalMembers(_ context.Context, goalID int64) ([]core.GoalMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]core.GoalMember, len(f.members[goalID]))
	copy(out, f.members[goalID])
	for i := range out {
		if u, ok := f.users[out[i].UserID]; ok {
			out[i].UserName = u.Username
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateGoal(_ context.Context, g *core.Goal, memberIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.goals[g.ID]; !ok {
		return core.ErrNotFound
	}
	copied := *g
	f.goals[g.ID] = &copied
	if memberIDs != nil {
		members := make([]core.GoalMember, 0, len(memberIDs))
		for _, uid := range memberIDs {
			members = append(members, core.GoalMember{GoalID: g.ID, UserID: uid})
		}
		f.members[g.ID] = members
	}
	return nil
}

func (f *fakeStore) DeleteGoal(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.goals[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.goals, id)
	delete(f.members, id)
	return nil
}

func (f *fakeStore) AddGoalMember(_ context.Context, goalID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.goals[goalID]; !ok {
		return core.ErrNotFound
	}
	for _, m := range f.members[goalID] {
		if m.UserID == userID {
			return nil
		}
	}
	f.members[goalID] = append(f.members[goalID], core.GoalMember{GoalID: goalID, UserID: userID})
	return nil
}
