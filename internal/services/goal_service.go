package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"finbuddy/internal/core"
)

// GoalStore is the slice of storage goal splitting reads.
type GoalStore interface {
	GetGoal(ctx context.Context, id int64) (*core.Goal, error)
	ListGoalMembers(ctx context.Context, goalID int64) ([]core.GoalMember, error)
	SumSalaryIncome(ctx context.Context, userID int64) (float64, error)
}

// GoalService resolves a goal's membership and computes each member's
// contribution according to the goal's mode.
type GoalService struct {
	storage GoalStore
}

func NewGoalService(storage GoalStore) *GoalService {
	return &GoalService{storage: storage}
}

// SplitGoal loads the goal and its members and computes the split.
// Salary-proportional goals fetch every member's salary concurrently;
// any fetch failure fails the whole split.
func (s *GoalService) SplitGoal(ctx context.Context, goalID int64) (core.GoalSplit, error) {
	goal, err := s.storage.GetGoal(ctx, goalID)
	if err != nil {
		return core.GoalSplit{}, err
	}
	members, err := s.storage.ListGoalMembers(ctx, goalID)
	if err != nil {
		return core.GoalSplit{}, fmt.Errorf("list goal members: %w", err)
	}

	switch goal.Mode {
	case core.GoalModeSalaryProportional:
		salaries, err := s.fetchMemberSalaries(ctx, members)
		if err != nil {
			return core.GoalSplit{}, err
		}
		return core.SplitBySalary(*goal, salaries)
	default:
		return core.SplitEqual(*goal, members)
	}
}

// fetchMemberSalaries sums salary income for every member in parallel,
// writing into a pre-sized slice so member order is preserved.
func (s *GoalService) fetchMemberSalaries(ctx context.Context, members []core.GoalMember) ([]core.MemberSalary, error) {
	if len(members) == 0 {
		return nil, nil
	}

	salaries := make([]core.MemberSalary, len(members))
	g, ctx := errgroup.WithContext(ctx)
	for i, m := range members {
		g.Go(func() error {
			salary, err := s.storage.SumSalaryIncome(ctx, m.UserID)
			if err != nil {
				return fmt.Errorf("sum salary for user %d: %w", m.UserID, err)
			}
			salaries[i] = core.MemberSalary{
				UserID: m.UserID,
				Name:   m.UserName,
				Salary: salary,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return salaries, nil
}
