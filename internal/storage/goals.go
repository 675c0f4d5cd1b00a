package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"finbuddy/internal/core"
)

// CreateGoal inserts the goal and enrolls the creator as its first
// member in the same transaction.
func (r *SQLiteRepository) CreateGoal(ctx context.Context, g *core.Goal, creatorID int64) error {
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		ts := now()
		res, err := tx.ExecContext(ctx, `
			INSERT INTO goals (name, amount, mode, is_achieved, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			g.Name, g.Amount, int(g.Mode), g.IsAchieved, ts, ts)
		if err != nil {
			return fmt.Errorf("create goal: %w", err)
		}
		if g.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("goal id: %w", err)
		}
		g.CreatedAt = ts
		g.UpdatedAt = ts

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO goal_members (goal_id, user_id, created_at)
			VALUES (?, ?, ?)`, g.ID, creatorID, ts); err != nil {
			return fmt.Errorf("enroll goal creator: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "Goal created", "id", g.ID, "name", g.Name, "creator", creatorID)
	return nil
}

func (r *SQLiteRepository) GetGoal(ctx context.Context, id int64) (*core.Goal, error) {
	g := &core.Goal{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, amount, mode, is_achieved, created_at, updated_at
		FROM goals WHERE id = ?`, id).
		Scan(&g.ID, &g.Name, &g.Amount, &g.Mode, &g.IsAchieved, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get goal %d: %w", id, err)
	}
	return g, nil
}

// ListGoalsForUser returns every goal the user is a member of.
func (r *SQLiteRepository) ListGoalsForUser(ctx context.Context, userID int64) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT g.id, g.name, g.amount, g.mode, g.is_achieved, g.created_at, g.updated_at
		FROM goals g
		JOIN goal_members gm ON gm.goal_id = g.id
		WHERE gm.user_id = ?
		ORDER BY g.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals for user %d: %w", userID, err)
	}
	defer rows.Close()

	var out []core.Goal
	for rows.Next() {
		var g core.Goal
		if err := rows.Scan(&g.ID, &g.Name, &g.Amount, &g.Mode, &g.IsAchieved, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// ListGoalMembers returns the goal's membership in enrollment order,
// with each member's display name joined in.
func (r *SQLiteRepository) ListGoalMembers(ctx context.Context, goalID int64) ([]core.GoalMember, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT gm.goal_id, gm.user_id, u.username
		FROM goal_members gm
		JOIN users u ON u.id = gm.user_id
		WHERE gm.goal_id = ?
		ORDER BY gm.created_at, gm.user_id`, goalID)
	if err != nil {
		return nil, fmt.Errorf("list goal members %d: %w", goalID, err)
	}
	defer rows.Close()

	var out []core.GoalMember
	for rows.Next() {
		var m core.GoalMember
		if err := rows.Scan(&m.GoalID, &m.UserID, &m.UserName); err != nil {
			return nil, fmt.Errorf("scan goal member: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// UpdateGoal rewrites the goal row and, when memberIDs is non-nil,
// replaces the membership set wholesale.
func (r *SQLiteRepository) UpdateGoal(ctx context.Context, g *core.Goal, memberIDs []int64) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		ts := now()
		res, err := tx.ExecContext(ctx, `
			UPDATE goals SET name = ?, amount = ?, mode = ?, is_achieved = ?, updated_at = ?
			WHERE id = ?`,
			g.Name, g.Amount, int(g.Mode), g.IsAchieved, ts, g.ID)
		if err != nil {
			return fmt.Errorf("update goal %d: %w", g.ID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return core.ErrNotFound
		}
		g.UpdatedAt = ts

		if memberIDs == nil {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM goal_members WHERE goal_id = ?`, g.ID); err != nil {
			return fmt.Errorf("clear goal members: %w", err)
		}
		for _, uid := range memberIDs {
			if _, err := tx.ExecContext(ctx, `
				INSERT OR IGNORE INTO goal_members (goal_id, user_id, created_at)
				VALUES (?, ?, ?)`, g.ID, uid, ts); err != nil {
				return fmt.Errorf("enroll goal member %d: %w", uid, err)
			}
		}
		return nil
	})
}

// DeleteGoal removes the goal and its membership rows.
func (r *SQLiteRepository) DeleteGoal(ctx context.Context, id int64) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM goal_members WHERE goal_id = ?`, id); err != nil {
			return fmt.Errorf("delete goal members: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete goal %d: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return core.ErrNotFound
		}
		return nil
	})
}

// AddGoalMember enrolls the user into the goal. Joining a goal you are
// already in is a no-op thanks to the unique membership constraint.
func (r *SQLiteRepository) AddGoalMember(ctx context.Context, goalID, userID int64) error {
	if _, err := r.GetGoal(ctx, goalID); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO goal_members (goal_id, user_id, created_at)
		VALUES (?, ?, ?)`, goalID, userID, now()); err != nil {
		return fmt.Errorf("join goal %d: %w", goalID, err)
	}
	slog.InfoContext(ctx, "Goal joined", "goal_id", goalID, "user_id", userID)
	return nil
}
