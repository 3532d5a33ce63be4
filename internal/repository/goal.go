package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goaltrack/internal/model"
)

const (
	GoalSortRecent   = "recent"
	GoalSortProgress = "progress"
	GoalSortDeadline = "deadline"
	GoalSortTitle    = "title"
	GoalSortCreated  = "created"
)

// GoalSorts lists the orderings a user can pick on the dashboard.
var GoalSorts = []string{GoalSortRecent, GoalSortProgress, GoalSortDeadline, GoalSortTitle}

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) error
	ByID(ctx context.Context, goalID string) (*model.Goal, error)
	Goals(ctx context.Context, userID, sortBy string) ([]*model.Goal, error)
	Update(ctx context.Context, goal *model.Goal) error
	UpdateProgress(ctx context.Context, userID, goalID string, progress int) error
	Delete(ctx context.Context, userID, goalID string) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *model.Goal) error {
	query := `INSERT INTO goals (id, user_id, title, description, category, priority, status, progress, deadline, milestones, resources, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.Category,
		goal.Priority,
		goal.Status,
		goal.Progress,
		goal.Deadline,
		goal.Milestones,
		goal.Resources,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

// ByID loads a goal regardless of owner; callers authorize the result.
func (r *goalRepository) ByID(ctx context.Context, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1`

	err := r.db.GetContext(ctx, goal, query, goalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (r *goalRepository) Goals(ctx context.Context, userID, sortBy string) ([]*model.Goal, error) {
	var goals []*model.Goal

	// Validate and build ORDER BY clause
	var orderBy string
	switch sortBy {
	case GoalSortProgress:
		orderBy = "ORDER BY progress DESC, updated_at DESC"
	case GoalSortDeadline:
		orderBy = "ORDER BY deadline IS NULL, deadline ASC, updated_at DESC"
	case GoalSortTitle:
		orderBy = "ORDER BY LOWER(title) ASC"
	case GoalSortCreated:
		orderBy = "ORDER BY created_at ASC"
	default: // GoalSortRecent or empty
		orderBy = "ORDER BY updated_at DESC"
	}

	query := `SELECT * FROM goals WHERE user_id = $1 ` + orderBy

	err := r.db.SelectContext(ctx, &goals, query, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) Update(ctx context.Context, goal *model.Goal) error {
	query := `UPDATE goals
	          SET title = $1, description = $2, category = $3, priority = $4, progress = $5,
	              deadline = $6, milestones = $7, resources = $8, updated_at = $9
	          WHERE id = $10 AND user_id = $11`

	result, err := r.db.ExecContext(ctx, query,
		goal.Title,
		goal.Description,
		goal.Category,
		goal.Priority,
		goal.Progress,
		goal.Deadline,
		goal.Milestones,
		goal.Resources,
		goal.UpdatedAt,
		goal.ID,
		goal.UserID,
	)
	if err != nil {
		return err
	}

	return expectRow(result, ErrGoalNotFound)
}

// UpdateProgress sets only progress and updated_at, scoped to the owner.
func (r *goalRepository) UpdateProgress(ctx context.Context, userID, goalID string, progress int) error {
	query := `UPDATE goals SET progress = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`

	result, err := r.db.ExecContext(ctx, query, progress, time.Now(), goalID, userID)
	if err != nil {
		return err
	}

	return expectRow(result, ErrGoalNotFound)
}

func (r *goalRepository) Delete(ctx context.Context, userID, goalID string) error {
	query := `DELETE FROM goals WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, goalID, userID)
	if err != nil {
		return err
	}

	return expectRow(result, ErrGoalNotFound)
}
