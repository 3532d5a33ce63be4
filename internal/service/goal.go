package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/goaltrack/internal/apperror"
	"github.com/templui/goaltrack/internal/model"
	"github.com/templui/goaltrack/internal/repository"
	"github.com/templui/goaltrack/internal/stats"
	"github.com/templui/goaltrack/internal/validation"
)

const (
	MsgGoalRequired       = "Title and description are required!"
	MsgGoalCreated        = "Goal created successfully!"
	MsgGoalNotFound       = "Goal not found!"
	MsgGoalUpdated        = "Goal updated successfully!"
	MsgGoalDeleted        = "Goal deleted successfully!"
	MsgProgressUpdated    = "Progress updated successfully!"
	MsgInvalidProgress    = "Progress must be a whole number between 0 and 100!"
	MsgInvalidDeadline    = "Deadline must be a valid date (YYYY-MM-DD)!"
	MsgInvalidPriority    = "Priority must be High, Medium or Low!"
	MsgExportNotAvailable = "Data export functionality is not yet implemented."
	MsgDeleteNotAvailable = "Account deletion functionality is not yet implemented."
)

// GoalForm is the raw goal form as submitted.
type GoalForm struct {
	Title       string
	Description string
	Category    string
	Priority    string
	Progress    string
	Deadline    string
	Milestones  string
	Resources   string
}

type GoalService struct {
	repo repository.GoalRepository
}

func NewGoalService(repo repository.GoalRepository) *GoalService {
	return &GoalService{repo: repo}
}

// ParseGoalForm validates the form and applies defaults.
func ParseGoalForm(form GoalForm) (model.GoalInput, error) {
	in := model.GoalInput{
		Title:       strings.TrimSpace(form.Title),
		Description: strings.TrimSpace(form.Description),
		Category:    strings.TrimSpace(form.Category),
		Milestones:  model.ParseMilestones(form.Milestones),
		Resources:   strings.TrimSpace(form.Resources),
	}

	if in.Title == "" || in.Description == "" {
		return in, apperror.NewValidation(MsgGoalRequired)
	}
	if in.Category == "" {
		in.Category = model.DefaultCategory
	}

	priority, err := model.NormalizePriority(form.Priority)
	if err != nil {
		return in, apperror.NewValidation(MsgInvalidPriority)
	}
	in.Priority = priority

	progress, err := validation.ParseProgress(form.Progress)
	if err != nil {
		return in, apperror.NewValidation(MsgInvalidProgress)
	}
	in.Progress = progress

	deadline, err := validation.ParseDeadline(form.Deadline)
	if err != nil {
		return in, apperror.NewValidation(MsgInvalidDeadline)
	}
	in.Deadline = deadline

	return in, nil
}

func (s *GoalService) Create(ctx context.Context, userID string, form GoalForm) (*model.Goal, error) {
	in, err := ParseGoalForm(form)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	goal := &model.Goal{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		Status:      model.GoalStatusInProgress,
		Progress:    in.Progress,
		Deadline:    in.Deadline,
		Milestones:  in.Milestones,
		Resources:   in.Resources,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.repo.Create(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}

	slog.Info("goal created", "user_id", userID, "goal_id", goal.ID)
	return goal, nil
}

// ByID loads a goal and checks that userID owns it.
func (s *GoalService) ByID(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	goal, err := s.repo.ByID(ctx, goalID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		return nil, apperror.NewNotFound(MsgGoalNotFound, err)
	}
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}

	err = authorize(userID, goal)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// authorize returns a Forbidden error when the goal belongs to another user.
func authorize(userID string, goal *model.Goal) error {
	if goal.UserID != userID {
		return apperror.NewForbidden(MsgGoalNotFound)
	}
	return nil
}

func (s *GoalService) Goals(ctx context.Context, userID, sortBy string) ([]*model.Goal, error) {
	return s.repo.Goals(ctx, userID, sortBy)
}

// Update overwrites the editable fields. The deadline is kept when none is
// submitted and the status is never changed.
func (s *GoalService) Update(ctx context.Context, userID, goalID string, form GoalForm) (*model.Goal, error) {
	goal, err := s.ByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	in, err := ParseGoalForm(form)
	if err != nil {
		return goal, err
	}

	goal.Title = in.Title
	goal.Description = in.Description
	goal.Category = in.Category
	goal.Priority = in.Priority
	goal.Progress = in.Progress
	goal.Milestones = in.Milestones
	goal.Resources = in.Resources
	if in.Deadline != nil {
		goal.Deadline = in.Deadline
	}
	goal.UpdatedAt = time.Now()

	err = s.repo.Update(ctx, goal)
	if errors.Is(err, repository.ErrGoalNotFound) {
		return nil, apperror.NewNotFound(MsgGoalNotFound, err)
	}
	if err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}

	slog.Info("goal updated", "user_id", userID, "goal_id", goalID)
	return goal, nil
}

func (s *GoalService) UpdateProgress(ctx context.Context, userID, goalID, progressValue string) error {
	_, err := s.ByID(ctx, userID, goalID)
	if err != nil {
		return err
	}

	progress, err := validation.ParseProgress(progressValue)
	if err != nil || strings.TrimSpace(progressValue) == "" {
		return apperror.NewValidation(MsgInvalidProgress)
	}

	err = s.repo.UpdateProgress(ctx, userID, goalID, progress)
	if errors.Is(err, repository.ErrGoalNotFound) {
		return apperror.NewNotFound(MsgGoalNotFound, err)
	}
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}

	return nil
}

func (s *GoalService) Delete(ctx context.Context, userID, goalID string) error {
	_, err := s.ByID(ctx, userID, goalID)
	if err != nil {
		return err
	}

	err = s.repo.Delete(ctx, userID, goalID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		return apperror.NewNotFound(MsgGoalNotFound, err)
	}
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}

	slog.Info("goal deleted", "user_id", userID, "goal_id", goalID)
	return nil
}

// Stats summarizes all goals of userID. Goals are read in creation order so
// the category breakdown does not shift when a goal is edited.
func (s *GoalService) Stats(ctx context.Context, userID string) (stats.Stats, error) {
	goals, err := s.repo.Goals(ctx, userID, repository.GoalSortCreated)
	if err != nil {
		return stats.Stats{}, fmt.Errorf("list goals: %w", err)
	}
	return stats.Compute(goals), nil
}
