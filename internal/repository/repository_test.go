package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/goaltrack/internal/model"
	"github.com/templui/goaltrack/internal/testutil"
)

func newUser(username, email string) *model.User {
	now := time.Now()
	return &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newGoal(userID, title string, progress int) *model.Goal {
	now := time.Now()
	return &model.Goal{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Category:  model.DefaultCategory,
		Priority:  model.DefaultPriority,
		Status:    model.GoalStatusInProgress,
		Progress:  progress,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestUserRepository_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testutil.NewDB(t))

	user := newUser("alice", "a@x.com")
	require.NoError(t, repo.Create(ctx, user))

	byEmail, err := repo.ByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Nil(t, byEmail.Name)

	byName, err := repo.ByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	_, err = repo.ByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_UniqueIndexes(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testutil.NewDB(t))

	require.NoError(t, repo.Create(ctx, newUser("alice", "a@x.com")))

	err := repo.Create(ctx, newUser("alice2", "a@x.com"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	err = repo.Create(ctx, newUser("alice", "other@x.com"))
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestUserRepository_ExistsOther(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testutil.NewDB(t))

	alice := newUser("alice", "a@x.com")
	bob := newUser("bob", "b@x.com")
	require.NoError(t, repo.Create(ctx, alice))
	require.NoError(t, repo.Create(ctx, bob))

	exists, err := repo.ExistsOther(ctx, alice.ID, "alice", "a@x.com")
	require.NoError(t, err)
	assert.False(t, exists, "own username and email are not a conflict")

	exists, err = repo.ExistsOther(ctx, alice.ID, "", "b@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsOther(ctx, alice.ID, "bob", "")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsOther(ctx, alice.ID, "", "")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_UpdateProfilePartial(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testutil.NewDB(t))

	user := newUser("alice", "a@x.com")
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.UpdateProfile(ctx, user.ID, model.ProfileUpdate{Name: "Alice", Company: "Acme"}))

	got, err := repo.ByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "a@x.com", got.Email)
	require.NotNil(t, got.Name)
	assert.Equal(t, "Alice", *got.Name)
	require.NotNil(t, got.Company)
	assert.Equal(t, "Acme", *got.Company)
	assert.Nil(t, got.Bio)

	err = repo.UpdateProfile(ctx, "missing", model.ProfileUpdate{Name: "x"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGoalRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewDB(t)
	users := NewUserRepository(database)
	goals := NewGoalRepository(database)

	owner := newUser("alice", "a@x.com")
	other := newUser("bob", "b@x.com")
	require.NoError(t, users.Create(ctx, owner))
	require.NoError(t, users.Create(ctx, other))

	deadline := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	goal := newGoal(owner.ID, "Learn Go", 30)
	goal.Deadline = &deadline
	goal.Milestones = model.Milestones{"Tour", "Project"}
	require.NoError(t, goals.Create(ctx, goal))

	got, err := goals.ByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Learn Go", got.Title)
	assert.Equal(t, 30, got.Progress)
	assert.Equal(t, model.Milestones{"Tour", "Project"}, got.Milestones)
	require.NotNil(t, got.Deadline)
	assert.True(t, deadline.Equal(*got.Deadline))
	assert.True(t, got.CreatedAt.Equal(got.UpdatedAt))

	// Owner-scoped writes never touch another user's goal.
	assert.ErrorIs(t, goals.UpdateProgress(ctx, other.ID, goal.ID, 90), ErrGoalNotFound)
	assert.ErrorIs(t, goals.Delete(ctx, other.ID, goal.ID), ErrGoalNotFound)

	require.NoError(t, goals.UpdateProgress(ctx, owner.ID, goal.ID, 100))
	got, err = goals.ByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, model.GoalStatusInProgress, got.Status)

	got.Title = "Learn Go well"
	got.Milestones = nil
	got.UpdatedAt = time.Now()
	require.NoError(t, goals.Update(ctx, got))

	list, err := goals.Goals(ctx, owner.ID, GoalSortRecent)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Learn Go well", list[0].Title)
	assert.Nil(t, list[0].Milestones)

	require.NoError(t, goals.Delete(ctx, owner.ID, goal.ID))
	_, err = goals.ByID(ctx, goal.ID)
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestGoalRepository_Sorting(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewDB(t)
	users := NewUserRepository(database)
	goals := NewGoalRepository(database)

	owner := newUser("alice", "a@x.com")
	require.NoError(t, users.Create(ctx, owner))

	for _, g := range []*model.Goal{
		newGoal(owner.ID, "beta", 10),
		newGoal(owner.ID, "Alpha", 80),
		newGoal(owner.ID, "gamma", 50),
	} {
		require.NoError(t, goals.Create(ctx, g))
	}

	byTitle, err := goals.Goals(ctx, owner.ID, GoalSortTitle)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "beta", "gamma"}, titles(byTitle))

	byProgress, err := goals.Goals(ctx, owner.ID, GoalSortProgress)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "gamma", "beta"}, titles(byProgress))

	byCreated, err := goals.Goals(ctx, owner.ID, GoalSortCreated)
	require.NoError(t, err)
	assert.Equal(t, []string{"beta", "Alpha", "gamma"}, titles(byCreated))

	none, err := goals.Goals(ctx, "nobody", "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func titles(goals []*model.Goal) []string {
	out := make([]string, 0, len(goals))
	for _, g := range goals {
		out = append(out, g.Title)
	}
	return out
}
