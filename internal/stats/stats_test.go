package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/goaltrack/internal/model"
)

func goal(title string, progress int, category, priority string, created time.Time) *model.Goal {
	return &model.Goal{
		Title:     title,
		Progress:  progress,
		Category:  category,
		Priority:  priority,
		Status:    model.GoalStatusInProgress,
		CreatedAt: created,
	}
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil)

	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0.0, s.AvgProgress)
	assert.Empty(t, s.RecentGoals)
	assert.Empty(t, s.Categories)
	assert.Equal(t, []PriorityCount{{"High", 0}, {"Medium", 0}, {"Low", 0}}, s.Priorities)
}

func TestCompute_Buckets(t *testing.T) {
	now := time.Now()
	goals := []*model.Goal{
		goal("a", 0, "General", "medium", now),
		goal("b", 50, "General", "medium", now),
		goal("c", 100, "General", "medium", now),
	}

	s := Compute(goals)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.NotStarted)
	assert.Equal(t, 1, s.InProgress)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 50.0, s.AvgProgress)
}

func TestCompute_AverageRoundsToOneDecimal(t *testing.T) {
	now := time.Now()
	s := Compute([]*model.Goal{
		goal("a", 10, "", "", now),
		goal("b", 20, "", "", now),
		goal("c", 20, "", "", now),
	})
	assert.Equal(t, 16.7, s.AvgProgress)
}

func TestCompute_CategoriesInFirstSeenOrder(t *testing.T) {
	now := time.Now()
	s := Compute([]*model.Goal{
		goal("a", 0, "Health", "low", now),
		goal("b", 0, "Career", "low", now),
		goal("c", 0, "Health", "low", now),
		goal("d", 0, "", "low", now),
	})

	assert.Equal(t, []CategoryCount{
		{"Health", 2},
		{"Career", 1},
		{"General", 1},
	}, s.Categories)
}

func TestCompute_PrioritiesAreCaseInsensitive(t *testing.T) {
	now := time.Now()
	s := Compute([]*model.Goal{
		goal("a", 0, "", "medium", now),
		goal("b", 0, "", "High", now),
		goal("c", 0, "", "LOW", now),
		goal("d", 0, "", "urgent", now),
	})

	assert.Equal(t, []PriorityCount{{"High", 1}, {"Medium", 1}, {"Low", 1}}, s.Priorities)
}

func TestCompute_RecentGoals(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var goals []*model.Goal
	for i := 0; i < 7; i++ {
		goals = append(goals, goal(string(rune('a'+i)), 0, "", "", base.Add(time.Duration(i)*time.Hour)))
	}

	s := Compute(goals)

	require.Len(t, s.RecentGoals, RecentLimit)
	var got []string
	for _, g := range s.RecentGoals {
		got = append(got, g.Title)
	}
	assert.Equal(t, []string{"g", "f", "e", "d", "c"}, got)
	assert.Equal(t, "a", goals[0].Title, "input order is not modified")
}

func TestCompute_RecentGoalsTiesKeepInputOrder(t *testing.T) {
	now := time.Now()
	goals := []*model.Goal{goal("first", 0, "", "", now), goal("second", 0, "", "", now)}

	s := Compute(goals)

	require.Len(t, s.RecentGoals, 2)
	assert.Equal(t, "first", s.RecentGoals[0].Title)
	assert.Equal(t, "second", s.RecentGoals[1].Title)
}

func TestPriorityLabel(t *testing.T) {
	assert.Equal(t, "Medium", PriorityLabel("medium"))
	assert.Equal(t, "High", PriorityLabel(" HIGH "))
}

func TestGroupByStatus(t *testing.T) {
	goals := []*model.Goal{
		{Title: "a", Status: model.GoalStatusInProgress},
		{Title: "b", Status: model.GoalStatusCompleted},
		{Title: "c", Status: model.GoalStatusOverdue},
		{Title: "d", Status: model.GoalStatusInProgress},
	}

	g := GroupByStatus(goals)

	assert.Len(t, g.InProgress, 2)
	assert.Len(t, g.Completed, 1)
	assert.Len(t, g.Overdue, 1)
}
