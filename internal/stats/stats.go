// Package stats computes per-user goal summaries.
package stats

import (
	"math"
	"sort"
	"strings"

	"github.com/templui/goaltrack/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RecentLimit is the number of goals listed in Stats.RecentGoals.
const RecentLimit = 5

// PriorityKeys is the fixed order of the priority breakdown.
var PriorityKeys = []string{"High", "Medium", "Low"}

type CategoryCount struct {
	Category string
	Count    int
}

type PriorityCount struct {
	Priority string
	Count    int
}

type Stats struct {
	Total       int
	Completed   int
	InProgress  int
	NotStarted  int
	AvgProgress float64
	RecentGoals []*model.Goal
	// Categories are in first-seen order.
	Categories []CategoryCount
	Priorities []PriorityCount
}

var titleCaser = cases.Title(language.Und)

// PriorityLabel maps a stored priority to its breakdown key ("medium" -> "Medium").
func PriorityLabel(priority string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(priority)))
}

// Compute summarizes goals. Buckets are derived from progress, not status.
func Compute(goals []*model.Goal) Stats {
	s := Stats{
		Total:      len(goals),
		Priorities: make([]PriorityCount, len(PriorityKeys)),
	}
	for i, key := range PriorityKeys {
		s.Priorities[i] = PriorityCount{Priority: key}
	}

	categoryIndex := make(map[string]int)
	sum := 0
	for _, g := range goals {
		switch {
		case g.Progress == 100:
			s.Completed++
		case g.Progress > 0 && g.Progress < 100:
			s.InProgress++
		case g.Progress == 0:
			s.NotStarted++
		}
		sum += g.Progress

		category := g.Category
		if category == "" {
			category = model.DefaultCategory
		}
		if i, ok := categoryIndex[category]; ok {
			s.Categories[i].Count++
		} else {
			categoryIndex[category] = len(s.Categories)
			s.Categories = append(s.Categories, CategoryCount{Category: category, Count: 1})
		}

		label := PriorityLabel(g.Priority)
		for i := range s.Priorities {
			if s.Priorities[i].Priority == label {
				s.Priorities[i].Count++
				break
			}
		}
	}

	if len(goals) > 0 {
		avg := float64(sum) / float64(len(goals))
		s.AvgProgress = math.Round(avg*10) / 10
	}

	s.RecentGoals = recent(goals, RecentLimit)
	return s
}

func recent(goals []*model.Goal, limit int) []*model.Goal {
	sorted := make([]*model.Goal, len(goals))
	copy(sorted, goals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// StatusGroups buckets goals by their stored status, as the dashboard shows them.
type StatusGroups struct {
	Completed  []*model.Goal
	InProgress []*model.Goal
	Overdue    []*model.Goal
}

func GroupByStatus(goals []*model.Goal) StatusGroups {
	var g StatusGroups
	for _, goal := range goals {
		switch goal.Status {
		case model.GoalStatusCompleted:
			g.Completed = append(g.Completed, goal)
		case model.GoalStatusInProgress:
			g.InProgress = append(g.InProgress, goal)
		case model.GoalStatusOverdue:
			g.Overdue = append(g.Overdue, goal)
		}
	}
	return g
}
