package pages

import (
	"html/template"
	"strconv"
	"time"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/templui/goaltrack/internal/markdown"
	"github.com/templui/goaltrack/internal/model"
	"github.com/templui/goaltrack/internal/stats"
)

var funcs = template.FuncMap{
	"markdown":      markdown.Render,
	"priorityLabel": stats.PriorityLabel,
	"priorityClass": priorityClass,
	"progressClass": progressClass,
	"navClass":      navClass,
	"flashClass":    flashClass,
	"deref":         deref,
	"date":          formatDate,
	"percent":       percent,
	"card":          card,
}

// goalCard carries the CSRF token into the goal partial.
type goalCard struct {
	Goal      *model.Goal
	CSRFToken string
}

func card(g *model.Goal, csrfToken string) goalCard {
	return goalCard{Goal: g, CSRFToken: csrfToken}
}

const badgeBase = "inline-block rounded px-2 py-1 text-xs font-medium bg-gray-100 text-gray-800"

func priorityClass(priority string) string {
	switch priority {
	case model.PriorityHigh:
		return twmerge.Merge(badgeBase, "bg-red-100 text-red-800")
	case model.PriorityLow:
		return twmerge.Merge(badgeBase, "bg-green-100 text-green-800")
	default:
		return twmerge.Merge(badgeBase, "bg-yellow-100 text-yellow-800")
	}
}

func progressClass(progress int) string {
	base := "h-2 rounded bg-blue-500"
	if progress >= 100 {
		return twmerge.Merge(base, "bg-green-500")
	}
	return base
}

func navClass(current, target string) string {
	base := "px-3 py-2 text-gray-600"
	if current == target {
		return twmerge.Merge(base, "font-medium text-gray-900")
	}
	return base
}

func flashClass(kind string) string {
	base := "rounded px-4 py-3 mb-4 bg-blue-100 text-blue-800"
	switch kind {
	case "success":
		return twmerge.Merge(base, "bg-green-100 text-green-800")
	case "error":
		return twmerge.Merge(base, "bg-red-100 text-red-800")
	}
	return base
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
