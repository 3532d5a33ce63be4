package model

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const (
	GoalStatusInProgress = "in_progress"
	GoalStatusCompleted  = "completed"
	GoalStatusOverdue    = "overdue"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

const (
	DefaultCategory = "General"
	DefaultPriority = PriorityMedium
	DeadlineLayout  = "2006-01-02"
)

// Priorities lists the accepted priorities from highest to lowest.
var Priorities = []string{PriorityHigh, PriorityMedium, PriorityLow}

var ErrInvalidPriority = errors.New("priority must be one of high, medium, low")

type Goal struct {
	ID          string     `db:"id"`
	UserID      string     `db:"user_id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Category    string     `db:"category"`
	Priority    string     `db:"priority"`
	Status      string     `db:"status"`
	Progress    int        `db:"progress"`
	Deadline    *time.Time `db:"deadline"`
	Milestones  Milestones `db:"milestones"`
	Resources   string     `db:"resources"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func (g *Goal) DeadlineString() string {
	if g.Deadline == nil {
		return ""
	}
	return g.Deadline.Format(DeadlineLayout)
}

// GoalInput is the editable part of a goal, already parsed and defaulted.
type GoalInput struct {
	Title       string
	Description string
	Category    string
	Priority    string
	Progress    int
	Deadline    *time.Time
	Milestones  Milestones
	Resources   string
}

// NormalizePriority lower-cases and validates a priority. Empty means the default.
func NormalizePriority(p string) (string, error) {
	p = strings.ToLower(strings.TrimSpace(p))
	if p == "" {
		return DefaultPriority, nil
	}
	for _, known := range Priorities {
		if p == known {
			return p, nil
		}
	}
	return "", ErrInvalidPriority
}

// Milestones is stored as a JSON array in a text column.
type Milestones []string

// ParseMilestones splits newline separated text into milestones, dropping blank lines.
func ParseMilestones(text string) Milestones {
	var out Milestones
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Text joins milestones back into the textarea form.
func (m Milestones) Text() string {
	return strings.Join(m, "\n")
}

func (m Milestones) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *Milestones) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*m = nil
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("milestones: unsupported type %T", src)
	}

	var list []string
	err := json.Unmarshal(data, &list)
	if err != nil {
		return fmt.Errorf("milestones: %w", err)
	}
	if len(list) == 0 {
		list = nil
	}
	*m = list
	return nil
}
