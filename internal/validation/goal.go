package validation

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/templui/goaltrack/internal/model"
)

var (
	ErrInvalidProgress = errors.New("progress must be a whole number between 0 and 100")
	ErrInvalidDeadline = errors.New("deadline must be a date in YYYY-MM-DD format")
)

// ParseProgress parses a progress form value. Empty means 0.
func ParseProgress(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}

	progress, err := strconv.Atoi(value)
	if err != nil || progress < 0 || progress > 100 {
		return 0, ErrInvalidProgress
	}

	return progress, nil
}

// ParseDeadline parses a YYYY-MM-DD date. Empty means no deadline.
func ParseDeadline(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	deadline, err := time.Parse(model.DeadlineLayout, value)
	if err != nil {
		return nil, ErrInvalidDeadline
	}

	return &deadline, nil
}
