package tracker

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for task dates.
const DateLayout = "2006-01-02"

// Task is one logged activity. Values are copied in and out of a User, so
// a Task held by the caller can never change the log.
type Task struct {
	Name     string
	Category string
	Stat     Stat
	Duration int // minutes
	Date     time.Time
	Outside  bool
}

// NewTask trims text fields, truncates the date to a calendar day and
// validates the result.
func NewTask(t Task) (Task, error) {
	t.Name = strings.TrimSpace(t.Name)
	t.Category = strings.TrimSpace(t.Category)
	if !t.Date.IsZero() {
		t.Date = DateOf(t.Date)
	}
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Validate checks the construction invariants of a task.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if t.Duration <= 0 {
		return &ValidationError{Field: "duration", Reason: fmt.Sprintf("must be positive, got %d", t.Duration)}
	}
	if t.Duration > MaxDuration {
		return &ValidationError{Field: "duration", Reason: fmt.Sprintf("must be at most %d minutes, got %d", MaxDuration, t.Duration)}
	}
	if !t.Stat.IsValid() {
		return &ValidationError{Field: "stat", Reason: fmt.Sprintf("unknown stat %q", t.Stat)}
	}
	if t.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "is required"}
	}
	return nil
}

// DateOf drops the time of day, returning midnight UTC of t's calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", s)}
	}
	return d, nil
}
