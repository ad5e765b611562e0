package progress

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidStatus is returned when a status value is not one of the
	// known statuses.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrEmptyLessonID is returned when a lesson id is empty.
	ErrEmptyLessonID = errors.New("empty lesson id")
)

// Status is a learner's progress on one lesson.
type Status string

const (
	NotStarted Status = "not_started"
	InProgress Status = "in_progress"
	Completed  Status = "completed"
)

// AllStatuses returns every status in lifecycle order.
func AllStatuses() []Status {
	return []Status{NotStarted, InProgress, Completed}
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case NotStarted, InProgress, Completed:
		return true
	}
	return false
}

// DisplayName returns a human-readable label for the status.
func (s Status) DisplayName() string {
	switch s {
	case NotStarted:
		return "Not started"
	case InProgress:
		return "In progress"
	case Completed:
		return "Completed"
	default:
		return string(s)
	}
}

// ParseStatus converts a string to a Status. It accepts the stored form
// ("in_progress") and the hyphenated form ("in-progress").
func ParseStatus(s string) (Status, error) {
	switch s {
	case "not_started", "not-started":
		return NotStarted, nil
	case "in_progress", "in-progress":
		return InProgress, nil
	case "completed":
		return Completed, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Record is the stored progress for one lesson. An absent record means the
// lesson is not started.
type Record struct {
	LessonID    string     `json:"lessonId"`
	Status      Status     `json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
