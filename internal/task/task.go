package task

import (
	"errors"
	"fmt"
	"time"
)

// Timestamp layouts used in the task file. Both are fixed-width and
// zero-padded so string comparison matches chronological order.
const (
	TimeLayout = "2006-01-02T15:04:05"
	DateLayout = "2006-01-02"
)

// Sentinel validation errors. Callers match them with errors.Is to print
// field-specific messages.
var (
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrInvalidDueDate   = errors.New("due date must be a valid YYYY-MM-DD date")
	ErrInvalidPriority  = errors.New("priority must be one of: high, medium, low")
)

// ValidationError reports a rejected field value. The record it was meant
// for is left untouched.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Priority represents a task priority.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is one of the three known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank returns the sort rank for a priority: high=1, medium=2, low=3.
// Unrecognized values rank with low so legacy records still sort.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

// ParsePriority validates an input priority on strict paths (update).
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.Valid() {
		return "", &ValidationError{Field: "priority", Err: ErrInvalidPriority}
	}
	return p, nil
}

// PriorityOrDefault coerces an input priority on the lenient add path:
// anything unrecognized (including "") falls back to medium.
func PriorityOrDefault(s string) Priority {
	if p := Priority(s); p.Valid() {
		return p
	}
	return PriorityMedium
}

// Status represents a task status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Task represents a single record in the task file.
type Task struct {
	ID          int      `json:"id"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Status      Status   `json:"status"`
	CreatedAt   string   `json:"created_at"`
	CompletedAt string   `json:"completed_at,omitempty"`
	Category    string   `json:"category"`
	DueDate     string   `json:"due_date"`
}

// IsZero returns true if the task is empty (has no ID).
func (t *Task) IsZero() bool {
	return t.ID == 0
}

// Completed reports whether the task has reached its terminal status.
func (t *Task) Completed() bool {
	return t.Status == StatusCompleted
}

// New builds a pending task from already-validated fields and stamps
// created_at. The caller assigns the ID.
func New(id int, description string, priority Priority, category, dueDate string) Task {
	return Task{
		ID:          id,
		Description: description,
		Priority:    priority,
		Status:      StatusPending,
		CreatedAt:   Now(),
		Category:    category,
		DueDate:     dueDate,
	}
}

// Now returns the current local time in the task file timestamp layout.
func Now() string {
	return time.Now().Format(TimeLayout)
}

// NormalizeDueDate validates a due date. Empty input means "no due date"
// and normalizes to the empty string. Non-empty input must be a real
// calendar date in zero-padded YYYY-MM-DD form; 2024-02-30 and 2024-2-3
// are both rejected. On success the canonical string is returned.
func NormalizeDueDate(input string) (string, error) {
	if input == "" {
		return "", nil
	}
	t, err := time.Parse(DateLayout, input)
	if err != nil {
		return "", &ValidationError{Field: "due_date", Err: ErrInvalidDueDate}
	}
	return t.Format(DateLayout), nil
}

// Backfill fills fields that older file revisions did not write, without
// touching fields that are present. Category and due date default to the
// empty string; completed_at stays unset. Records decoded from disk must
// pass through here so no task exists in memory with a missing field.
func Backfill(t *Task) {
	// encoding/json already leaves absent strings empty; the status and
	// priority defaults cover files hand-edited down to bare records.
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
}
