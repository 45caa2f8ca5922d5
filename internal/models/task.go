package models

import (
	"fmt"
	"math"
	"time"
)

// TaskStatus defines the possible statuses for a task.
type TaskStatus string

const (
	StatusNew        TaskStatus = "new"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
	StatusCancelled  TaskStatus = "cancelled"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// DefaultDeadlineTime is used when a task has a deadline date but the user
// never touched the time-of-day field.
const DefaultDeadlineTime = "09:00"

// Task represents the structure of a task in the system.
// Deadline, DaysToDeadline and IsOverdue are derived from DeadlineDate,
// DeadlineTime and Status; they are recomputed by the service on every write
// that touches one of those fields.
type Task struct {
	ID            int64        `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Active        bool         `json:"active"`
	Status        TaskStatus   `json:"status"`
	Priority      TaskPriority `json:"priority"`
	AssigneeID    int64        `json:"assignee_id"`
	CreatorID     int64        `json:"creator_id"`
	CreatedAt     time.Time    `json:"created_at"`
	CompletedAt   *time.Time   `json:"completed_at,omitempty"`
	DurationHours float64      `json:"duration_hours"`

	// DeadlineDate holds only the calendar date; DeadlineTime is a free-text
	// "HH:MM" string the two of which combine into Deadline (UTC).
	DeadlineDate *time.Time `json:"deadline_date,omitempty"`
	DeadlineTime string     `json:"deadline_time"`

	Deadline       *time.Time `json:"deadline,omitempty"`
	DaysToDeadline int        `json:"days_to_deadline"`
	IsOverdue      bool       `json:"is_overdue"`

	TagIDs []int64 `json:"tag_ids,omitempty"`
}

// TaskFilter defines the available parameters for filtering tasks.
// Active defaults to true at the repository: archived tasks only show up when
// explicitly requested.
type TaskFilter struct {
	AssigneeID      *int64
	CreatorID       *int64
	Status          *TaskStatus
	Priority        *TaskPriority
	IncludeArchived bool
}

// TaskTag is a label attached to tasks, many-to-many.
type TaskTag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color int    `json:"color"`
}

const DefaultTagColor = 10

// CombineDeadline builds the absolute deadline from the date part and the
// "HH:MM" time-of-day string, interpreted in loc and converted to UTC.
// A malformed time string is an error; the caller decides on the fallback.
func CombineDeadline(date time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad deadline time %q: %w", hhmm, err)
	}
	local := time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc)
	return local.UTC(), nil
}

// MidnightUTC is the fallback deadline when the time-of-day or the timezone
// cannot be resolved.
func MidnightUTC(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysToDeadline returns the whole-day difference between deadline and now.
// Rounds toward minus infinity, so a deadline 12 hours in the past already
// counts as -1. Unset deadline counts as 0.
func DaysToDeadline(deadline *time.Time, now time.Time) int {
	if deadline == nil {
		return 0
	}
	return int(math.Floor(deadline.Sub(now).Hours() / 24))
}

// Overdue reports whether a task with the given deadline and status is past
// due: deadline set, in the past, and the task still open.
func Overdue(deadline *time.Time, status TaskStatus, now time.Time) bool {
	if deadline == nil {
		return false
	}
	if status == StatusDone || status == StatusCancelled {
		return false
	}
	return deadline.Before(now)
}
