package models

import (
	"errors"
	"strings"
	"time"
)

// Category is the fixed classification label for a task.
type Category string

const (
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryShopping Category = "Shopping"
	CategoryHealth   Category = "Health"
	CategoryOther    Category = "Other"
)

// Categories lists every valid category in classifier iteration order.
// CategoryOther is last and acts as the catch-all.
var Categories = []Category{
	CategoryWork,
	CategoryPersonal,
	CategoryShopping,
	CategoryHealth,
	CategoryOther,
}

// Priority is the three-level urgency label for a task.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities lists every valid priority from most to least urgent.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// ErrEmptyTitle is returned when a task is created with a blank title.
var ErrEmptyTitle = errors.New("task title must not be empty")

// Task is a user-created to-do item. Deadline is nil when no deadline is
// set; Suggestion and Steps stay empty until AI enrichment completes.
type Task struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Completed  bool       `json:"completed"`
	Category   Category   `json:"category"`
	Priority   Priority   `json:"priority"`
	Deadline   *time.Time `json:"deadline,omitempty"`
	Suggestion string     `json:"ai_suggestion,omitempty"`
	Steps      []string   `json:"ai_steps,omitempty"`
	Created    time.Time  `json:"created"`
}

// TaskPatch carries a partial update. Nil fields are left untouched, so
// concurrent enrichment patches merge instead of overwriting each other.
type TaskPatch struct {
	Title     *string
	Completed *bool
	Category  *Category
	Priority  *Priority
	Deadline  *time.Time
	// ClearDeadline removes the deadline; it wins over Deadline.
	ClearDeadline bool
	Suggestion    *string
	Steps         []string
}

// NormalizeCategory clamps arbitrary text to the closed category set.
// Matching is case-insensitive; anything unrecognized (including the
// remote model's "General") maps to CategoryOther.
func NormalizeCategory(s string) Category {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c
		}
	}
	return CategoryOther
}

// NormalizePriority clamps arbitrary text to the closed priority set,
// defaulting to PriorityMedium for anything unrecognized.
func NormalizePriority(s string) Priority {
	s = strings.TrimSpace(s)
	for _, p := range Priorities {
		if strings.EqualFold(s, string(p)) {
			return p
		}
	}
	return PriorityMedium
}

// PriorityRank orders priorities for sorting: High sorts first.
func PriorityRank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}
