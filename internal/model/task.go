package model

import "time"

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

// Priorities lists every valid priority, lowest first.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Valid reports whether p is one of the four known priorities. Matching is exact.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Status is the Kanban column a task sits in.
type Status string

const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

// Statuses lists every valid status in board order.
var Statuses = []Status{StatusToDo, StatusInProgress, StatusDone}

// Valid reports whether s is one of the three board columns. Matching is exact.
func (s Status) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task is a persisted unit of work.
type Task struct {
	ID          string
	Title       string
	Description *string
	Status      Status
	Priority    Priority
	DueDate     *time.Time // UTC
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOverdue reports whether the task has a due date before now and is not done.
func (t Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != StatusDone
}
