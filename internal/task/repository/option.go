package repository

import (
	"time"

	"voice-task-board/internal/model"
)

// CreateTaskOptions holds parameters for inserting a new Task.
type CreateTaskOptions struct {
	ID          string
	Title       string
	Description *string
	Status      model.Status
	Priority    model.Priority
	DueDate     *time.Time
	CreatedAt   time.Time
}

// GetOneTaskOptions holds filter parameters for fetching a single Task.
type GetOneTaskOptions struct {
	ID string
}

// ListTasksOptions holds filter and pagination parameters for listing Tasks.
type ListTasksOptions struct {
	Status    model.Status
	Priority  model.Priority
	Search    string
	OverdueAt *time.Time // due before this instant and not done
	DueFrom   *time.Time
	DueTo     *time.Time
	Limit     int
	Offset    int
	OrderBy   string
}

// UpdateTaskOptions holds the full new state of an existing Task.
type UpdateTaskOptions struct {
	ID          string
	Title       string
	Description *string
	Status      model.Status
	Priority    model.Priority
	DueDate     *time.Time
	UpdatedAt   time.Time
}
