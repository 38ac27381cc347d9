package repository

import (
	"context"

	"voice-task-board/internal/model"
)

// Repository is the composed interface for the task data store.
type Repository interface {
	TaskRepository
}

// TaskRepository defines all data access methods for the Task entity.
type TaskRepository interface {
	CreateTask(ctx context.Context, opt CreateTaskOptions) (model.Task, error)
	// GetOneTask returns a zero Task (ID == "") when nothing matches.
	GetOneTask(ctx context.Context, opt GetOneTaskOptions) (model.Task, error)
	ListTasks(ctx context.Context, opt ListTasksOptions) ([]model.Task, int, error)
	UpdateTask(ctx context.Context, opt UpdateTaskOptions) (model.Task, error)
	DeleteTask(ctx context.Context, id string) error
}
