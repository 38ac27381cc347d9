package task

import (
	"context"

	"voice-task-board/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	Create(ctx context.Context, input CreateInput) (CreateOutput, error)
	List(ctx context.Context, input ListInput) (ListOutput, error)
	Detail(ctx context.Context, id string) (model.Task, error)
	Update(ctx context.Context, input UpdateInput) (model.Task, error)
	// UpdateStatus moves a task between Kanban columns. Any column may move to any other.
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (model.Task, error)
	Delete(ctx context.Context, id string) error
}
