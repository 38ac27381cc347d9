package usecase

import (
	"context"

	"voice-task-board/internal/task"
	repo "voice-task-board/internal/task/repository"
)

// List returns a filtered, paginated list of tasks, newest first.
func (uc *implUseCase) List(ctx context.Context, input task.ListInput) (task.ListOutput, error) {
	f := input.Filter
	if f.Status != "" && !f.Status.Valid() {
		return task.ListOutput{}, task.ErrInvalidStatus
	}
	if f.Priority != "" && !f.Priority.Valid() {
		return task.ListOutput{}, task.ErrInvalidPriority
	}
	if f.DueFrom != nil && f.DueTo != nil && f.DueTo.Before(*f.DueFrom) {
		return task.ListOutput{}, task.ErrInvalidRange
	}

	opt := repo.ListTasksOptions{
		Status:   f.Status,
		Priority: f.Priority,
		Search:   f.Search,
		DueFrom:  f.DueFrom,
		DueTo:    f.DueTo,
		Limit:    input.Limit,
		Offset:   input.Offset,
	}
	if f.Overdue {
		now := uc.now()
		opt.OverdueAt = &now
	}

	tasks, total, err := uc.repo.ListTasks(ctx, opt)
	if err != nil {
		uc.l.Errorf(ctx, "internal.task.usecase.List: %v", err)
		return task.ListOutput{}, err
	}

	return task.ListOutput{
		Tasks:  tasks,
		Total:  total,
		Limit:  input.Limit,
		Offset: input.Offset,
	}, nil
}
