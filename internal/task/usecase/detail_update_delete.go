package usecase

import (
	"context"
	"strings"

	"voice-task-board/internal/model"
	"voice-task-board/internal/task"
	repo "voice-task-board/internal/task/repository"
)

// Detail retrieves a single task by ID. Returns ErrTaskNotFound when not found.
func (uc *implUseCase) Detail(ctx context.Context, id string) (model.Task, error) {
	t, err := uc.repo.GetOneTask(ctx, repo.GetOneTaskOptions{ID: id})
	if err != nil {
		uc.l.Errorf(ctx, "internal.task.usecase.Detail: %v", err)
		return model.Task{}, err
	}
	if t.ID == "" {
		return model.Task{}, task.ErrTaskNotFound
	}
	return t, nil
}

// Update applies a partial update. Returns ErrTaskNotFound when not found.
func (uc *implUseCase) Update(ctx context.Context, input task.UpdateInput) (model.Task, error) {
	existing, err := uc.Detail(ctx, input.ID)
	if err != nil {
		return model.Task{}, err
	}

	opt := repo.UpdateTaskOptions{
		ID:          existing.ID,
		Title:       existing.Title,
		Description: existing.Description,
		Status:      existing.Status,
		Priority:    existing.Priority,
		DueDate:     existing.DueDate,
		UpdatedAt:   uc.now(),
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return model.Task{}, task.ErrEmptyTitle
		}
		opt.Title = title
	}
	if input.Description != nil {
		opt.Description = trimmedOrNil(input.Description)
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return model.Task{}, task.ErrInvalidStatus
		}
		opt.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return model.Task{}, task.ErrInvalidPriority
		}
		opt.Priority = *input.Priority
	}
	switch {
	case input.ClearDueDate:
		opt.DueDate = nil
	case input.DueDate != nil:
		d := input.DueDate.UTC()
		opt.DueDate = &d
	}

	return uc.update(ctx, opt)
}

// UpdateStatus moves a task to another column.
func (uc *implUseCase) UpdateStatus(ctx context.Context, input task.UpdateStatusInput) (model.Task, error) {
	if !input.Status.Valid() {
		return model.Task{}, task.ErrInvalidStatus
	}
	return uc.Update(ctx, task.UpdateInput{ID: input.ID, Status: &input.Status})
}

// Delete removes a task by ID. Returns ErrTaskNotFound when not found.
func (uc *implUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.Detail(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.DeleteTask(ctx, id); err != nil {
		uc.l.Errorf(ctx, "internal.task.usecase.Delete: %v", err)
		return err
	}
	return nil
}

func (uc *implUseCase) update(ctx context.Context, opt repo.UpdateTaskOptions) (model.Task, error) {
	t, err := uc.repo.UpdateTask(ctx, opt)
	if err != nil {
		uc.l.Errorf(ctx, "internal.task.usecase.Update: %v", err)
		return model.Task{}, err
	}
	if t.ID == "" {
		return model.Task{}, task.ErrTaskNotFound
	}
	return t, nil
}
