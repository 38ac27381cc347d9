package usecase

import (
	"context"
	"strings"

	"voice-task-board/internal/model"
	"voice-task-board/internal/task"
	repo "voice-task-board/internal/task/repository"
	"voice-task-board/pkg/gcalendar"
)

// Create validates and stores a new task, then schedules a calendar reminder
// when the task has a due date and a calendar is configured.
func (uc *implUseCase) Create(ctx context.Context, input task.CreateInput) (task.CreateOutput, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return task.CreateOutput{}, task.ErrEmptyTitle
	}

	status := input.Status
	if status == "" {
		status = model.StatusToDo
	}
	if !status.Valid() {
		return task.CreateOutput{}, task.ErrInvalidStatus
	}

	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return task.CreateOutput{}, task.ErrInvalidPriority
	}

	var due = input.DueDate
	if due != nil {
		d := due.UTC()
		due = &d
	}

	t, err := uc.repo.CreateTask(ctx, repo.CreateTaskOptions{
		ID:          uc.newID(),
		Title:       title,
		Description: trimmedOrNil(input.Description),
		Status:      status,
		Priority:    priority,
		DueDate:     due,
		CreatedAt:   uc.now(),
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.task.usecase.Create: %v", err)
		return task.CreateOutput{}, err
	}

	out := task.CreateOutput{Task: t}
	if t.DueDate != nil && uc.calendar.Client != nil {
		out.CalendarLink = uc.scheduleReminder(ctx, t, input.Timezone)
	}
	return out, nil
}

// scheduleReminder is best effort; a calendar failure never fails task creation.
func (uc *implUseCase) scheduleReminder(ctx context.Context, t model.Task, tz string) string {
	if tz == "" {
		tz = uc.calendar.DefaultTimezone
	}

	description := ""
	if t.Description != nil {
		description = *t.Description
	}
	description = strings.TrimSpace(description + "\n\nPriority: " + string(t.Priority))

	event, err := uc.calendar.Client.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID:  uc.calendar.CalendarID,
		Summary:     t.Title,
		Description: description,
		StartTime:   *t.DueDate,
		EndTime:     t.DueDate.Add(uc.calendar.EventDuration),
		Timezone:    tz,

		ReminderBefore: uc.calendar.ReminderBefore,
	})
	if err != nil {
		uc.l.Warnf(ctx, "internal.task.usecase.Create: calendar reminder for %s failed: %v", t.ID, err)
		return ""
	}
	return event.HtmlLink
}
