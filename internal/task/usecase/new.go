package usecase

import (
	"time"

	"github.com/google/uuid"

	"voice-task-board/internal/task"
	"voice-task-board/internal/task/repository"
	"voice-task-board/pkg/gcalendar"
	pkgLog "voice-task-board/pkg/log"
)

const defaultEventDuration = 30 * time.Minute

// CalendarConfig controls the optional reminder created for tasks with a due date.
type CalendarConfig struct {
	Client          gcalendar.ICalendar // nil disables reminders
	CalendarID      string
	EventDuration   time.Duration
	ReminderBefore  time.Duration
	DefaultTimezone string
}

// implUseCase is the private implementation of task.UseCase.
type implUseCase struct {
	l        pkgLog.Logger
	repo     repository.Repository
	calendar CalendarConfig
	now      func() time.Time
	newID    func() string
}

// New creates a new task UseCase implementation.
func New(l pkgLog.Logger, repo repository.Repository, cal CalendarConfig) task.UseCase {
	if cal.EventDuration <= 0 {
		cal.EventDuration = defaultEventDuration
	}
	if cal.DefaultTimezone == "" {
		cal.DefaultTimezone = "UTC"
	}
	return &implUseCase{
		l:        l,
		repo:     repo,
		calendar: cal,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}
