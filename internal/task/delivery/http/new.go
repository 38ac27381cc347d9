package http

import (
	"voice-task-board/internal/task"
	"voice-task-board/pkg/log"
)

type handler struct {
	l  log.Logger
	uc task.UseCase
}

// New creates a new HTTP handler for the task domain.
func New(l log.Logger, uc task.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
