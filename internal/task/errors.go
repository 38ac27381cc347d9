package task

import "errors"

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrEmptyTitle      = errors.New("title is required")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidRange    = errors.New("due date range is inverted")
)
