package http

import (
	"errors"
	"net/http"

	"voice-task-board/internal/task"
	pkgErrors "voice-task-board/pkg/errors"
)

var (
	errMissingID      = pkgErrors.NewHTTPError(http.StatusBadRequest, "id is required")
	errInvalidDueDate = pkgErrors.NewHTTPError(http.StatusBadRequest, "dueDate must be an RFC 3339 timestamp")
	errInvalidDate    = pkgErrors.NewHTTPError(http.StatusBadRequest, "from/to must be RFC 3339 timestamps or YYYY-MM-DD dates")
)

// mapError translates domain/use-case errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "task not found")
	case errors.Is(err, task.ErrEmptyTitle):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "title is required")
	case errors.Is(err, task.ErrInvalidStatus):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "status must be one of: To Do, In Progress, Done")
	case errors.Is(err, task.ErrInvalidPriority):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "priority must be one of: Low, Medium, High, Urgent")
	case errors.Is(err, task.ErrInvalidRange):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "to must not be before from")
	default:
		return pkgErrors.ErrInternalServerError
	}
}
