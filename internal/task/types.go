package task

import (
	"time"

	"voice-task-board/internal/model"
)

// --- UseCase Inputs ---

type CreateInput struct {
	Title       string
	Description *string
	Status      model.Status   // empty means "To Do"
	Priority    model.Priority // empty means "Medium"
	DueDate     *time.Time
	Timezone    string // used for the calendar reminder only
}

// Filter narrows a task listing. Zero values are ignored.
type Filter struct {
	Status   model.Status
	Priority model.Priority
	Search   string // substring of title or description
	Overdue  bool
	DueFrom  *time.Time
	DueTo    *time.Time
}

type ListInput struct {
	Filter Filter
	Limit  int
	Offset int
}

// UpdateInput is a partial update; nil fields keep their stored value.
type UpdateInput struct {
	ID           string
	Title        *string
	Description  *string
	Status       *model.Status
	Priority     *model.Priority
	DueDate      *time.Time
	ClearDueDate bool
}

// UpdateStatusInput moves a task to another board column.
type UpdateStatusInput struct {
	ID     string
	Status model.Status
}

// --- UseCase Outputs ---

type CreateOutput struct {
	Task         model.Task
	CalendarLink string // empty when no reminder was created
}

type ListOutput struct {
	Tasks  []model.Task
	Total  int
	Limit  int
	Offset int
}
