package http

import (
	"strings"
	"time"

	"voice-task-board/internal/model"
	"voice-task-board/internal/task"
)

// --- Request DTOs ---

type createReq struct {
	Title       string  `json:"title"       binding:"required,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"dueDate"`
	Timezone    string  `json:"timezone"`
}

func (r createReq) toInput() (task.CreateInput, error) {
	due, err := parseDueDate(r.DueDate)
	if err != nil {
		return task.CreateInput{}, err
	}
	return task.CreateInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      model.Status(r.Status),
		Priority:    model.Priority(r.Priority),
		DueDate:     due,
		Timezone:    r.Timezone,
	}, nil
}

// ---

type listReq struct {
	Status   string `form:"status"`
	Priority string `form:"priority"`
	Search   string `form:"search"`
	Overdue  bool   `form:"overdue"`
	From     string `form:"from"`
	To       string `form:"to"`
	Limit    int    `form:"limit"`
	Offset   int    `form:"offset"`
}

func (r listReq) toInput() (task.ListInput, error) {
	limit := r.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if r.Offset < 0 {
		r.Offset = 0
	}

	from, err := parseBound(r.From, false)
	if err != nil {
		return task.ListInput{}, err
	}
	to, err := parseBound(r.To, true)
	if err != nil {
		return task.ListInput{}, err
	}

	return task.ListInput{
		Filter: task.Filter{
			Status:   model.Status(r.Status),
			Priority: model.Priority(r.Priority),
			Search:   strings.TrimSpace(r.Search),
			Overdue:  r.Overdue,
			DueFrom:  from,
			DueTo:    to,
		},
		Limit:  limit,
		Offset: r.Offset,
	}, nil
}

// ---

type updateReq struct {
	ID          string  `json:"-"` // populated from URI param
	Title       *string `json:"title"       binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"` // "" clears the due date
}

func (r updateReq) toInput() (task.UpdateInput, error) {
	in := task.UpdateInput{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
	}
	if r.Status != nil {
		s := model.Status(*r.Status)
		in.Status = &s
	}
	if r.Priority != nil {
		p := model.Priority(*r.Priority)
		in.Priority = &p
	}
	if r.DueDate != nil && strings.TrimSpace(*r.DueDate) == "" {
		in.ClearDueDate = true
		return in, nil
	}
	due, err := parseDueDate(r.DueDate)
	if err != nil {
		return task.UpdateInput{}, err
	}
	in.DueDate = due
	return in, nil
}

// ---

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

// --- Response DTOs ---

type taskResp struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	IsOverdue   bool       `json:"isOverdue"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func newTaskResp(t model.Task, now time.Time) taskResp {
	return taskResp{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		IsOverdue:   t.IsOverdue(now),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type createResp struct {
	Task         taskResp `json:"task"`
	CalendarLink string   `json:"calendarLink,omitempty"`
}

func (h *handler) newCreateResp(out task.CreateOutput) createResp {
	return createResp{
		Task:         newTaskResp(out.Task, time.Now()),
		CalendarLink: out.CalendarLink,
	}
}

type listResp struct {
	Tasks  []taskResp `json:"tasks"`
	Total  int        `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

func (h *handler) newListResp(out task.ListOutput) listResp {
	now := time.Now()
	tasks := make([]taskResp, len(out.Tasks))
	for i, t := range out.Tasks {
		tasks[i] = newTaskResp(t, now)
	}
	return listResp{
		Tasks:  tasks,
		Total:  out.Total,
		Limit:  out.Limit,
		Offset: out.Offset,
	}
}

type detailResp struct {
	Task taskResp `json:"task"`
}

func (h *handler) newDetailResp(t model.Task) detailResp {
	return detailResp{Task: newTaskResp(t, time.Now())}
}

// --- helpers ---

func parseDueDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(*s))
	if err != nil {
		return nil, errInvalidDueDate
	}
	t = t.UTC()
	return &t, nil
}

// parseBound reads a list filter bound. A bare date covers the whole UTC day.
func parseBound(s string, endOfDay bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, errInvalidDate
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return &t, nil
}
