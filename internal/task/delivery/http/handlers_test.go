package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"voice-task-board/internal/model"
	"voice-task-board/internal/task"
	"voice-task-board/pkg/log"
)

type mockUseCase struct {
	createIn   task.CreateInput
	listIn     task.ListInput
	updateIn   task.UpdateInput
	statusIn   task.UpdateStatusInput
	deletedID  string
	err        error
	returnTask model.Task
}

func (m *mockUseCase) Create(ctx context.Context, in task.CreateInput) (task.CreateOutput, error) {
	m.createIn = in
	return task.CreateOutput{Task: m.returnTask, CalendarLink: "https://cal/evt"}, m.err
}

func (m *mockUseCase) List(ctx context.Context, in task.ListInput) (task.ListOutput, error) {
	m.listIn = in
	return task.ListOutput{Tasks: []model.Task{m.returnTask}, Total: 1, Limit: in.Limit}, m.err
}

func (m *mockUseCase) Detail(ctx context.Context, id string) (model.Task, error) {
	return m.returnTask, m.err
}

func (m *mockUseCase) Update(ctx context.Context, in task.UpdateInput) (model.Task, error) {
	m.updateIn = in
	return m.returnTask, m.err
}

func (m *mockUseCase) UpdateStatus(ctx context.Context, in task.UpdateStatusInput) (model.Task, error) {
	m.statusIn = in
	return m.returnTask, m.err
}

func (m *mockUseCase) Delete(ctx context.Context, id string) error {
	m.deletedID = id
	return m.err
}

func setupRouter(uc task.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), New(log.NewNop(), uc))
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var sampleTask = model.Task{
	ID:       "t1",
	Title:    "Call the vendor",
	Status:   model.StatusToDo,
	Priority: model.PriorityHigh,
}

func TestCreateHandler(t *testing.T) {
	uc := &mockUseCase{returnTask: sampleTask}
	r := setupRouter(uc)

	w := do(r, http.MethodPost, "/api/v1/tasks",
		`{"title":"Call the vendor","priority":"High","dueDate":"2024-06-11T17:00:00-04:00","timezone":"America/New_York"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if uc.createIn.DueDate == nil || !uc.createIn.DueDate.Equal(time.Date(2024, 6, 11, 21, 0, 0, 0, time.UTC)) {
		t.Errorf("due date = %v", uc.createIn.DueDate)
	}
	if uc.createIn.Priority != model.PriorityHigh || uc.createIn.Timezone != "America/New_York" {
		t.Errorf("unexpected input %+v", uc.createIn)
	}

	var body struct {
		Data struct {
			Task         map[string]any `json:"task"`
			CalendarLink string         `json:"calendarLink"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Data.Task["id"] != "t1" || body.Data.CalendarLink != "https://cal/evt" {
		t.Errorf("unexpected body %s", w.Body.String())
	}
	if _, ok := body.Data.Task["dueDate"]; !ok {
		t.Errorf("dueDate key missing from %v", body.Data.Task)
	}
}

func TestCreateHandler_Errors(t *testing.T) {
	tcs := map[string]struct {
		body   string
		ucErr  error
		status int
	}{
		"missing_title":    {body: `{}`, status: http.StatusBadRequest},
		"bad_json":         {body: `{`, status: http.StatusBadRequest},
		"bad_due_date":     {body: `{"title":"x","dueDate":"tomorrow"}`, status: http.StatusBadRequest},
		"invalid_priority": {body: `{"title":"x","priority":"P1"}`, ucErr: task.ErrInvalidPriority, status: http.StatusBadRequest},
		"storage_failure":  {body: `{"title":"x"}`, ucErr: context.DeadlineExceeded, status: http.StatusInternalServerError},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			r := setupRouter(&mockUseCase{err: tc.ucErr})
			w := do(r, http.MethodPost, "/api/v1/tasks", tc.body)
			if w.Code != tc.status {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tc.status, w.Body.String())
			}
		})
	}
}

func TestListHandler(t *testing.T) {
	uc := &mockUseCase{returnTask: sampleTask}
	r := setupRouter(uc)

	w := do(r, http.MethodGet, "/api/v1/tasks?status=To+Do&search=+vendor+&overdue=true&from=2024-06-01&to=2024-06-30&limit=500", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	f := uc.listIn.Filter
	if f.Status != model.StatusToDo || f.Search != "vendor" || !f.Overdue {
		t.Errorf("unexpected filter %+v", f)
	}
	if f.DueFrom == nil || !f.DueFrom.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("from = %v", f.DueFrom)
	}
	if f.DueTo == nil || f.DueTo.Day() != 30 || f.DueTo.Hour() != 23 {
		t.Errorf("to = %v", f.DueTo)
	}
	if uc.listIn.Limit != 50 {
		t.Errorf("limit = %d, want clamped 50", uc.listIn.Limit)
	}

	if w := do(r, http.MethodGet, "/api/v1/tasks?from=last+week", ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad from status = %d", w.Code)
	}
}

func TestUpdateHandlers(t *testing.T) {
	uc := &mockUseCase{returnTask: sampleTask}
	r := setupRouter(uc)

	w := do(r, http.MethodPut, "/api/v1/tasks/t1", `{"title":"New","dueDate":""}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if uc.updateIn.ID != "t1" || uc.updateIn.Title == nil || *uc.updateIn.Title != "New" || !uc.updateIn.ClearDueDate {
		t.Errorf("unexpected update input %+v", uc.updateIn)
	}

	w = do(r, http.MethodPatch, "/api/v1/tasks/t1/status", `{"status":"In Progress"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if uc.statusIn.ID != "t1" || uc.statusIn.Status != model.StatusInProgress {
		t.Errorf("unexpected status input %+v", uc.statusIn)
	}

	if w := do(r, http.MethodPatch, "/api/v1/tasks/t1/status", `{}`); w.Code != http.StatusBadRequest {
		t.Errorf("missing status code = %d", w.Code)
	}
}

func TestNotFound(t *testing.T) {
	r := setupRouter(&mockUseCase{err: task.ErrTaskNotFound})

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/v1/tasks/nope", ""},
		{http.MethodDelete, "/api/v1/tasks/nope", ""},
		{http.MethodPatch, "/api/v1/tasks/nope/status", `{"status":"Done"}`},
	} {
		if w := do(r, tc.method, tc.path, tc.body); w.Code != http.StatusNotFound {
			t.Errorf("%s %s status = %d, want 404", tc.method, tc.path, w.Code)
		}
	}
}
