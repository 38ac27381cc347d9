package extractor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"pgregory.net/rapid"

	"voice-task-board/internal/model"
	"voice-task-board/internal/voice"
	"voice-task-board/pkg/llmprovider"
	"voice-task-board/pkg/log"
	"voice-task-board/pkg/openai"
)

type mockLLM struct {
	text    string
	err     error
	lastReq *llmprovider.Request
	calls   int
}

func (m *mockLLM) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &llmprovider.Response{Text: m.text}, nil
}

var nyContext = voice.NewTimeContext(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), "America/New_York")

func TestExtract_ModelReply(t *testing.T) {
	tcs := map[string]struct {
		reply string
		want  voice.ExtractedTaskFields
	}{
		"full": {
			reply: `{"title":"Call the vendor","description":"about invoices","priority":"High","status":"In Progress","dueDate":"2024-06-11T21:00:00Z"}`,
			want: voice.ExtractedTaskFields{
				Title:       ptr("Call the vendor"),
				Description: ptr("about invoices"),
				Priority:    ptr(model.PriorityHigh),
				Status:      model.StatusInProgress,
				DueDate:     ptr(time.Date(2024, 6, 11, 21, 0, 0, 0, time.UTC)),
			},
		},
		"code_fence": {
			reply: "Here you go:\n```json\n{\"title\":\"Buy milk\",\"description\":null,\"priority\":null,\"status\":null,\"dueDate\":null}\n```",
			want:  voice.ExtractedTaskFields{Title: ptr("Buy milk"), Status: model.StatusToDo},
		},
		"unknown_priority_dropped": {
			reply: `{"title":"Fix prod","priority":"Critical","status":"Done"}`,
			want:  voice.ExtractedTaskFields{Title: ptr("Fix prod"), Status: model.StatusDone},
		},
		"unknown_status_defaults": {
			reply: `{"title":"Fix prod","priority":"Urgent","status":"Blocked"}`,
			want:  voice.ExtractedTaskFields{Title: ptr("Fix prod"), Priority: ptr(model.PriorityUrgent), Status: model.StatusToDo},
		},
		"lowercase_priority_dropped": {
			reply: `{"title":"Fix prod","priority":"urgent"}`,
			want:  voice.ExtractedTaskFields{Title: ptr("Fix prod"), Status: model.StatusToDo},
		},
		"empty_strings_absent": {
			reply: `{"title":"  ","description":"","dueDate":""}`,
			want:  voice.ExtractedTaskFields{Status: model.StatusToDo},
		},
		"offset_converted_to_utc": {
			reply: `{"title":"Call","dueDate":"2024-06-11T17:00:00-04:00"}`,
			want:  voice.ExtractedTaskFields{Title: ptr("Call"), Status: model.StatusToDo, DueDate: ptr(time.Date(2024, 6, 11, 21, 0, 0, 0, time.UTC))},
		},
		"local_datetime_in_user_zone": {
			reply: `{"title":"Call","dueDate":"2024-06-11T17:00:00"}`,
			want:  voice.ExtractedTaskFields{Title: ptr("Call"), Status: model.StatusToDo, DueDate: ptr(time.Date(2024, 6, 11, 21, 0, 0, 0, time.UTC))},
		},
		"date_only_end_of_day": {
			reply: `{"title":"Call","dueDate":"2024-06-11"}`,
			want:  voice.ExtractedTaskFields{Title: ptr("Call"), Status: model.StatusToDo, DueDate: ptr(time.Date(2024, 6, 12, 3, 59, 59, 0, time.UTC))},
		},
		"unparsable_date_absent": {
			reply: `{"title":"Call","dueDate":"next tuesday-ish"}`,
			want:  voice.ExtractedTaskFields{Title: ptr("Call"), Status: model.StatusToDo},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			llm := &mockLLM{text: tc.reply}
			e := New(llm, log.NewNop())

			out := e.ExtractWithSource(context.Background(), "anything", nyContext)
			if out.Source != SourceModel {
				t.Fatalf("Source = %v, want model", out.Source)
			}
			if !reflect.DeepEqual(out.Fields, tc.want) {
				t.Errorf("fields = %+v, want %+v", out.Fields, tc.want)
			}
		})
	}
}

func TestExtract_FallsBack(t *testing.T) {
	const transcript = "this is urgent, call the vendor tomorrow at 5 PM"

	tcs := map[string]*mockLLM{
		"transport_error": {err: errors.New("connection refused")},
		"empty_reply":     {text: "   "},
		"malformed_json":  {text: `{"title": "Call`},
		"prose_only":      {text: "I could not find a task."},
		"schema_mismatch": {text: `{"title": 42, "priority": ["High"]}`},
		"not_an_object":   {text: `["Call the vendor"]`},
	}

	want := Fallback(transcript, nyContext)

	for name, llm := range tcs {
		t.Run(name, func(t *testing.T) {
			e := New(llm, log.NewNop())
			out := e.ExtractWithSource(context.Background(), transcript, nyContext)
			if out.Source != SourceFallback {
				t.Fatalf("Source = %v, want fallback", out.Source)
			}
			if !reflect.DeepEqual(out.Fields, want) {
				t.Errorf("fields = %+v, want %+v", out.Fields, want)
			}
		})
	}
}

func TestExtract_NilLLM(t *testing.T) {
	e := New(nil, log.NewNop())
	got := e.Extract(context.Background(), "low priority: clean desk", nyContext)
	if !reflect.DeepEqual(got, Fallback("low priority: clean desk", nyContext)) {
		t.Errorf("expected fallback fields, got %+v", got)
	}
}

func TestExtract_ModelEndpointUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	client, err := openai.New(openai.Config{APIKey: "test", BaseURL: baseURL})
	if err != nil {
		t.Fatalf("openai.New: %v", err)
	}
	manager := llmprovider.NewManager(
		[]llmprovider.Provider{llmprovider.NewOpenAIAdapter("openai", client)},
		&llmprovider.Config{RetryAttempts: 2, RetryDelay: time.Millisecond, MaxTotalTimeout: 5 * time.Second},
		log.NewNop(),
	)

	const transcript = "remind me tomorrow at 5 PM"
	e := New(manager, log.NewNop())
	got := e.Extract(context.Background(), transcript, nyContext)

	want := Fallback(transcript, nyContext)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Extract = %+v, want fallback %+v", got, want)
	}
	if got.DueDate == nil || !got.DueDate.Equal(time.Date(2024, 6, 11, 21, 0, 0, 0, time.UTC)) {
		t.Errorf("DueDate = %v, want 2024-06-11T21:00:00Z", deref(got.DueDate))
	}
}

func TestExtract_Request(t *testing.T) {
	llm := &mockLLM{text: `{"title":"x"}`}
	e := New(llm, log.NewNop(), WithTemperature(0.1), WithMaxTokens(128))

	e.Extract(context.Background(), "buy milk", nyContext)

	req := llm.lastReq
	if req == nil {
		t.Fatal("model not called")
	}
	if !req.JSONMode {
		t.Error("expected JSON mode")
	}
	if req.Temperature != 0.1 || req.MaxTokens != 128 {
		t.Errorf("temperature/max tokens = %v/%d", req.Temperature, req.MaxTokens)
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != "user" || req.Messages[0].Text != "buy milk" {
		t.Errorf("unexpected messages %+v", req.Messages)
	}
	for _, want := range []string{
		"America/New_York",
		"2024-06-09T20:00:00-04:00",
		"2024-06-10T00:00:00Z",
		"Low, Medium, High, Urgent",
		"To Do, In Progress, Done",
		"23:59:59",
	} {
		if !strings.Contains(req.SystemInstruction, want) {
			t.Errorf("system instruction missing %q", want)
		}
	}
}

func TestExtract_DefaultOptions(t *testing.T) {
	llm := &mockLLM{text: `{}`}
	New(llm, log.NewNop()).Extract(context.Background(), "x", nyContext)
	if llm.lastReq.Temperature != DefaultTemperature || llm.lastReq.MaxTokens != DefaultMaxTokens {
		t.Errorf("got %v/%d", llm.lastReq.Temperature, llm.lastReq.MaxTokens)
	}
}

func TestExtract_AlwaysWellFormed(t *testing.T) {
	values := []string{`null`, `"Low"`, `"Medium"`, `"High"`, `"Urgent"`, `"Critical"`, `"To Do"`,
		`"In Progress"`, `"Done"`, `"done"`, `""`, `"2024-06-11T21:00:00Z"`, `"garbage"`, `3`}

	rapid.Check(t, func(rt *rapid.T) {
		priority := rapid.SampledFrom(values).Draw(rt, "priority")
		status := rapid.SampledFrom(values).Draw(rt, "status")
		due := rapid.SampledFrom(values).Draw(rt, "due")
		reply := `{"title":"t","priority":` + priority + `,"status":` + status + `,"dueDate":` + due + `}`

		got := New(&mockLLM{text: reply}, log.NewNop()).Extract(context.Background(), "call mom", nyContext)
		if !got.Status.Valid() {
			rt.Fatalf("invalid status %q for reply %s", got.Status, reply)
		}
		if got.Priority != nil && !got.Priority.Valid() {
			rt.Fatalf("invalid priority %q for reply %s", *got.Priority, reply)
		}
		if got.DueDate != nil && got.DueDate.Location() != time.UTC {
			rt.Fatalf("due date not UTC for reply %s", reply)
		}
	})
}

func TestSanitizeJSONResponse(t *testing.T) {
	tcs := map[string]struct {
		in   string
		want string
	}{
		"plain":      {in: `{"a":1}`, want: `{"a":1}`},
		"fenced":     {in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		"bare_fence": {in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		"prose":      {in: `Sure! {"a":1} Hope that helps.`, want: `{"a":1}`},
		"no_json":    {in: "  nothing  ", want: "nothing"},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			if got := sanitizeJSONResponse(tc.in); got != tc.want {
				t.Errorf("sanitizeJSONResponse(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
