package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"
)

// parsedFields mirrors the parsed object returned by the voice endpoints.
type parsedFields struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Status      string  `json:"status"`
	DueDate     *string `json:"dueDate"`
}

type processResult struct {
	Transcript string       `json:"transcript"`
	Parsed     parsedFields `json:"parsed"`
}

type createdTask struct {
	Task struct {
		ID       string  `json:"id"`
		Title    string  `json:"title"`
		Priority string  `json:"priority"`
		Status   string  `json:"status"`
		DueDate  *string `json:"dueDate"`
	} `json:"task"`
	CalendarLink string `json:"calendarLink"`
}

type envelope struct {
	ErrorCode int             `json:"error_code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

// apiClient talks to the voice-task-board HTTP API.
type apiClient struct {
	base string
	http *http.Client
}

func newAPIClient(base string) *apiClient {
	return &apiClient{base: base, http: &http.Client{Timeout: 2 * time.Minute}}
}

func (c *apiClient) Transcribe(ctx context.Context, audio []byte, filename, mimeType, timezone string) (processResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="audio"; filename=%q`, filename))
	h.Set("Content-Type", mimeType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return processResult{}, err
	}
	if _, err := part.Write(audio); err != nil {
		return processResult{}, err
	}
	if err := mw.WriteField("timezone", timezone); err != nil {
		return processResult{}, err
	}
	if err := mw.Close(); err != nil {
		return processResult{}, err
	}

	var out processResult
	err = c.do(ctx, http.MethodPost, "/api/v1/voice/transcribe", mw.FormDataContentType(), &body, &out)
	return out, err
}

func (c *apiClient) Parse(ctx context.Context, transcript, timezone string) (processResult, error) {
	var out processResult
	err := c.postJSON(ctx, "/api/v1/voice/parse", map[string]string{
		"transcript": transcript,
		"timezone":   timezone,
	}, &out)
	return out, err
}

// CreateTask saves parsed fields as a task. A missing title falls back to the transcript.
func (c *apiClient) CreateTask(ctx context.Context, res processResult, timezone string) (createdTask, error) {
	p := res.Parsed
	title := res.Transcript
	if p.Title != nil && *p.Title != "" {
		title = *p.Title
	}
	req := map[string]any{
		"title":       title,
		"description": p.Description,
		"status":      p.Status,
		"dueDate":     p.DueDate,
		"timezone":    timezone,
	}
	if p.Priority != nil {
		req["priority"] = *p.Priority
	}

	var out createdTask
	err := c.postJSON(ctx, "/api/v1/tasks", req, &out)
	return out, err
}

func (c *apiClient) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(body), out)
}

func (c *apiClient) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s %s: status %d: unreadable response: %w", method, path, resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || env.ErrorCode != 0 {
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, env.Message)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}
