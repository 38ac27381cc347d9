package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"voice-task-board/internal/model"
	"voice-task-board/internal/voice"
	"voice-task-board/pkg/llmprovider"
)

const replySchema = `{
  "type": "object",
  "properties": {
    "title":       {"type": ["string", "null"]},
    "description": {"type": ["string", "null"]},
    "priority":    {"type": ["string", "null"]},
    "status":      {"type": ["string", "null"]},
    "dueDate":     {"type": ["string", "null"]}
  }
}`

var (
	errEmptyReply = errors.New("model returned an empty reply")

	replyValidator = jsonschema.MustCompileString("reply.schema.json", replySchema)
	codeFenceRe    = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")
)

// Extract returns the task fields for transcript. It never fails: any problem
// with the model is logged and answered with Fallback.
func (e *Extractor) Extract(ctx context.Context, transcript string, tc voice.TimeContext) voice.ExtractedTaskFields {
	return e.ExtractWithSource(ctx, transcript, tc).Fields
}

// ExtractWithSource is Extract plus which path produced the fields.
func (e *Extractor) ExtractWithSource(ctx context.Context, transcript string, tc voice.TimeContext) Outcome {
	fields, err := e.extractWithModel(ctx, transcript, tc)
	if err != nil {
		e.l.Warnf(ctx, "internal.voice.extractor.Extract: model extraction degraded, using fallback: %v", err)
		return Outcome{Fields: Fallback(transcript, tc), Source: SourceFallback}
	}
	return Outcome{Fields: fields, Source: SourceModel}
}

func (e *Extractor) extractWithModel(ctx context.Context, transcript string, tc voice.TimeContext) (voice.ExtractedTaskFields, error) {
	if e.llm == nil {
		return voice.ExtractedTaskFields{}, errors.New("no language model configured")
	}

	resp, err := e.llm.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: buildSystemInstruction(tc),
		Messages:          []llmprovider.Message{{Role: "user", Text: transcript}},
		Temperature:       e.temperature,
		MaxTokens:         e.maxTokens,
		JSONMode:          true,
	})
	if err != nil {
		return voice.ExtractedTaskFields{}, err
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		return voice.ExtractedTaskFields{}, errEmptyReply
	}

	reply, err := decodeReply(resp.Text)
	if err != nil {
		return voice.ExtractedTaskFields{}, err
	}

	return reply.toFields(tc), nil
}

// decodeReply parses and validates the model's JSON reply.
func decodeReply(text string) (modelReply, error) {
	cleaned := sanitizeJSONResponse(text)

	var raw any
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return modelReply{}, fmt.Errorf("malformed JSON reply %q: %w", truncate(text, 200), err)
	}
	if err := replyValidator.Validate(raw); err != nil {
		return modelReply{}, fmt.Errorf("reply does not match schema: %w", err)
	}

	var reply modelReply
	if err := json.Unmarshal([]byte(cleaned), &reply); err != nil {
		return modelReply{}, fmt.Errorf("decode reply: %w", err)
	}
	return reply, nil
}

// toFields applies the enum and date rules to a decoded reply.
func (r modelReply) toFields(tc voice.TimeContext) voice.ExtractedTaskFields {
	fields := voice.ExtractedTaskFields{
		Title:       nonEmpty(r.Title),
		Description: nonEmpty(r.Description),
		Status:      model.StatusToDo,
	}

	if r.Priority != nil {
		if p := model.Priority(strings.TrimSpace(*r.Priority)); p.Valid() {
			fields.Priority = &p
		}
	}
	if r.Status != nil {
		if s := model.Status(strings.TrimSpace(*r.Status)); s.Valid() {
			fields.Status = s
		}
	}
	if d := nonEmpty(r.DueDate); d != nil {
		if t, ok := parseDueDate(*d, tc); ok {
			fields.DueDate = &t
		}
	}

	return fields
}

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// parseDueDate reads the model's timestamp. Values without an offset are taken in
// the user's timezone; a bare date means the end of that day.
func parseDueDate(s string, tc voice.TimeContext) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}

	loc := tc.LocalNow().Location()
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), true
		}
	}
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, loc).UTC(), true
	}
	return time.Time{}, false
}

// sanitizeJSONResponse strips markdown code fences and surrounding prose.
func sanitizeJSONResponse(text string) string {
	if m := codeFenceRe.FindStringSubmatch(text); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}

	start := strings.Index(text, "{")
	if start == -1 {
		return strings.TrimSpace(text)
	}
	end := strings.LastIndex(text, "}")
	if end == -1 || end < start {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(text[start : end+1])
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
