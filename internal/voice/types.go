package voice

import (
	"encoding/json"
	"strings"
	"time"

	"voice-task-board/internal/model"
)

// DefaultTimezone is used when the caller sends no timezone or an unknown one.
const DefaultTimezone = "UTC"

// TimeContext is the reference clock for one submission.
type TimeContext struct {
	Now      time.Time // UTC
	Location *time.Location
}

// NewTimeContext pins now to UTC and loads tz, falling back to DefaultTimezone.
func NewTimeContext(now time.Time, tz string) TimeContext {
	loc, err := time.LoadLocation(strings.TrimSpace(tz))
	if err != nil || strings.TrimSpace(tz) == "" {
		loc = time.UTC
	}
	return TimeContext{Now: now.UTC(), Location: loc}
}

// LocalNow returns Now expressed in the user's location.
func (tc TimeContext) LocalNow() time.Time {
	return tc.Now.In(tc.location())
}

// Zone returns the IANA name of the user's location.
func (tc TimeContext) Zone() string {
	return tc.location().String()
}

func (tc TimeContext) location() *time.Location {
	if tc.Location == nil {
		return time.UTC
	}
	return tc.Location
}

// ExtractedTaskFields is the structured result of parsing one transcript.
// Nil pointers mean the field could not be determined.
type ExtractedTaskFields struct {
	Title       *string
	Description *string
	Priority    *model.Priority
	Status      model.Status
	DueDate     *time.Time // UTC
}

type extractedTaskFieldsJSON struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Priority    *model.Priority `json:"priority"`
	Status      model.Status    `json:"status"`
	DueDate     *string         `json:"dueDate"`
}

// MarshalJSON renders absent fields as null and the due date as RFC3339 UTC.
func (f ExtractedTaskFields) MarshalJSON() ([]byte, error) {
	out := extractedTaskFieldsJSON{
		Title:       f.Title,
		Description: f.Description,
		Priority:    f.Priority,
		Status:      f.Status,
	}
	if out.Status == "" {
		out.Status = model.StatusToDo
	}
	if f.DueDate != nil {
		s := f.DueDate.UTC().Format(time.RFC3339)
		out.DueDate = &s
	}
	return json.Marshal(out)
}

// ProcessInput is one voice submission.
type ProcessInput struct {
	Audio    []byte
	Filename string
	Timezone string
}

// ParseInput is a text-only submission.
type ParseInput struct {
	Transcript string
	Timezone   string
}

// ProcessOutput pairs the transcript with the fields extracted from it.
type ProcessOutput struct {
	Transcript string
	Parsed     ExtractedTaskFields
}

// CreateFromVoiceOutput is the result of processing a recording and saving it as a task.
type CreateFromVoiceOutput struct {
	Transcript string
	Parsed     ExtractedTaskFields
	Task       model.Task
}
