package extractor

import "voice-task-board/internal/voice"

// Source says which path produced an Outcome.
type Source int

const (
	SourceModel Source = iota
	SourceFallback
)

func (s Source) String() string {
	if s == SourceModel {
		return "model"
	}
	return "fallback"
}

// Outcome is the extracted fields tagged with the path that produced them.
type Outcome struct {
	Fields voice.ExtractedTaskFields
	Source Source
}

// modelReply mirrors the JSON object the model is asked to return.
type modelReply struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
	DueDate     *string `json:"dueDate"`
}
