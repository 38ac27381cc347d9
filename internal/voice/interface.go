package voice

import (
	"context"
)

// UseCase turns spoken or typed task descriptions into structured task fields.
type UseCase interface {
	// Process transcribes the recording, then extracts task fields from the transcript.
	Process(ctx context.Context, input ProcessInput) (ProcessOutput, error)

	// Parse extracts task fields from an already transcribed text.
	Parse(ctx context.Context, input ParseInput) (ProcessOutput, error)

	// CreateFromVoice runs Process and saves the result as a new task.
	CreateFromVoice(ctx context.Context, input ProcessInput) (CreateFromVoiceOutput, error)

	// CreateFromText runs Parse and saves the result as a new task.
	CreateFromText(ctx context.Context, input ParseInput) (CreateFromVoiceOutput, error)
}
