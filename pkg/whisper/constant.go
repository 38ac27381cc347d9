package whisper

import "time"

const (
	// DefaultModel is the default transcription model
	DefaultModel = "whisper-1"

	// DefaultLanguage is the working language requested from the engine
	DefaultLanguage = "en"

	// DefaultBaseURL is the default OpenAI-compatible API endpoint
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultTimeout bounds a single transcription call
	DefaultTimeout = 60 * time.Second

	DefaultRetryAttempts = 3
	DefaultRetryDelay    = time.Second

	// maxErrorBody caps how much of a failed response is kept for diagnostics
	maxErrorBody = 4096
)
