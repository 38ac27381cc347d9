package gemini

import "time"

const (
	DefaultModel   = "gemini-2.5-flash"
	DefaultAPIURL  = "https://generativelanguage.googleapis.com/v1beta"
	DefaultTimeout = 30 * time.Second

	// JSONMimeType asks the model for a single JSON document instead of prose.
	JSONMimeType = "application/json"
)
