package whisper

import (
	"errors"
	"fmt"
)

// ErrEmptyTranscript is returned when the engine answers with blank text.
var ErrEmptyTranscript = errors.New("whisper: empty transcript")

// ServiceError is a transport failure or non-success response from the engine.
// StatusCode is zero for transport failures.
type ServiceError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("whisper: transport error: %v", e.Err)
	}
	return fmt.Sprintf("whisper: API error %d: %s", e.StatusCode, e.Body)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Temporary reports whether retrying the same request may succeed.
func (e *ServiceError) Temporary() bool {
	return e.StatusCode == 0 || e.StatusCode == 429 || e.StatusCode >= 500
}
