package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"voice-task-board/pkg/gemini"
	"voice-task-board/pkg/openai"
)

var (
	ErrAllProvidersFailed    = errors.New("all providers failed")
	ErrNoProvidersConfigured = errors.New("no providers configured")
	ErrUnknownProvider       = errors.New("unknown provider")
	// ErrEmptyReply is returned by adapters when the model answered with no text.
	ErrEmptyReply = errors.New("empty reply")
)

// ProviderError tags the last failure with the provider that produced it.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// retryable reports whether another attempt against the same provider can succeed.
// Rejected requests (bad key, bad payload) fail the same way every time.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	code := statusCode(err)
	switch {
	case code == 0:
		return true
	case code == http.StatusRequestTimeout, code == http.StatusTooManyRequests:
		return true
	case code >= 500:
		return true
	default:
		return false
	}
}

func statusCode(err error) int {
	var oe *openai.APIError
	if errors.As(err, &oe) {
		return oe.StatusCode
	}
	var ge *gemini.APIError
	if errors.As(err, &ge) {
		return ge.StatusCode
	}
	return 0
}
