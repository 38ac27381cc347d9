package extractor

import (
	"context"

	"voice-task-board/pkg/llmprovider"
	pkgLog "voice-task-board/pkg/log"
)

const (
	DefaultTemperature = 0.3
	DefaultMaxTokens   = 300
)

// LLM is the slice of llmprovider.Manager the extractor needs.
type LLM interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// Extractor turns transcripts into task fields with a language model,
// degrading to keyword rules when the model cannot be used.
type Extractor struct {
	l           pkgLog.Logger
	llm         LLM
	temperature float64
	maxTokens   int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTemperature overrides the sampling temperature.
func WithTemperature(t float64) Option {
	return func(e *Extractor) {
		if t >= 0 {
			e.temperature = t
		}
	}
}

// WithMaxTokens overrides the reply token budget.
func WithMaxTokens(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.maxTokens = n
		}
	}
}

// New creates an Extractor. A nil llm makes every call use the fallback rules.
func New(llm LLM, l pkgLog.Logger, opts ...Option) *Extractor {
	e := &Extractor{
		l:           l,
		llm:         llm,
		temperature: DefaultTemperature,
		maxTokens:   DefaultMaxTokens,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
