package gemini

import "context"

// IGemini generates text with a Gemini model. Safe for concurrent use.
type IGemini interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
	Model() string
}

// New validates cfg and returns a client.
func New(cfg Config) (IGemini, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newGeminiImpl(cfg), nil
}
