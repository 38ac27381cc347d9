package llmprovider

import "context"

// Provider is one LLM backend the Manager can call.
type Provider interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
	// Name is the configured provider name, e.g. "openai", "deepseek" or "gemini".
	Name() string
	Model() string
}

// Request is a provider-neutral generation request.
type Request struct {
	SystemInstruction string
	Messages          []Message
	Temperature       float64
	MaxTokens         int
	// JSONMode asks the backend to reply with a single JSON object.
	JSONMode bool
}

type Message struct {
	Role string // "user" or "assistant"
	Text string
}

type Response struct {
	Text         string
	ProviderName string
	ModelName    string
	Usage        *Usage
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
