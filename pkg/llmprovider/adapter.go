package llmprovider

import (
	"context"
	"strings"

	"voice-task-board/pkg/gemini"
	"voice-task-board/pkg/openai"
)

// GeminiAdapter serves Gemini generateContent as a Provider.
type GeminiAdapter struct {
	client gemini.IGemini
}

func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	geminiReq := &gemini.Request{
		SystemInstruction: req.SystemInstruction,
		Messages:          make([]gemini.Content, len(req.Messages)),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	}
	for i, m := range req.Messages {
		geminiReq.Messages[i] = gemini.Content{Role: m.Role, Text: m.Text}
	}
	if req.JSONMode {
		geminiReq.ResponseMIMEType = gemini.JSONMimeType
	}

	resp, err := a.client.GenerateContent(ctx, geminiReq)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(resp.Content.Text) == "" {
		return nil, ErrEmptyReply
	}

	return &Response{
		Text:         resp.Content.Text,
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (a *GeminiAdapter) Name() string {
	return "gemini"
}

func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

// OpenAIAdapter adapts pkg/openai to llmprovider.Provider interface.
// It serves every OpenAI-compatible vendor, so the name is configurable.
type OpenAIAdapter struct {
	name   string
	client openai.IOpenAI
}

func NewOpenAIAdapter(name string, client openai.IOpenAI) *OpenAIAdapter {
	return &OpenAIAdapter{name: name, client: client}
}

func (a *OpenAIAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	openAIReq := &openai.Request{
		SystemInstruction: req.SystemInstruction,
		Messages:          make([]openai.Message, len(req.Messages)),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
		JSONMode:          req.JSONMode,
	}
	for i, m := range req.Messages {
		openAIReq.Messages[i] = openai.Message{Role: m.Role, Content: m.Text}
	}

	resp, err := a.client.GenerateContent(ctx, openAIReq)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(resp.Content.Content) == "" {
		return nil, ErrEmptyReply
	}

	return &Response{
		Text:         resp.Content.Content,
		ProviderName: a.name,
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (a *OpenAIAdapter) Name() string {
	return a.name
}

func (a *OpenAIAdapter) Model() string {
	return a.client.Model()
}
