package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// newOpenAIImpl creates a new implementation
func newOpenAIImpl(cfg Config) *openAIImpl {
	return &openAIImpl{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		httpClient: cfg.HTTPClient,
	}
}

// GenerateContent sends a chat completion request
func (o *openAIImpl) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	body, err := json.Marshal(o.transformRequest(req))
	if err != nil {
		return nil, fmt.Errorf("openai: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		o.baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("openai: failed to create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openai: API call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("openai: failed to decode response: %w", err)
	}

	return o.transformResponse(&out), nil
}

// Model returns the model being used
func (o *openAIImpl) Model() string {
	return o.model
}

func (o *openAIImpl) transformRequest(req *Request) *chatRequest {
	temp := req.Temperature
	out := &chatRequest{
		Model:       o.model,
		Temperature: &temp,
		MaxTokens:   req.MaxTokens,
		Messages:    make([]chatMessage, 0, len(req.Messages)+1),
	}

	if req.SystemInstruction != "" {
		out.Messages = append(out.Messages, chatMessage{Role: "system", Content: req.SystemInstruction})
	}
	for _, msg := range req.Messages {
		out.Messages = append(out.Messages, chatMessage{Role: msg.Role, Content: msg.Content})
	}

	if req.JSONMode {
		out.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	return out
}

func (o *openAIImpl) transformResponse(resp *chatResponse) *Response {
	out := &Response{
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}
	if len(resp.Choices) == 0 {
		return out
	}

	choice := resp.Choices[0]
	out.Content = Message{Role: choice.Message.Role, Content: choice.Message.Content}
	out.FinishReason = choice.FinishReason
	return out
}
