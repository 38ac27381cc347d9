package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// newGeminiImpl creates a new Gemini implementation
func newGeminiImpl(cfg Config) *geminiImpl {
	return &geminiImpl{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		apiURL:     strings.TrimRight(cfg.APIURL, "/"),
		httpClient: cfg.HTTPClient,
	}
}

// GenerateContent sends a generation request to Gemini API
func (g *geminiImpl) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	geminiResp, err := g.callAPI(ctx, g.transformRequest(req))
	if err != nil {
		return nil, err
	}
	return g.transformResponse(geminiResp), nil
}

// Model returns the model being used
func (g *geminiImpl) Model() string {
	return g.model
}

// callAPI sends a request to the Gemini API
func (g *geminiImpl) callAPI(ctx context.Context, req geminiRequest) (*geminiResponse, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent", g.apiURL, g.model)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to call API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var result geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("gemini: failed to decode response: %w", err)
	}

	return &result, nil
}

// transformRequest converts request to Gemini API format
func (g *geminiImpl) transformRequest(req *Request) geminiRequest {
	geminiReq := geminiRequest{
		Contents: make([]geminiContent, len(req.Messages)),
	}

	if req.SystemInstruction != "" {
		geminiReq.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: req.SystemInstruction}},
		}
	}

	for i, msg := range req.Messages {
		role := msg.Role
		if role == "assistant" {
			role = "model"
		}
		geminiReq.Contents[i] = geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: msg.Text}},
		}
	}

	temp := req.Temperature
	geminiReq.GenerationConfig = &geminiGenerationConfig{
		Temperature:      &temp,
		MaxOutputTokens:  req.MaxTokens,
		ResponseMIMEType: req.ResponseMIMEType,
	}

	return geminiReq
}

// transformResponse converts Gemini API response to standard format
func (g *geminiImpl) transformResponse(resp *geminiResponse) *Response {
	out := &Response{
		Usage: &Usage{
			InputTokens:  resp.UsageMetadata.PromptTokenCount,
			OutputTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:  resp.UsageMetadata.TotalTokenCount,
		},
	}
	if len(resp.Candidates) == 0 {
		return out
	}

	candidate := resp.Candidates[0]
	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		text.WriteString(part.Text)
	}

	out.Content = Content{Role: candidate.Content.Role, Text: text.String()}
	out.FinishReason = candidate.FinishReason
	return out
}
