package gemini

import (
	"fmt"
	"net/http"
)

// Config holds Gemini client configuration
type Config struct {
	APIKey     string
	Model      string
	APIURL     string
	HTTPClient *http.Client
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("gemini: APIKey is required")
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	return nil
}

// geminiImpl is the internal implementation of IGemini
type geminiImpl struct {
	apiKey     string
	model      string
	apiURL     string
	httpClient *http.Client
}

// Request represents a Gemini generation request
type Request struct {
	SystemInstruction string
	Messages          []Content
	Temperature       float64
	MaxTokens         int
	ResponseMIMEType  string // "application/json" for a JSON-only reply
}

// Content represents one conversation turn
type Content struct {
	Role string // "user" or "model"
	Text string
}

// Response represents a Gemini generation response
type Response struct {
	Content      Content
	FinishReason string
	Usage        *Usage
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// APIError is a non-success response from the Gemini API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: API error %d: %s", e.StatusCode, e.Body)
}

// Wire types for the generateContent endpoint.
type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"system_instruction,omitempty"`
	Contents          []geminiContent         `json:"contents"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature      *float64 `json:"temperature,omitempty"`
	MaxOutputTokens  int      `json:"maxOutputTokens,omitempty"`
	ResponseMIMEType string   `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates    []geminiCandidate   `json:"candidates"`
	UsageMetadata geminiUsageMetadata `json:"usageMetadata"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

type geminiUsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}
