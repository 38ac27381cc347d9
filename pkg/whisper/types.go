package whisper

import (
	"fmt"
	"net/http"
	"time"
)

// Config holds transcription client configuration
type Config struct {
	APIKey        string
	BaseURL       string
	Model         string
	Language      string
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
	HTTPClient    *http.Client
}

// Validate validates the configuration and fills defaults
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("whisper: APIKey is required")
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = DefaultRetryAttempts
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	return nil
}

// whisperImpl is the internal implementation of ITranscriber
type whisperImpl struct {
	apiKey        string
	baseURL       string
	model         string
	language      string
	retryAttempts int
	retryDelay    time.Duration
	httpClient    *http.Client
}

type transcriptionResponse struct {
	Text string `json:"text"`
}
