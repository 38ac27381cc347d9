package llmprovider

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"voice-task-board/pkg/gemini"
	"voice-task-board/pkg/log"
	"voice-task-board/pkg/openai"
)

// mockProvider is a test implementation of the Provider interface
type mockProvider struct {
	name      string
	model     string
	failures  int // number of calls that fail before succeeding; -1 always fails
	err       error
	response  *Response
	callCount int
}

func (m *mockProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	m.callCount++
	if m.failures < 0 || m.callCount <= m.failures {
		if m.err != nil {
			return nil, m.err
		}
		return nil, errors.New("mock provider error")
	}
	return m.response, nil
}

func (m *mockProvider) Name() string {
	return m.name
}

func (m *mockProvider) Model() string {
	return m.model
}

func textRequest() *Request {
	return &Request{
		SystemInstruction: "reply in JSON",
		Messages:          []Message{{Role: "user", Text: "hello"}},
		JSONMode:          true,
	}
}

func TestGenerateContent_SuccessWithPrimaryProvider(t *testing.T) {
	primary := &mockProvider{
		name:  "primary",
		model: "primary-model",
		response: &Response{
			Text:         `{"title":"hello"}`,
			ProviderName: "primary",
			ModelName:    "primary-model",
			Usage:        &Usage{InputTokens: 100, OutputTokens: 20, TotalTokens: 120},
		},
	}
	secondary := &mockProvider{name: "secondary", model: "secondary-model"}

	manager := NewManager([]Provider{primary, secondary}, &Config{
		FallbackEnabled: true,
		RetryAttempts:   2,
		RetryDelay:      time.Millisecond,
		MaxTotalTimeout: time.Second,
	}, log.NewNop())

	resp, err := manager.GenerateContent(context.Background(), textRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ProviderName != "primary" {
		t.Errorf("expected primary provider, got %s", resp.ProviderName)
	}
	if primary.callCount != 1 {
		t.Errorf("expected primary called once, got %d", primary.callCount)
	}
	if secondary.callCount != 0 {
		t.Errorf("expected secondary not called, got %d", secondary.callCount)
	}
}

func TestGenerateContent_RetryThenSucceed(t *testing.T) {
	primary := &mockProvider{
		name:     "primary",
		model:    "primary-model",
		failures: 1,
		response: &Response{Text: "{}", ProviderName: "primary"},
	}

	manager := NewManager([]Provider{primary}, &Config{
		RetryAttempts: 2,
		RetryDelay:    time.Millisecond,
	}, log.NewNop())

	resp, err := manager.GenerateContent(context.Background(), textRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "{}" {
		t.Errorf("unexpected text %q", resp.Text)
	}
	if primary.callCount != 2 {
		t.Errorf("expected 2 calls, got %d", primary.callCount)
	}
}

func TestGenerateContent_FallbackToSecondary(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "p", failures: -1}
	secondary := &mockProvider{
		name:     "secondary",
		model:    "s",
		response: &Response{Text: "{}", ProviderName: "secondary"},
	}

	manager := NewManager([]Provider{primary, secondary}, &Config{
		FallbackEnabled: true,
		RetryAttempts:   2,
		RetryDelay:      time.Millisecond,
	}, log.NewNop())

	resp, err := manager.GenerateContent(context.Background(), textRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ProviderName != "secondary" {
		t.Errorf("expected secondary, got %s", resp.ProviderName)
	}
	if primary.callCount != 2 {
		t.Errorf("expected primary retried to 2 calls, got %d", primary.callCount)
	}
}

func TestGenerateContent_AllProvidersFail(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "p", failures: -1}
	secondary := &mockProvider{name: "secondary", model: "s", failures: -1}

	manager := NewManager([]Provider{primary, secondary}, &Config{
		FallbackEnabled: true,
		RetryAttempts:   1,
	}, log.NewNop())

	_, err := manager.GenerateContent(context.Background(), textRequest())
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Fatalf("expected ErrAllProvidersFailed, got %v", err)
	}
	if primary.callCount != 1 || secondary.callCount != 1 {
		t.Errorf("expected one call each, got %d and %d", primary.callCount, secondary.callCount)
	}
}

func TestGenerateContent_NoFallbackWhenDisabled(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "p", failures: -1}
	secondary := &mockProvider{name: "secondary", model: "s", response: &Response{Text: "{}"}}

	manager := NewManager([]Provider{primary, secondary}, &Config{
		FallbackEnabled: false,
		RetryAttempts:   1,
	}, log.NewNop())

	_, err := manager.GenerateContent(context.Background(), textRequest())
	if err == nil {
		t.Fatal("expected error")
	}
	if secondary.callCount != 0 {
		t.Errorf("expected secondary not called, got %d", secondary.callCount)
	}
	if !strings.Contains(err.Error(), "primary") {
		t.Errorf("expected error to name the failing provider, got %v", err)
	}
}

func TestGenerateContent_NoProvidersConfigured(t *testing.T) {
	manager := NewManager(nil, &Config{}, log.NewNop())

	_, err := manager.GenerateContent(context.Background(), textRequest())
	if !errors.Is(err, ErrNoProvidersConfigured) {
		t.Fatalf("expected ErrNoProvidersConfigured, got %v", err)
	}
}

func TestGenerateContent_CancelledContext(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "p", response: &Response{Text: "{}"}}
	manager := NewManager([]Provider{primary}, &Config{RetryAttempts: 1}, log.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := manager.GenerateContent(ctx, textRequest()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if primary.callCount != 0 {
		t.Errorf("expected no calls, got %d", primary.callCount)
	}
}

func TestGenerateContent_RejectedRequestSkipsRetry(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "p", failures: -1, err: &openai.APIError{StatusCode: 401, Body: "bad key"}}
	secondary := &mockProvider{name: "secondary", model: "s", response: &Response{Text: "{}", ProviderName: "secondary"}}

	manager := NewManager([]Provider{primary, secondary}, &Config{
		FallbackEnabled: true,
		RetryAttempts:   3,
		RetryDelay:      time.Millisecond,
	}, log.NewNop())

	resp, err := manager.GenerateContent(context.Background(), textRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ProviderName != "secondary" {
		t.Errorf("expected secondary, got %s", resp.ProviderName)
	}
	if primary.callCount != 1 {
		t.Errorf("expected a single call for a rejected request, got %d", primary.callCount)
	}
}

func TestRetryable(t *testing.T) {
	tcs := map[string]struct {
		err  error
		want bool
	}{
		"transport":       {err: errors.New("connection reset"), want: true},
		"empty_reply":     {err: ErrEmptyReply, want: true},
		"deadline":        {err: context.DeadlineExceeded, want: true},
		"canceled":        {err: context.Canceled, want: false},
		"openai_429":      {err: &openai.APIError{StatusCode: 429}, want: true},
		"openai_503":      {err: &openai.APIError{StatusCode: 503}, want: true},
		"openai_400":      {err: &openai.APIError{StatusCode: 400}, want: false},
		"gemini_408":      {err: &gemini.APIError{StatusCode: 408}, want: true},
		"gemini_403":      {err: &gemini.APIError{StatusCode: 403}, want: false},
		"wrapped_gemini":  {err: &ProviderError{Provider: "gemini", Err: &gemini.APIError{StatusCode: 500}}, want: true},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			if got := retryable(tc.err); got != tc.want {
				t.Errorf("retryable(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
