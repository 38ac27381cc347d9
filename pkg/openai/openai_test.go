package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"voice-task-board/pkg/openai"
)

func TestGenerateContent(t *testing.T) {
	var captured map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" || r.Header.Get("Authorization") != "Bearer k" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write([]byte(`{
			"id": "cmpl-1",
			"model": "gpt-3.5-turbo",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"title\":\"x\"}"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
		}`))
	}))
	defer ts.Close()

	client, err := openai.New(openai.Config{APIKey: "k", BaseURL: ts.URL + "/"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	resp, err := client.GenerateContent(context.Background(), &openai.Request{
		SystemInstruction: "extract",
		Messages:          []openai.Message{{Role: "user", Content: "buy milk"}},
		Temperature:       0.3,
		MaxTokens:         200,
		JSONMode:          true,
	})
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	if resp.Content.Content != `{"title":"x"}` || resp.Usage.TotalTokens != 15 {
		t.Errorf("unexpected response: %+v", resp)
	}

	msgs, _ := captured["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected system + user messages, got %v", captured["messages"])
	}
	if first, _ := msgs[0].(map[string]any); first["role"] != "system" {
		t.Errorf("first message should be system, got %v", first)
	}
	if rf, _ := captured["response_format"].(map[string]any); rf["type"] != "json_object" {
		t.Errorf("expected json_object response format, got %v", captured["response_format"])
	}
	if captured["temperature"] != 0.3 || captured["max_tokens"] != float64(200) {
		t.Errorf("sampling params not forwarded: %v", captured)
	}
}

func TestGenerateContent_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("quota"))
	}))
	defer ts.Close()

	client, _ := openai.New(openai.Config{APIKey: "k", BaseURL: ts.URL})
	_, err := client.GenerateContent(context.Background(), &openai.Request{})

	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 429 || apiErr.Body != "quota" {
		t.Fatalf("expected APIError 429, got %v", err)
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := openai.New(openai.Config{}); err == nil {
		t.Fatal("expected error without API key")
	}
	c, err := openai.New(openai.Config{APIKey: "k"})
	if err != nil || c.Model() != openai.DefaultModel {
		t.Fatalf("defaults not applied: %v %v", c, err)
	}
}
