package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"
	"time"
)

// newWhisperImpl creates a new transcription implementation
func newWhisperImpl(cfg Config) *whisperImpl {
	return &whisperImpl{
		apiKey:        cfg.APIKey,
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		model:         cfg.Model,
		language:      cfg.Language,
		retryAttempts: cfg.RetryAttempts,
		retryDelay:    cfg.RetryDelay,
		httpClient:    cfg.HTTPClient,
	}
}

// Transcribe uploads audio as multipart form data and returns the transcript.
// Transport errors, 429 and 5xx responses are retried with linear backoff.
func (w *whisperImpl) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if filename == "" {
		filename = "recording.webm"
	}

	var lastErr error
	for attempt := 0; attempt < w.retryAttempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * w.retryDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", &ServiceError{Err: ctx.Err()}
			}
		}

		text, err := w.transcribeOnce(ctx, audio, filename)
		if err == nil {
			return text, nil
		}
		lastErr = err

		var svcErr *ServiceError
		if !errors.As(err, &svcErr) || !svcErr.Temporary() || ctx.Err() != nil {
			return "", err
		}
	}

	return "", lastErr
}

func (w *whisperImpl) transcribeOnce(ctx context.Context, audio []byte, filename string) (string, error) {
	body, contentType, err := w.buildForm(audio, filename)
	if err != nil {
		return "", &ServiceError{Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		w.baseURL+"/audio/transcriptions", body)
	if err != nil {
		return "", &ServiceError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	httpReq.Header.Set("Authorization", "Bearer "+w.apiKey)
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := w.httpClient.Do(httpReq)
	if err != nil {
		return "", &ServiceError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &ServiceError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var out transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &ServiceError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	text := strings.TrimSpace(out.Text)
	if text == "" {
		return "", ErrEmptyTranscript
	}
	return text, nil
}

func (w *whisperImpl) buildForm(audio []byte, filename string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filename)))
	h.Set("Content-Type", contentTypeFor(filename))
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, "", fmt.Errorf("failed to write audio: %w", err)
	}

	if err := mw.WriteField("model", w.model); err != nil {
		return nil, "", err
	}
	if err := mw.WriteField("language", w.language); err != nil {
		return nil, "", err
	}
	if err := mw.WriteField("response_format", "json"); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}

	return &buf, mw.FormDataContentType(), nil
}

var audioContentTypes = map[string]string{
	".webm": "audio/webm",
	".wav":  "audio/wav",
	".mp3":  "audio/mpeg",
	".mpeg": "audio/mpeg",
	".m4a":  "audio/mp4",
	".mp4":  "audio/mp4",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".flac": "audio/flac",
}

func contentTypeFor(filename string) string {
	if ct, ok := audioContentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

func escapeQuotes(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
