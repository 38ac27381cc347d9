package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrFileTooLarge is returned when a downloaded file exceeds the caller's limit.
var ErrFileTooLarge = errors.New("telegram: file too large")

// Bot is the Telegram Bot API client.
type Bot struct {
	token      string
	apiURL     string
	fileURL    string
	httpClient *http.Client
}

// NewBot creates a new Telegram Bot client with the given token.
func NewBot(token string) *Bot {
	return &Bot{
		token:      token,
		apiURL:     fmt.Sprintf("https://api.telegram.org/bot%s", token),
		fileURL:    fmt.Sprintf("https://api.telegram.org/file/bot%s", token),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetAPIURL overrides the default Telegram API URL for testing purposes.
func (b *Bot) SetAPIURL(url string) {
	b.apiURL = url
}

// SetFileURL overrides the file download base URL for testing purposes.
func (b *Bot) SetFileURL(url string) {
	b.fileURL = url
}

// SetWebhook registers the webhook URL with Telegram.
func (b *Bot) SetWebhook(webhookURL string) error {
	url := fmt.Sprintf("%s/setWebhook", b.apiURL)
	payload := map[string]string{"url": webhookURL}

	body, _ := json.Marshal(payload)
	resp, err := b.httpClient.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}
	defer resp.Body.Close()

	var apiResp APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("failed to decode webhook response: %w", err)
	}
	if !apiResp.OK {
		return fmt.Errorf("telegram setWebhook failed: %s", apiResp.Description)
	}
	return nil
}

// SendMessage sends a plain text message to a Telegram chat.
func (b *Bot) SendMessage(chatID int64, text string) error {
	return b.SendMessageWithMode(chatID, text, "")
}

// SendMessageWithMode sends a message with optional parse mode (e.g. "Markdown").
func (b *Bot) SendMessageWithMode(chatID int64, text string, parseMode string) error {
	url := fmt.Sprintf("%s/sendMessage", b.apiURL)
	payload := SendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: parseMode,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	resp, err := b.httpClient.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram sendMessage API error %d: %s", resp.StatusCode, string(raw))
	}

	return nil
}

// GetFile resolves a file_id to a downloadable file path.
func (b *Bot) GetFile(ctx context.Context, fileID string) (File, error) {
	u := fmt.Sprintf("%s/getFile?file_id=%s", b.apiURL, url.QueryEscape(fileID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return File{}, fmt.Errorf("failed to build getFile request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return File{}, fmt.Errorf("failed to get file: %w", err)
	}
	defer resp.Body.Close()

	var apiResp GetFileResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return File{}, fmt.Errorf("failed to decode getFile response: %w", err)
	}
	if !apiResp.OK || apiResp.Result.FilePath == "" {
		return File{}, fmt.Errorf("telegram getFile failed: %s", apiResp.Description)
	}
	return apiResp.Result, nil
}

// DownloadFile fetches a file previously resolved by GetFile. maxBytes <= 0 means no limit.
func (b *Bot) DownloadFile(ctx context.Context, filePath string, maxBytes int64) ([]byte, error) {
	u := fmt.Sprintf("%s/%s", b.fileURL, filePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram file download error %d", resp.StatusCode)
	}

	var r io.Reader = resp.Body
	if maxBytes > 0 {
		r = io.LimitReader(resp.Body, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, ErrFileTooLarge
	}
	return data, nil
}
