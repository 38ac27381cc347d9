package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	tunnelAttempts = 10
	tunnelInterval = 3 * time.Second
)

type tunnelsResponse struct {
	Tunnels []struct {
		PublicURL string `json:"public_url"`
		Proto     string `json:"proto"`
	} `json:"tunnels"`
}

// detectTunnelURL asks a local ngrok agent for its public URL, preferring HTTPS.
// The agent may still be starting, so empty or failed answers are retried.
func detectTunnelURL(ctx context.Context, apiBase string, attempts int, interval time.Duration) (string, error) {
	endpoint := strings.TrimRight(apiBase, "/") + "/api/tunnels"
	client := &http.Client{Timeout: 5 * time.Second}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(interval):
			}
		}

		url, err := fetchTunnelURL(ctx, client, endpoint)
		if err == nil {
			return url, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("no tunnel after %d attempts: %w", attempts, lastErr)
}

func fetchTunnelURL(ctx context.Context, client *http.Client, endpoint string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body tunnelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode tunnels: %w", err)
	}
	for _, t := range body.Tunnels {
		if t.Proto == "https" {
			return t.PublicURL, nil
		}
	}
	if len(body.Tunnels) > 0 {
		return body.Tunnels[0].PublicURL, nil
	}
	return "", fmt.Errorf("no active tunnels")
}
