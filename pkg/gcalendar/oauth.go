package gcalendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

// OAuthConfigFromJSON parses OAuth Desktop App credentials for the calendar scope.
func OAuthConfigFromJSON(credentialsJSON []byte) (*oauth2.Config, error) {
	cfg, err := google.ConfigFromJSON(credentialsJSON, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("gcalendar: not OAuth Desktop App credentials: %w", err)
	}
	return cfg, nil
}

// AuthCodeURL returns the consent URL the user opens to authorize offline access.
func AuthCodeURL(cfg *oauth2.Config, state string) string {
	return cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// ExchangeAndSave trades an authorization code for a token and writes it to path.
func ExchangeAndSave(ctx context.Context, cfg *oauth2.Config, code, path string) (*oauth2.Token, error) {
	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("gcalendar: exchange authorization code: %w", err)
	}
	if err := SaveToken(path, tok); err != nil {
		return nil, err
	}
	return tok, nil
}

// SaveToken writes tok as JSON with owner-only permissions.
func SaveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("gcalendar: create token file: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return fmt.Errorf("gcalendar: write token file: %w", err)
	}
	return nil
}

// LoadToken reads a token written by SaveToken.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, fmt.Errorf("gcalendar: read token file: %w", err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("gcalendar: parse token file: %w", err)
	}
	return &tok, nil
}
