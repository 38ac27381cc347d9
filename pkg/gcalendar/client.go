package gcalendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Client wraps the Google Calendar API service.
type Client struct {
	service *calendar.Service
}

// NewClientFromCredentialsJSON creates a Calendar client from Service Account JSON,
// or from OAuth Desktop App JSON plus the token stored at tokenPath.
func NewClientFromCredentialsJSON(ctx context.Context, credentialsJSON []byte, tokenPath string) (*Client, error) {
	// Try service account first
	jwtConfig, err := google.JWTConfigFromJSON(credentialsJSON, calendar.CalendarScope)
	if err == nil {
		svc, svcErr := calendar.NewService(ctx, option.WithTokenSource(jwtConfig.TokenSource(ctx)))
		if svcErr != nil {
			return nil, fmt.Errorf("failed to create calendar service: %w", svcErr)
		}
		return &Client{service: svc}, nil
	}

	oauthConfig, oauthErr := OAuthConfigFromJSON(credentialsJSON)
	if oauthErr != nil {
		return nil, fmt.Errorf("unsupported credentials format: %w", err)
	}

	tok, err := LoadToken(tokenPath)
	if err != nil {
		return nil, err
	}

	svc, err := calendar.NewService(ctx, option.WithTokenSource(oauthConfig.TokenSource(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service from OAuth token: %w", err)
	}
	return &Client{service: svc}, nil
}

// NewClientFromHTTP creates a Calendar client from a pre-configured HTTP client.
func NewClientFromHTTP(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &Client{service: svc}, nil
}

// CreateEvent inserts an event and returns its id and browser link.
func (c *Client) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	event := &calendar.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Start: &calendar.EventDateTime{
			DateTime: req.StartTime.Format(time.RFC3339),
			TimeZone: req.Timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: req.EndTime.Format(time.RFC3339),
			TimeZone: req.Timezone,
		},
	}

	if req.ReminderBefore > 0 {
		event.Reminders = &calendar.EventReminders{
			UseDefault:      false,
			Overrides:       []*calendar.EventReminder{{Method: "popup", Minutes: int64(req.ReminderBefore / time.Minute)}},
			ForceSendFields: []string{"UseDefault"},
		}
	}

	calendarID := req.CalendarID
	if calendarID == "" {
		calendarID = DefaultCalendarID
	}

	created, err := c.service.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}

	return &Event{
		ID:          created.Id,
		Summary:     created.Summary,
		Description: created.Description,
		HtmlLink:    created.HtmlLink,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}, nil
}
