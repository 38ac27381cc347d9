package gcalendar

import (
	"context"
	"fmt"
	"os"
)

// ICalendar is the calendar surface used for task reminders.
type ICalendar interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error)
}

// New creates a Calendar client from cfg. An explicit HTTPClient wins over
// credentials, which is how tests point the client at a fake server.
func New(ctx context.Context, cfg Config) (ICalendar, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.HTTPClient != nil {
		return NewClientFromHTTP(ctx, cfg.HTTPClient)
	}

	data, err := os.ReadFile(cfg.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return NewClientFromCredentialsJSON(ctx, data, cfg.TokenPath)
}
