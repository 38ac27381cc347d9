package gcalendar

import (
	"net/http"
	"time"
)

const (
	DefaultCalendarID = "primary"
	DefaultTokenPath  = "token.json"
)

// Config holds what New needs to authorize against Google Calendar.
type Config struct {
	CredentialsPath string // Service Account or OAuth Desktop App JSON
	TokenPath       string // token.json written by `voicectl calendar-auth`
	HTTPClient      *http.Client
}

// Validate fills defaults and checks required fields.
func (c *Config) Validate() error {
	if c.CredentialsPath == "" && c.HTTPClient == nil {
		return ErrNoCredentials
	}
	if c.TokenPath == "" {
		c.TokenPath = DefaultTokenPath
	}
	return nil
}

// CreateEventRequest is the input for creating a Google Calendar event.
type CreateEventRequest struct {
	CalendarID  string
	Summary     string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Timezone    string // e.g. "America/New_York"
	// ReminderBefore adds a popup reminder this long before StartTime.
	// Zero keeps the calendar's default reminders.
	ReminderBefore time.Duration
}

// Event is a simplified representation of a Google Calendar event.
type Event struct {
	ID          string
	Summary     string
	Description string
	HtmlLink    string
	StartTime   time.Time
	EndTime     time.Time
}
