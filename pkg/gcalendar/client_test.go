package gcalendar_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"voice-task-board/pkg/gcalendar"
)

type rewriteTransport struct {
	Transport http.RoundTripper
	Host      string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.Host
	return t.Transport.RoundTrip(req)
}

const mockCreds = `{
	"installed": {
		"client_id": "test-client-id.apps.googleusercontent.com",
		"project_id": "test-project",
		"auth_uri": "https://accounts.google.com/o/oauth2/auth",
		"token_uri": "https://oauth2.googleapis.com/token",
		"client_secret": "test-secret",
		"redirect_uris": ["http://localhost"]
	}
}`

func fakeServerClient(t *testing.T, h http.HandlerFunc) *http.Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	c := ts.Client()
	c.Transport = &rewriteTransport{
		Transport: c.Transport,
		Host:      strings.TrimPrefix(ts.URL, "http://"),
	}
	return c
}

func TestNew(t *testing.T) {
	dir := t.TempDir()
	credsPath := filepath.Join(dir, "creds.json")
	tokenPath := filepath.Join(dir, "token.json")
	if err := os.WriteFile(credsPath, []byte(mockCreds), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("no credentials", func(t *testing.T) {
		_, err := gcalendar.New(context.Background(), gcalendar.Config{})
		if !errors.Is(err, gcalendar.ErrNoCredentials) {
			t.Fatalf("expected ErrNoCredentials, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := gcalendar.New(context.Background(), gcalendar.Config{CredentialsPath: filepath.Join(dir, "nope.json")})
		if err == nil {
			t.Fatal("expected read error")
		}
	})

	t.Run("broken credentials", func(t *testing.T) {
		_, err := gcalendar.NewClientFromCredentialsJSON(context.Background(), []byte(`{"broken":true}`), tokenPath)
		if err == nil {
			t.Fatal("expected decoding failure")
		}
	})

	t.Run("desktop credentials without token", func(t *testing.T) {
		_, err := gcalendar.New(context.Background(), gcalendar.Config{CredentialsPath: credsPath, TokenPath: tokenPath})
		if !errors.Is(err, gcalendar.ErrNoToken) {
			t.Fatalf("expected ErrNoToken, got %v", err)
		}
	})

	t.Run("desktop credentials with bad token", func(t *testing.T) {
		if err := os.WriteFile(tokenPath, []byte(`{"broken": true`), 0o600); err != nil {
			t.Fatal(err)
		}
		defer os.Remove(tokenPath)

		_, err := gcalendar.New(context.Background(), gcalendar.Config{CredentialsPath: credsPath, TokenPath: tokenPath})
		if err == nil {
			t.Fatal("expected parsing to fail on bad token")
		}
	})

	t.Run("desktop credentials with saved token", func(t *testing.T) {
		tok := &oauth2.Token{AccessToken: "dummy", TokenType: "Bearer", Expiry: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
		if err := gcalendar.SaveToken(tokenPath, tok); err != nil {
			t.Fatalf("SaveToken: %v", err)
		}
		defer os.Remove(tokenPath)

		if _, err := gcalendar.New(context.Background(), gcalendar.Config{CredentialsPath: credsPath, TokenPath: tokenPath}); err != nil {
			t.Fatalf("expected client, got %v", err)
		}
	})
}

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	want := &oauth2.Token{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer"}

	if err := gcalendar.SaveToken(path, want); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("token file mode = %v, want 0600", info.Mode().Perm())
	}

	got, err := gcalendar.LoadToken(path)
	if err != nil {
		t.Fatalf("LoadToken: %v", err)
	}
	if got.AccessToken != "a" || got.RefreshToken != "r" {
		t.Errorf("unexpected token %+v", got)
	}
}

func TestAuthCodeURL(t *testing.T) {
	cfg, err := gcalendar.OAuthConfigFromJSON([]byte(mockCreds))
	if err != nil {
		t.Fatalf("OAuthConfigFromJSON: %v", err)
	}
	u := gcalendar.AuthCodeURL(cfg, "state-token")
	for _, want := range []string{"access_type=offline", "client_id=test-client-id", "state=state-token"} {
		if !strings.Contains(u, want) {
			t.Errorf("auth URL %q missing %q", u, want)
		}
	}

	if _, err := gcalendar.OAuthConfigFromJSON([]byte(`{}`)); err == nil {
		t.Error("expected error for non-desktop credentials")
	}
}

func TestCreateEvent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var body string
		client := fakeServerClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/calendar/v3/calendars/primary/events" && r.Method == http.MethodPost {
				b, _ := io.ReadAll(r.Body)
				body = string(b)
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(`{"id": "event-123", "htmlLink": "https://calendar.google.com/event-uri", "status": "confirmed"}`))
				return
			}
			w.WriteHeader(http.StatusNotFound)
		})

		cal, err := gcalendar.New(context.Background(), gcalendar.Config{HTTPClient: client})
		if err != nil {
			t.Fatalf("unexpected error creating client: %v", err)
		}

		start := time.Date(2024, 6, 11, 21, 0, 0, 0, time.UTC)
		event, err := cal.CreateEvent(context.Background(), gcalendar.CreateEventRequest{
			Summary:   "Call the vendor",
			StartTime: start,
			EndTime:   start.Add(30 * time.Minute),
			Timezone:  "America/New_York",

			ReminderBefore: 15 * time.Minute,
		})
		if err != nil {
			t.Fatalf("failed to create event: %v", err)
		}
		if !strings.Contains(body, `"useDefault":false`) || !strings.Contains(body, `"minutes":15`) {
			t.Errorf("reminder override missing from %s", body)
		}
		if event.ID != "event-123" || event.HtmlLink != "https://calendar.google.com/event-uri" {
			t.Errorf("unexpected event: %+v", event)
		}
		if !strings.Contains(body, "2024-06-11T21:00:00Z") || !strings.Contains(body, "America/New_York") {
			t.Errorf("unexpected request body %s", body)
		}
	})

	t.Run("api error", func(t *testing.T) {
		client := fakeServerClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		cal, _ := gcalendar.NewClientFromHTTP(context.Background(), client)
		_, err := cal.CreateEvent(context.Background(), gcalendar.CreateEventRequest{
			Summary:   "Title",
			StartTime: time.Now(),
			EndTime:   time.Now().Add(time.Hour),
		})
		if err == nil {
			t.Fatal("expected error")
		}
	})
}
