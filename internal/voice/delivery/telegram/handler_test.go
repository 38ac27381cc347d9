package telegram

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"voice-task-board/internal/model"
	"voice-task-board/internal/voice"
	"voice-task-board/pkg/log"
	pkgTelegram "voice-task-board/pkg/telegram"
)

type mockBot struct {
	mu        sync.Mutex
	sent      []string
	fileErr   error
	audio     []byte
	sentReady chan struct{}
}

func (m *mockBot) record(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, text)
	if m.sentReady != nil {
		select {
		case m.sentReady <- struct{}{}:
		default:
		}
	}
	return nil
}

func (m *mockBot) SendMessage(chatID int64, text string) error { return m.record(text) }

func (m *mockBot) SendMessageWithMode(chatID int64, text string, parseMode string) error {
	return m.record(text)
}

func (m *mockBot) GetFile(ctx context.Context, fileID string) (pkgTelegram.File, error) {
	if m.fileErr != nil {
		return pkgTelegram.File{}, m.fileErr
	}
	return pkgTelegram.File{FileID: fileID, FilePath: "voice/file_7.oga"}, nil
}

func (m *mockBot) DownloadFile(ctx context.Context, filePath string, maxBytes int64) ([]byte, error) {
	return m.audio, nil
}

func (m *mockBot) last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return ""
	}
	return m.sent[len(m.sent)-1]
}

type mockVoice struct {
	voice.UseCase
	voiceIn voice.ProcessInput
	textIn  voice.ParseInput
	err     error
}

var due = time.Date(2024, 6, 11, 21, 0, 0, 0, time.UTC)

func (m *mockVoice) CreateFromVoice(ctx context.Context, in voice.ProcessInput) (voice.CreateFromVoiceOutput, error) {
	m.voiceIn = in
	return voice.CreateFromVoiceOutput{
		Transcript: "call the vendor tomorrow at 5 pm",
		Task:       model.Task{ID: "t1", Title: "call_the vendor", Priority: model.PriorityHigh, Status: model.StatusToDo, DueDate: &due},
	}, m.err
}

func (m *mockVoice) CreateFromText(ctx context.Context, in voice.ParseInput) (voice.CreateFromVoiceOutput, error) {
	m.textIn = in
	return voice.CreateFromVoiceOutput{
		Transcript: in.Transcript,
		Task:       model.Task{ID: "t2", Title: in.Transcript, Priority: model.PriorityMedium, Status: model.StatusToDo},
	}, m.err
}

func newTestHandler(uc voice.UseCase, bot *mockBot) *handler {
	return New(log.NewNop(), uc, bot, Config{Timezone: "America/New_York", MaxVoiceBytes: 1024}).(*handler)
}

func TestProcessMessage_Voice(t *testing.T) {
	bot := &mockBot{audio: []byte("OggS")}
	uc := &mockVoice{}
	h := newTestHandler(uc, bot)

	msg := &pkgTelegram.Message{Chat: &pkgTelegram.Chat{ID: 1}, Voice: &pkgTelegram.Voice{FileID: "f1", MimeType: "audio/ogg"}}
	if err := h.processMessage(context.Background(), msg); err != nil {
		t.Fatalf("processMessage: %v", err)
	}
	if string(uc.voiceIn.Audio) != "OggS" || uc.voiceIn.Filename != "file_7.ogg" || uc.voiceIn.Timezone != "America/New_York" {
		t.Errorf("unexpected input %+v", uc.voiceIn)
	}
	reply := bot.last()
	for _, want := range []string{"call\\_the vendor", "Priority: High", "Tue Jun 11, 2024 17:00 EDT", "_Heard:_"} {
		if !strings.Contains(reply, want) {
			t.Errorf("reply %q missing %q", reply, want)
		}
	}
}

func TestProcessMessage_Errors(t *testing.T) {
	tcs := map[string]struct {
		msg     *pkgTelegram.Message
		bot     *mockBot
		ucErr   error
		wantErr error
	}{
		"too_large": {
			msg:     &pkgTelegram.Message{Chat: &pkgTelegram.Chat{ID: 1}, Voice: &pkgTelegram.Voice{FileID: "f", FileSize: 4096}},
			bot:     &mockBot{},
			wantErr: pkgTelegram.ErrFileTooLarge,
		},
		"empty_transcript": {
			msg:     &pkgTelegram.Message{Chat: &pkgTelegram.Chat{ID: 1}, Voice: &pkgTelegram.Voice{FileID: "f"}},
			bot:     &mockBot{audio: []byte("x")},
			ucErr:   voice.ErrEmptyTranscript,
			wantErr: voice.ErrEmptyTranscript,
		},
		"get_file_failed": {
			msg:     &pkgTelegram.Message{Chat: &pkgTelegram.Chat{ID: 1}, Audio: &pkgTelegram.Voice{FileID: "f"}},
			bot:     &mockBot{fileErr: errors.New("boom")},
			wantErr: nil,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			h := newTestHandler(&mockVoice{err: tc.ucErr}, tc.bot)
			err := h.processMessage(context.Background(), tc.msg)
			if err == nil {
				t.Fatal("expected error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
			if errorMessage(err) == "" {
				t.Error("empty user-facing message")
			}
		})
	}
}

func TestProcessMessage_Text(t *testing.T) {
	tcs := map[string]struct {
		text      string
		wantReply string
		created   bool
	}{
		"start":   {text: "/start", wantReply: "Welcome"},
		"help":    {text: "/help", wantReply: "How to use"},
		"unknown": {text: "/foo", wantReply: "Unknown command"},
		"task":    {text: "buy milk tomorrow", wantReply: "Task created", created: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			bot := &mockBot{}
			uc := &mockVoice{}
			h := newTestHandler(uc, bot)
			if err := h.processMessage(context.Background(), &pkgTelegram.Message{Chat: &pkgTelegram.Chat{ID: 1}, Text: tc.text}); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(bot.last(), tc.wantReply) {
				t.Errorf("reply = %q, want %q", bot.last(), tc.wantReply)
			}
			if got := uc.textIn.Transcript != ""; got != tc.created {
				t.Errorf("created = %v, want %v", got, tc.created)
			}
			if tc.created && uc.textIn.Timezone != "America/New_York" {
				t.Errorf("timezone = %q", uc.textIn.Timezone)
			}
		})
	}
}

func TestHandleWebhook(t *testing.T) {
	gin.SetMode(gin.TestMode)
	bot := &mockBot{sentReady: make(chan struct{}, 1)}
	h := newTestHandler(&mockVoice{}, bot)
	r := gin.New()
	r.POST("/webhook/telegram", h.HandleWebhook)

	send := func(body string) int {
		req := httptest.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := send(`{"update_id":1}`); code != http.StatusOK {
		t.Errorf("ignored update status = %d", code)
	}
	if code := send(`{`); code != http.StatusBadRequest {
		t.Errorf("bad json status = %d", code)
	}
	if code := send(`{"update_id":2,"message":{"message_id":1,"chat":{"id":5,"type":"private"},"text":"/help"}}`); code != http.StatusOK {
		t.Fatalf("accepted status = %d", code)
	}

	select {
	case <-bot.sentReady:
	case <-time.After(2 * time.Second):
		t.Fatal("background processing did not reply")
	}
	if !strings.Contains(bot.last(), "How to use") {
		t.Errorf("reply = %q", bot.last())
	}
}
