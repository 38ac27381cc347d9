package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"voice-task-board/internal/voice"
	pkgResponse "voice-task-board/pkg/response"
	pkgTelegram "voice-task-board/pkg/telegram"
)

const (
	startMessage = "👋 Welcome to *Voice Task Board*!\n\nSend me a voice note or a message describing a task and I will add it to your board with its priority and due date.\n\n_Example: \"Call the vendor by Tuesday at 5 PM, high priority\"_"
	helpMessage  = "*How to use:*\n\nRecord a voice note or type a task in plain language, for example:\n`Urgent: submit the expense report tomorrow morning`\n\nPriority words: low, medium, high, urgent.\nDates: today, tomorrow, next Friday, June 15, in 3 days, at 5 PM."
)

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the message in a background
// goroutine; transcription plus extraction can outlast Telegram's webhook timeout.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err)
		return
	}

	// Ignore non-message updates (polls, channel_post, etc.)
	if update.Message == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	// Snapshot the message before spawning goroutine to avoid data races on gin context
	msg := update.Message

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), h.cfg.ProcessTimeout)
		defer cancel()
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: background processMessage failed: %v", err)
			_ = h.bot.SendMessage(msg.Chat.ID, errorMessage(err))
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage handles a single Telegram message.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	if v := voiceOf(msg); v != nil {
		return h.processVoice(ctx, msg.Chat.ID, v)
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}

	switch text {
	case "/start":
		return h.bot.SendMessageWithMode(msg.Chat.ID, startMessage, "Markdown")
	case "/help":
		return h.bot.SendMessageWithMode(msg.Chat.ID, helpMessage, "Markdown")
	}
	if strings.HasPrefix(text, "/") {
		return h.bot.SendMessage(msg.Chat.ID, "Unknown command. Try /help.")
	}

	out, err := h.uc.CreateFromText(ctx, voice.ParseInput{Transcript: text, Timezone: h.cfg.Timezone})
	if err != nil {
		return err
	}
	return h.bot.SendMessageWithMode(msg.Chat.ID, formatCreated(out, false, h.loc), "Markdown")
}

func (h *handler) processVoice(ctx context.Context, chatID int64, v *pkgTelegram.Voice) error {
	if v.FileSize > h.cfg.MaxVoiceBytes {
		return pkgTelegram.ErrFileTooLarge
	}

	if err := h.bot.SendMessage(chatID, "⏳ Transcribing..."); err != nil {
		h.l.Warnf(ctx, "telegram handler: failed to send ack message: %v", err)
	}

	f, err := h.bot.GetFile(ctx, v.FileID)
	if err != nil {
		return fmt.Errorf("bot.GetFile: %w", err)
	}
	audio, err := h.bot.DownloadFile(ctx, f.FilePath, h.cfg.MaxVoiceBytes)
	if err != nil {
		return fmt.Errorf("bot.DownloadFile: %w", err)
	}

	out, err := h.uc.CreateFromVoice(ctx, voice.ProcessInput{
		Audio:    audio,
		Filename: filenameFor(f.FilePath, v.MimeType),
		Timezone: h.cfg.Timezone,
	})
	if err != nil {
		return err
	}
	return h.bot.SendMessageWithMode(chatID, formatCreated(out, true, h.loc), "Markdown")
}

func voiceOf(msg *pkgTelegram.Message) *pkgTelegram.Voice {
	if msg.Voice != nil {
		return msg.Voice
	}
	return msg.Audio
}

// filenameFor picks a name whose extension the speech service recognises.
// Telegram voice notes are Ogg/Opus stored as .oga.
func filenameFor(filePath, mimeType string) string {
	name := filePath
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	switch {
	case strings.HasSuffix(name, ".oga"):
		return strings.TrimSuffix(name, ".oga") + ".ogg"
	case strings.Contains(name, "."):
		return name
	case mimeType == "audio/mpeg":
		return "voice.mp3"
	default:
		return "voice.ogg"
	}
}

func formatCreated(out voice.CreateFromVoiceOutput, spoken bool, loc *time.Location) string {
	t := out.Task
	var b strings.Builder
	b.WriteString("✅ Task created\n\n")
	fmt.Fprintf(&b, "*%s*\n", escapeMarkdown(t.Title))
	fmt.Fprintf(&b, "Priority: %s\nStatus: %s\n", t.Priority, t.Status)
	if t.DueDate != nil {
		fmt.Fprintf(&b, "Due: %s\n", t.DueDate.In(loc).Format("Mon Jan 2, 2006 15:04 MST"))
	}
	if spoken {
		fmt.Fprintf(&b, "\n_Heard:_ %s", escapeMarkdown(out.Transcript))
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
