package telegram

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"voice-task-board/internal/voice"
	pkgLog "voice-task-board/pkg/log"
	pkgTelegram "voice-task-board/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// Bot is the part of the Telegram client the handler needs.
type Bot interface {
	SendMessage(chatID int64, text string) error
	SendMessageWithMode(chatID int64, text string, parseMode string) error
	GetFile(ctx context.Context, fileID string) (pkgTelegram.File, error)
	DownloadFile(ctx context.Context, filePath string, maxBytes int64) ([]byte, error)
}

// Config controls how voice notes are handled.
type Config struct {
	Timezone       string        // timezone applied to every chat
	MaxVoiceBytes  int64         // larger voice notes are rejected
	ProcessTimeout time.Duration // per update, detached from the webhook request
}

type handler struct {
	l   pkgLog.Logger
	uc  voice.UseCase
	bot Bot
	cfg Config
	loc *time.Location
}

// New creates a new Telegram delivery handler.
func New(l pkgLog.Logger, uc voice.UseCase, bot Bot, cfg Config) Handler {
	if cfg.MaxVoiceBytes <= 0 {
		cfg.MaxVoiceBytes = 10 << 20
	}
	if cfg.ProcessTimeout <= 0 {
		cfg.ProcessTimeout = 2 * time.Minute
	}
	return &handler{
		l:   l,
		uc:  uc,
		bot: bot,
		cfg: cfg,
		loc: voice.NewTimeContext(time.Time{}, cfg.Timezone).Location,
	}
}
