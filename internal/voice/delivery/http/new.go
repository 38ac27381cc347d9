package http

import (
	"strings"

	"voice-task-board/internal/voice"
	"voice-task-board/pkg/log"
)

// DefaultAllowedMimeTypes are the upload content types browsers and the CLI send.
var DefaultAllowedMimeTypes = []string{
	"audio/webm",
	"audio/wav",
	"audio/mp3",
	"audio/mpeg",
	"audio/ogg",
	"video/webm",
	"application/octet-stream",
}

// Config bounds what the transcribe endpoint accepts.
type Config struct {
	MaxUploadBytes   int64
	AllowedMimeTypes []string
}

type handler struct {
	l            log.Logger
	uc           voice.UseCase
	maxBytes     int64
	allowedTypes map[string]bool
}

// New creates a new HTTP handler for the voice domain.
func New(l log.Logger, uc voice.UseCase, cfg Config) *handler {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	if len(cfg.AllowedMimeTypes) == 0 {
		cfg.AllowedMimeTypes = DefaultAllowedMimeTypes
	}
	allowed := make(map[string]bool, len(cfg.AllowedMimeTypes))
	for _, t := range cfg.AllowedMimeTypes {
		allowed[strings.ToLower(strings.TrimSpace(t))] = true
	}
	return &handler{
		l:            l,
		uc:           uc,
		maxBytes:     cfg.MaxUploadBytes,
		allowedTypes: allowed,
	}
}
