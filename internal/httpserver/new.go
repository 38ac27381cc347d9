package httpserver

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"voice-task-board/internal/middleware"
	"voice-task-board/internal/task"
	"voice-task-board/internal/voice"
	voiceHTTP "voice-task-board/internal/voice/delivery/http"
	tgDelivery "voice-task-board/internal/voice/delivery/telegram"
	"voice-task-board/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin             *gin.Engine
	l               log.Logger
	port            int
	mode            string
	environment     string
	shutdownTimeout time.Duration
	allowOrigins    []string
	mw              middleware.Middleware

	// Domains
	taskUC          task.UseCase
	voiceUC         voice.UseCase
	voiceCfg        voiceHTTP.Config
	telegramHandler tgDelivery.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger          log.Logger
	Port            int
	Mode            string
	Environment     string
	AllowOrigins    []string
	ShutdownTimeout time.Duration

	// Task board
	TaskUseCase task.UseCase

	// Voice pipeline
	VoiceUseCase    voice.UseCase
	Voice           voiceHTTP.Config
	RateLimitPerMin int

	// Optional Telegram bot
	TelegramHandler tgDelivery.Handler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		shutdownTimeout: cfg.ShutdownTimeout,
		allowOrigins:    cfg.AllowOrigins,
		mw: middleware.New(logger, middleware.Config{
			AllowOrigins:    cfg.AllowOrigins,
			RateLimitPerMin: cfg.RateLimitPerMin,
		}),
		taskUC:          cfg.TaskUseCase,
		voiceUC:         cfg.VoiceUseCase,
		voiceCfg:        cfg.Voice,
		telegramHandler: cfg.TelegramHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.taskUC == nil {
		return errors.New("task use case is required")
	}
	if srv.voiceUC == nil {
		return errors.New("voice use case is required")
	}
	return nil
}

// Handler exposes the router, mainly for tests.
func (srv *HTTPServer) Handler() *gin.Engine {
	return srv.gin
}
