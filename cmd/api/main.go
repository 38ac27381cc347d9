package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voice-task-board/config"
	_ "voice-task-board/docs" // Swagger docs
	"voice-task-board/internal/httpserver"
	taskSQLite "voice-task-board/internal/task/repository/sqlite"
	taskUC "voice-task-board/internal/task/usecase"
	"voice-task-board/internal/voice/extractor"
	voiceHTTP "voice-task-board/internal/voice/delivery/http"
	tgDelivery "voice-task-board/internal/voice/delivery/telegram"
	voiceUC "voice-task-board/internal/voice/usecase"
	"voice-task-board/pkg/gcalendar"
	"voice-task-board/pkg/llmprovider"
	"voice-task-board/pkg/log"
	"voice-task-board/pkg/telegram"
	"voice-task-board/pkg/whisper"
)

// @title       Voice Task Board API
// @description Kanban task board with voice capture: recordings are transcribed and turned into structured tasks.
// @version     1
// @host        localhost:3001
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Errorf(ctx, "voice-task-board: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "Server stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, logger log.Logger) error {
	logger.Info(ctx, "Starting Voice Task Board...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Task store
	db, err := taskSQLite.Open(ctx, cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open task store: %w", err)
	}
	defer db.Close()
	logger.Infof(ctx, "Task store: %s", cfg.Database.Path)

	// Google Calendar client (optional)
	var calendar gcalendar.ICalendar
	if cfg.GoogleCalendar.CredentialsPath != "" {
		calendar, err = gcalendar.New(ctx, gcalendar.Config{
			CredentialsPath: cfg.GoogleCalendar.CredentialsPath,
			TokenPath:       cfg.GoogleCalendar.TokenPath,
		})
		if err != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", err)
			logger.Warn(ctx, "→ Run `voicectl calendar-auth` to generate token.json")
			calendar = nil
		} else {
			logger.Info(ctx, "✅ Google Calendar initialized")
		}
	}

	tasks := taskUC.New(logger, taskSQLite.New(db, logger), taskUC.CalendarConfig{
		Client:          calendar,
		CalendarID:      cfg.GoogleCalendar.CalendarID,
		EventDuration:   cfg.GoogleCalendar.EventDuration,
		ReminderBefore:  cfg.GoogleCalendar.ReminderBefore,
		DefaultTimezone: cfg.Voice.DefaultTimezone,
	})

	// 4. Voice pipeline
	transcriber, err := whisper.New(whisper.Config{
		APIKey:        cfg.Speech.APIKey,
		BaseURL:       cfg.Speech.BaseURL,
		Model:         cfg.Speech.Model,
		Language:      cfg.Speech.Language,
		Timeout:       cfg.Speech.Timeout,
		RetryAttempts: cfg.Speech.RetryAttempts,
		RetryDelay:    cfg.Speech.RetryDelay,
	})
	if err != nil {
		return fmt.Errorf("init transcription client: %w", err)
	}

	providers, err := llmprovider.InitializeProviders(ctx, &cfg.LLM, logger)
	if err != nil {
		return fmt.Errorf("init llm providers: %w", err)
	}
	manager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      parseDuration(cfg.LLM.RetryDelay, 500*time.Millisecond),
		MaxTotalTimeout: parseDuration(cfg.LLM.MaxTotalTimeout, 30*time.Second),
	}, logger)

	fields := extractor.New(manager, logger,
		extractor.WithTemperature(cfg.LLM.Temperature),
		extractor.WithMaxTokens(cfg.LLM.MaxTokens),
	)

	voice := voiceUC.New(logger, transcriber, fields, tasks, cfg.Voice.DefaultTimezone)

	// 5. Telegram (optional)
	var telegramHandler tgDelivery.Handler
	if cfg.Telegram.BotToken != "" {
		bot := telegram.NewBot(cfg.Telegram.BotToken)
		telegramHandler = tgDelivery.New(logger, voice, bot, tgDelivery.Config{
			Timezone:      cfg.Voice.DefaultTimezone,
			MaxVoiceBytes: int64(cfg.Voice.MaxUploadMB) << 20,
		})
		go registerWebhook(ctx, logger, bot, cfg.Telegram)
	} else {
		logger.Info(ctx, "Telegram skipped: TELEGRAM_BOT_TOKEN is not set")
	}

	// 6. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:       logger,
		Port:         cfg.HTTPServer.Port,
		Mode:         cfg.HTTPServer.Mode,
		Environment:  cfg.Environment.Name,
		AllowOrigins: cfg.HTTPServer.AllowOrigins,
		TaskUseCase:  tasks,
		VoiceUseCase: voice,
		Voice: voiceHTTP.Config{
			MaxUploadBytes:   int64(cfg.Voice.MaxUploadMB) << 20,
			AllowedMimeTypes: cfg.Voice.AllowedMimeTypes,
		},
		RateLimitPerMin: cfg.Voice.RateLimitPerMin,
		TelegramHandler: telegramHandler,
	})
	if err != nil {
		return fmt.Errorf("init http server: %w", err)
	}

	// 7. Run
	return httpServer.Run(ctx)
}

// registerWebhook points Telegram at this service, discovering the URL from a
// local tunnel when none is configured.
func registerWebhook(ctx context.Context, logger log.Logger, bot *telegram.Bot, cfg config.TelegramConfig) {
	webhookURL := cfg.WebhookURL
	if webhookURL == "" && cfg.TunnelAPI != "" {
		tunnelURL, err := detectTunnelURL(ctx, cfg.TunnelAPI, tunnelAttempts, tunnelInterval)
		if err != nil {
			logger.Warnf(ctx, "Could not detect tunnel URL: %v", err)
			return
		}
		webhookURL = tunnelURL + "/webhook/telegram"
		logger.Infof(ctx, "Auto-detected tunnel URL: %s", webhookURL)
	}
	if webhookURL == "" {
		logger.Warn(ctx, "Telegram webhook URL not set; the bot will not receive updates")
		return
	}

	if err := bot.SetWebhook(webhookURL); err != nil {
		logger.Warnf(ctx, "Failed to set Telegram webhook: %v", err)
		return
	}
	logger.Infof(ctx, "✅ Telegram webhook registered at %s", webhookURL)
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
