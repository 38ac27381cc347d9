package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Task store
	Database DatabaseConfig

	// Voice pipeline
	Speech SpeechConfig
	LLM    LLMConfig
	Voice  VoiceConfig

	// Optional integrations
	Telegram       TelegramConfig
	GoogleCalendar GoogleCalendarConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port         int
	Mode         string
	AllowOrigins []string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type DatabaseConfig struct {
	Path string // sqlite file path, or ":memory:"
}

// SpeechConfig configures the remote transcription engine.
type SpeechConfig struct {
	APIKey        string
	BaseURL       string
	Model         string
	Language      string
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// VoiceConfig configures the voice submission endpoints.
type VoiceConfig struct {
	DefaultTimezone  string
	MaxUploadMB      int
	RateLimitPerMin  int
	AllowedMimeTypes []string
}

type TelegramConfig struct {
	BotToken   string
	WebhookURL string
	TunnelAPI  string // local ngrok API used to discover WebhookURL in development
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	TokenPath       string
	CalendarID      string
	EventDuration   time.Duration
	ReminderBefore  time.Duration
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"` // Global timeout for entire fallback chain
	Temperature     float64          `yaml:"temperature"`
	MaxTokens       int              `yaml:"max_tokens"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.AllowOrigins = splitList(viper.GetString("http_server.allow_origins"))
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Task store
	cfg.Database.Path = viper.GetString("database.path")

	// Speech-to-text
	cfg.Speech.APIKey = expandEnvVar(viper.GetString("speech.api_key"))
	if key := viper.GetString("openai_api_key"); cfg.Speech.APIKey == "" && key != "" {
		cfg.Speech.APIKey = key
	}
	cfg.Speech.BaseURL = viper.GetString("speech.base_url")
	cfg.Speech.Model = viper.GetString("speech.model")
	cfg.Speech.Language = viper.GetString("speech.language")
	cfg.Speech.Timeout = viper.GetDuration("speech.timeout")
	cfg.Speech.RetryAttempts = viper.GetInt("speech.retry_attempts")
	cfg.Speech.RetryDelay = viper.GetDuration("speech.retry_delay")

	// Voice endpoints
	cfg.Voice.DefaultTimezone = viper.GetString("voice.default_timezone")
	cfg.Voice.MaxUploadMB = viper.GetInt("voice.max_upload_mb")
	cfg.Voice.RateLimitPerMin = viper.GetInt("voice.rate_limit_per_min")
	cfg.Voice.AllowedMimeTypes = splitList(viper.GetString("voice.allowed_mime_types"))

	// Telegram
	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	cfg.Telegram.TunnelAPI = viper.GetString("telegram.tunnel_api")
	if tgToken := viper.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}

	// Google Calendar
	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.TokenPath = viper.GetString("google_calendar.token_path")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	cfg.GoogleCalendar.EventDuration = viper.GetDuration("google_calendar.event_duration")
	cfg.GoogleCalendar.ReminderBefore = viper.GetDuration("google_calendar.reminder_before")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")
	cfg.LLM.Temperature = viper.GetFloat64("llm.temperature")
	cfg.LLM.MaxTokens = viper.GetInt("llm.max_tokens")

	// Load provider configurations
	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	// With no providers configured, extraction goes to the default OpenAI chat model
	// using the speech key, mirroring a single-key deployment.
	if len(cfg.LLM.Providers) == 0 && cfg.Speech.APIKey != "" {
		cfg.LLM.Providers = []ProviderConfig{{
			Name:     "openai",
			Enabled:  true,
			Priority: 1,
			APIKey:   cfg.Speech.APIKey,
			Model:    viper.GetString("llm.default_model"),
		}}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate fails fast on missing credentials so a misconfigured service never
// starts accepting recordings.
func (c *Config) Validate() error {
	if c.Speech.APIKey == "" {
		return fmt.Errorf("speech.api_key (or OPENAI_API_KEY) is required")
	}
	if c.Voice.MaxUploadMB <= 0 {
		return fmt.Errorf("voice.max_upload_mb must be positive")
	}
	if c.Voice.DefaultTimezone != "" {
		if _, err := time.LoadLocation(c.Voice.DefaultTimezone); err != nil {
			return fmt.Errorf("voice.default_timezone: %w", err)
		}
	}
	return validateLLMConfig(&c.LLM)
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 3001)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("http_server.allow_origins", "*")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("database.path", "tasks.db")

	viper.SetDefault("speech.base_url", "https://api.openai.com/v1")
	viper.SetDefault("speech.model", "whisper-1")
	viper.SetDefault("speech.language", "en")
	viper.SetDefault("speech.timeout", "60s")
	viper.SetDefault("speech.retry_attempts", 3)
	viper.SetDefault("speech.retry_delay", "1s")

	viper.SetDefault("voice.default_timezone", "UTC")
	viper.SetDefault("voice.max_upload_mb", 10)
	viper.SetDefault("voice.rate_limit_per_min", 30)
	viper.SetDefault("voice.allowed_mime_types",
		"audio/webm,audio/wav,audio/x-wav,audio/mp3,audio/mpeg,audio/ogg,video/webm,application/octet-stream")

	viper.SetDefault("google_calendar.token_path", "token.json")
	viper.SetDefault("google_calendar.calendar_id", "primary")
	viper.SetDefault("google_calendar.event_duration", "30m")
	viper.SetDefault("google_calendar.reminder_before", "30m")

	// LLM defaults: one retry with backoff, then the deterministic extractor takes over.
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 2)
	viper.SetDefault("llm.retry_delay", "500ms")
	viper.SetDefault("llm.max_total_timeout", "30s")
	viper.SetDefault("llm.temperature", 0.3)
	viper.SetDefault("llm.max_tokens", 300)
	viper.SetDefault("llm.default_model", "gpt-3.5-turbo")
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
		return ""
	}

	return value
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}

		if !provider.Enabled {
			continue
		}
		enabledCount++

		if provider.Priority <= 0 {
			return fmt.Errorf("provider %s: priority must be positive", provider.Name)
		}
		if priorityMap[provider.Priority] {
			return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
		}
		priorityMap[provider.Priority] = true

		if provider.APIKey == "" {
			return fmt.Errorf("provider %s: api_key is required", provider.Name)
		}
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}

	return nil
}

// splitList splits a comma separated value since viper does not parse arrays from env.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
