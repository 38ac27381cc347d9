package llmprovider

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"voice-task-board/config"
	"voice-task-board/pkg/gemini"
	"voice-task-board/pkg/log"
	"voice-task-board/pkg/openai"
)

// InitializeProviders creates Provider instances from config.LLMConfig
// Returns providers sorted by priority (ascending) with disabled providers filtered out
// Skips providers that fail to initialize instead of failing the entire service
func InitializeProviders(ctx context.Context, cfg *config.LLMConfig, l log.Logger) ([]Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("LLM config is nil")
	}

	var enabledProviders []config.ProviderConfig
	for _, p := range cfg.Providers {
		if p.Enabled {
			enabledProviders = append(enabledProviders, p)
		}
	}

	if len(enabledProviders) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	sort.Slice(enabledProviders, func(i, j int) bool {
		return enabledProviders[i].Priority < enabledProviders[j].Priority
	})

	var providers []Provider
	var initErrors []string

	for _, p := range enabledProviders {
		provider, err := createProvider(p)
		if err != nil {
			errMsg := fmt.Sprintf("failed to initialize provider %s (priority %d): %v", p.Name, p.Priority, err)
			initErrors = append(initErrors, errMsg)
			l.Warnf(ctx, "llmprovider: %s", errMsg)
			continue
		}
		providers = append(providers, provider)
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("no providers successfully initialized: %s", strings.Join(initErrors, "; "))
	}

	if len(initErrors) > 0 {
		l.Warnf(ctx, "llmprovider: %d provider(s) failed to initialize, continuing with %d", len(initErrors), len(providers))
	}

	return providers, nil
}

// createProvider creates a concrete provider instance based on the provider config.
// Anthropic is not wired; it would need its own messages client.
func createProvider(cfg config.ProviderConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("provider %s: API key is required", cfg.Name)
	}

	httpClient := &http.Client{Timeout: openai.DefaultTimeout}
	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("provider %s: invalid timeout %q: %w", cfg.Name, cfg.Timeout, err)
		}
		httpClient.Timeout = d
	}

	name := strings.ToLower(cfg.Name)
	if baseURL, ok := openai.VendorBaseURLs[name]; ok {
		if cfg.BaseURL != "" {
			baseURL = cfg.BaseURL
		}
		client, err := openai.New(openai.Config{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			BaseURL:    baseURL,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create %s client: %w", name, err)
		}
		return NewOpenAIAdapter(name, client), nil
	}

	switch name {
	case "gemini":
		client, err := gemini.New(gemini.Config{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			APIURL:     cfg.BaseURL,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return NewGeminiAdapter(client), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Name)
	}
}
