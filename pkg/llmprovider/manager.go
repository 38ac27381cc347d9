package llmprovider

import (
	"context"
	"fmt"
	"time"

	"voice-task-board/pkg/log"
)

// Manager tries providers in priority order. Each provider gets RetryAttempts tries
// for transient failures; a rejected request moves straight to the next provider.
type Manager struct {
	providers []Provider
	config    *Config
	logger    log.Logger
}

type Config struct {
	FallbackEnabled bool
	RetryAttempts   int // total attempts per provider, so 2 means one retry
	RetryDelay      time.Duration
	MaxTotalTimeout time.Duration // Global timeout for entire fallback chain
}

func NewManager(providers []Provider, config *Config, logger log.Logger) *Manager {
	if config.RetryAttempts <= 0 {
		config.RetryAttempts = 1
	}
	return &Manager{
		providers: providers,
		config:    config,
		logger:    logger,
	}
}

func (m *Manager) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	var cancel context.CancelFunc
	if m.config.MaxTotalTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, m.config.MaxTotalTimeout)
		defer cancel()
	}

	var lastErr error

	for _, provider := range m.providers {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("global timeout exceeded after trying %d provider(s): %w",
				len(m.providers), ctx.Err())
		default:
		}

		resp, err := m.generateWithRetry(ctx, provider, req)
		if err == nil {
			m.logSuccess(ctx, provider, resp)
			return resp, nil
		}

		m.logFailure(ctx, provider, err)
		lastErr = &ProviderError{Provider: provider.Name(), Err: err}

		if !m.config.FallbackEnabled {
			break
		}
	}

	return nil, fmt.Errorf("%w: %v", ErrAllProvidersFailed, lastErr)
}

func (m *Manager) generateWithRetry(ctx context.Context, provider Provider, req *Request) (*Response, error) {
	var lastErr error

	for attempt := 0; attempt < m.config.RetryAttempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * m.config.RetryDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, err := provider.GenerateContent(ctx, req)
		if err == nil {
			return resp, nil
		}

		lastErr = err
		if !retryable(err) {
			break
		}
		m.logger.Debugf(ctx, "pkg.llmprovider.generateWithRetry: provider=%s attempt=%d: %v", provider.Name(), attempt+1, err)
	}

	return nil, lastErr
}

func (m *Manager) logSuccess(ctx context.Context, provider Provider, resp *Response) {
	in, out := 0, 0
	if resp.Usage != nil {
		in, out = resp.Usage.InputTokens, resp.Usage.OutputTokens
	}
	m.logger.Infof(ctx, "LLM generation successful: provider=%s model=%s input_tokens=%d output_tokens=%d",
		provider.Name(), provider.Model(), in, out)
}

func (m *Manager) logFailure(ctx context.Context, provider Provider, err error) {
	m.logger.Warnf(ctx, "LLM generation failed: provider=%s model=%s error=%v",
		provider.Name(), provider.Model(), err)
}
