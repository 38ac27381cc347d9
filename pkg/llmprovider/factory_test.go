package llmprovider

import (
	"context"
	"errors"
	"strings"
	"testing"

	"voice-task-board/config"
	"voice-task-board/pkg/log"
)

func TestInitializeProviders(t *testing.T) {
	tcs := map[string]struct {
		cfg       *config.LLMConfig
		wantNames []string
		wantErr   bool
	}{
		"sorted_by_priority": {
			cfg: &config.LLMConfig{Providers: []config.ProviderConfig{
				{Name: "gemini", Enabled: true, Priority: 2, APIKey: "g"},
				{Name: "openai", Enabled: true, Priority: 1, APIKey: "o"},
			}},
			wantNames: []string{"openai", "gemini"},
		},
		"disabled_filtered": {
			cfg: &config.LLMConfig{Providers: []config.ProviderConfig{
				{Name: "openai", Enabled: true, Priority: 1, APIKey: "o"},
				{Name: "deepseek", Enabled: false, Priority: 2, APIKey: "d"},
			}},
			wantNames: []string{"openai"},
		},
		"unknown_skipped": {
			cfg: &config.LLMConfig{Providers: []config.ProviderConfig{
				{Name: "anthropic", Enabled: true, Priority: 1, APIKey: "a"},
				{Name: "Groq", Enabled: true, Priority: 2, APIKey: "q"},
			}},
			wantNames: []string{"groq"},
		},
		"none_enabled": {
			cfg:     &config.LLMConfig{},
			wantErr: true,
		},
		"all_fail": {
			cfg: &config.LLMConfig{Providers: []config.ProviderConfig{
				{Name: "openai", Enabled: true, Priority: 1},
			}},
			wantErr: true,
		},
		"nil_config": {
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			providers, err := InitializeProviders(context.Background(), tc.cfg, log.NewNop())
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var names []string
			for _, p := range providers {
				names = append(names, p.Name())
			}
			if strings.Join(names, ",") != strings.Join(tc.wantNames, ",") {
				t.Errorf("got %v, want %v", names, tc.wantNames)
			}
		})
	}
}

func TestCreateProvider_InvalidTimeout(t *testing.T) {
	_, err := createProvider(config.ProviderConfig{Name: "openai", APIKey: "k", Timeout: "soon"})
	if err == nil {
		t.Fatal("expected error for invalid timeout")
	}
}

func TestCreateProvider_Unknown(t *testing.T) {
	_, err := createProvider(config.ProviderConfig{Name: "anthropic", APIKey: "k"})
	if !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
}
