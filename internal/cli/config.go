package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultServer   = "http://localhost:3001"
	DefaultTimezone = "UTC"
)

// Config is the voicectl configuration file.
type Config struct {
	Server     string         `toml:"server"`
	Timezone   string         `toml:"timezone"`
	SampleRate int            `toml:"sample_rate"`
	Calendar   CalendarConfig `toml:"calendar"`
}

// CalendarConfig points at the Google credentials used by calendar-auth.
type CalendarConfig struct {
	CredentialsPath string `toml:"credentials_path"`
	TokenPath       string `toml:"token_path"`
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/voicectl/config.toml or its home directory equivalent.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "voicectl.toml"
	}
	return filepath.Join(dir, "voicectl", "config.toml")
}

// LoadConfig reads path, keeping defaults for anything the file omits.
// A missing file is not an error. VOICECTL_SERVER and TZ override the file.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		Server:     DefaultServer,
		Timezone:   DefaultTimezone,
		SampleRate: 16000,
		Calendar: CalendarConfig{
			CredentialsPath: "credentials.json",
			TokenPath:       "token.json",
		},
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if v := os.Getenv("VOICECTL_SERVER"); v != "" {
		cfg.Server = v
	}
	if v := os.Getenv("TZ"); v != "" && cfg.Timezone == DefaultTimezone {
		cfg.Timezone = v
	}
	cfg.Server = strings.TrimRight(cfg.Server, "/")
	return cfg, nil
}
