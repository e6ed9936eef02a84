package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "SIMPLECAL"

// Load reads the config file at path (DefaultPath when empty) on top of the
// defaults, then applies environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := DefaultConfig()

	v := viper.New()
	setDefaults(v, cfg)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("gemini.api_key", EnvPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.Calendar.CredentialsFile = expandHome(cfg.Calendar.CredentialsFile)
	cfg.Calendar.TokenFile = expandHome(cfg.Calendar.TokenFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Every key must have a default for AutomaticEnv to see it on Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("storage", cfg.Storage)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("gemini.api_key", cfg.Gemini.APIKey)
	v.SetDefault("gemini.model", cfg.Gemini.Model)
	v.SetDefault("gemini.base_url", cfg.Gemini.BaseURL)
	v.SetDefault("gemini.timeout", cfg.Gemini.Timeout)
	v.SetDefault("focus.duration", cfg.Focus.Duration)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.api_key", cfg.Server.APIKey)
	v.SetDefault("calendar.name", cfg.Calendar.Name)
	v.SetDefault("calendar.credentials_file", cfg.Calendar.CredentialsFile)
	v.SetDefault("calendar.token_file", cfg.Calendar.TokenFile)
}

// Validate rejects values no component can run with
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageJSON, StorageSQLite:
	default:
		return fmt.Errorf("unknown storage %q (want %q or %q)", c.Storage, StorageJSON, StorageSQLite)
	}
	if c.Focus.Duration <= 0 {
		return fmt.Errorf("focus.duration must be positive, got %s", c.Focus.Duration)
	}
	if c.Gemini.Timeout <= 0 {
		return fmt.Errorf("gemini.timeout must be positive, got %s", c.Gemini.Timeout)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps log_level onto a slog.Level
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q: %w", s, err)
	}
	return level, nil
}

// HomePath returns ~/.simplecal
func HomePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".simplecal"
	}
	return filepath.Join(home, ".simplecal")
}

// DefaultPath returns the path to the default config file
func DefaultPath() string {
	return filepath.Join(HomePath(), "config.yaml")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
