package config

import "time"

// Config represents the full simplecal configuration
type Config struct {
	// Directory holding goals.json or simplecal.db
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`

	// Storage engine: "json" or "sqlite"
	Storage string `yaml:"storage" mapstructure:"storage"`

	// debug, info, warn or error
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`

	Gemini   GeminiConfig   `yaml:"gemini" mapstructure:"gemini"`
	Focus    FocusConfig    `yaml:"focus" mapstructure:"focus"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Calendar CalendarConfig `yaml:"calendar" mapstructure:"calendar"`
}

// GeminiConfig configures task decomposition
type GeminiConfig struct {
	APIKey  string        `yaml:"api_key" mapstructure:"api_key"`
	Model   string        `yaml:"model" mapstructure:"model"`
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// FocusConfig configures the Pomodoro timer
type FocusConfig struct {
	Duration time.Duration `yaml:"duration" mapstructure:"duration"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
	// Bearer token required on every route but /health. Empty disables auth.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
}

// CalendarConfig configures the Google Calendar export
type CalendarConfig struct {
	Name            string `yaml:"name" mapstructure:"name"`
	CredentialsFile string `yaml:"credentials_file" mapstructure:"credentials_file"`
	TokenFile       string `yaml:"token_file" mapstructure:"token_file"`
}

const (
	StorageJSON   = "json"
	StorageSQLite = "sqlite"
)
