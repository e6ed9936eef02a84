package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	home := HomePath()
	return &Config{
		DataDir:  home,
		Storage:  StorageJSON,
		LogLevel: "info",
		Gemini: GeminiConfig{
			Model:   "gemini-pro",
			BaseURL: "https://generativelanguage.googleapis.com",
			Timeout: 60 * time.Second,
		},
		Focus: FocusConfig{
			Duration: 25 * time.Minute,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8474",
		},
		Calendar: CalendarConfig{
			Name:            "simplecal",
			CredentialsFile: filepath.Join(home, "credentials.json"),
			TokenFile:       filepath.Join(home, "token.json"),
		},
	}
}

// WriteDefault writes the default configuration to path. The API keys are
// left empty; set them in the file or through the environment.
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	header := []byte("# simplecal configuration\n# Environment overrides: SIMPLECAL_<KEY> (e.g. SIMPLECAL_GEMINI_API_KEY), GEMINI_API_KEY\n")

	return os.WriteFile(path, append(header, data...), 0600)
}
