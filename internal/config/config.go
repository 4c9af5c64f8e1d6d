// Package config handles configuration for goalchat.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v10"

	apierrors "github.com/diogo/goalchat/internal/errors"
	"github.com/diogo/goalchat/internal/models"
)

// MarkdownConfig configures full markdown rendering of assistant replies
type MarkdownConfig struct {
	Enabled bool   `json:"enabled"` // Use glamour instead of the inline bold/italic/code rules
	Style   string `json:"style"`   // glamour style: "dark", "light", "notty" or a JSON path
}

// Endpoint is one entry of the endpoint selector
type Endpoint struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// QuickQuestion is a preset question bound to a function key
type QuickQuestion struct {
	Label    string `json:"label"`
	Question string `json:"question"`
}

// Config represents the user configuration
type Config struct {
	// APIEndpoint is the base URL of the assistant; requests go to APIEndpoint + "/chat".
	APIEndpoint string     `json:"api_endpoint"`
	Endpoints   []Endpoint `json:"endpoints,omitempty"`
	// TimeoutSeconds bounds a single request at the transport level.
	TimeoutSeconds int `json:"timeout_seconds"`
	// InputMaxHeight is the tallest the input box grows, in rows.
	InputMaxHeight int             `json:"input_max_height"`
	QuickQuestions []QuickQuestion `json:"quick_questions,omitempty"`
	TUITheme       string          `json:"tui_theme,omitempty"`
	LogFile        string          `json:"log_file,omitempty"`
	LogLevel       string          `json:"log_level,omitempty"`
	Markdown       MarkdownConfig  `json:"markdown,omitempty"`
}

// envOverrides holds the deploy-time settings read from the environment.
// GOALCHAT_API_ENDPOINT wins over the bare API_ENDPOINT.
type envOverrides struct {
	APIEndpoint    string `env:"GOALCHAT_API_ENDPOINT"`
	LegacyEndpoint string `env:"API_ENDPOINT"`
	TUITheme       string `env:"GOALCHAT_TUI_THEME"`
	LogFile        string `env:"GOALCHAT_LOG_FILE"`
	LogLevel       string `env:"GOALCHAT_LOG_LEVEL"`
}

// DefaultQuickQuestions returns the built-in preset questions
func DefaultQuickQuestions() []QuickQuestion {
	return []QuickQuestion{
		{Label: "역대 우승국", Question: "역대 월드컵 우승국을 알려주세요."},
		{Label: "2026 개최지", Question: "2026 월드컵 개최지는 어디인가요?"},
		{Label: "최다 득점자", Question: "월드컵 역대 최다 득점자는 누구인가요?"},
		{Label: "한국 최고 성적", Question: "한국 대표팀의 월드컵 최고 성적은 무엇인가요?"},
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		APIEndpoint:    models.DefaultEndpoint,
		TimeoutSeconds: 300,
		InputMaxHeight: 6,
		QuickQuestions: DefaultQuickQuestions(),
		TUITheme:       "pitch",
		LogLevel:       "info",
		Markdown: MarkdownConfig{
			Enabled: false,
			Style:   "dark",
		},
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".goalchat"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetLogPath returns the log file path, defaulting to ~/.goalchat/goalchat.log
func GetLogPath(cfg Config) (string, error) {
	if cfg.LogFile != "" {
		return cfg.LogFile, nil
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "goalchat.log"), nil
}

// LoadConfig loads the configuration file from disk
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if config doesn't exist
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Load loads the config file and applies environment overrides on top.
// Callers that want .env support load it with godotenv before calling Load.
func Load() (Config, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overlays deploy-time environment variables onto cfg
func ApplyEnv(cfg *Config) error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	switch {
	case overrides.APIEndpoint != "":
		cfg.APIEndpoint = overrides.APIEndpoint
	case overrides.LegacyEndpoint != "":
		cfg.APIEndpoint = overrides.LegacyEndpoint
	}
	if overrides.TUITheme != "" {
		cfg.TUITheme = overrides.TUITheme
	}
	if overrides.LogFile != "" {
		cfg.LogFile = overrides.LogFile
	}
	if overrides.LogLevel != "" {
		cfg.LogLevel = overrides.LogLevel
	}
	return nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ValidateEndpoint checks that raw is an absolute http(s) URL
func ValidateEndpoint(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%w: endpoint is empty", apierrors.ErrInvalidEndpoint)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", apierrors.ErrInvalidEndpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", apierrors.ErrInvalidEndpoint, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", apierrors.ErrInvalidEndpoint)
	}
	return nil
}

// Validate checks the settings the client cannot run without
func (c Config) Validate() error {
	if err := ValidateEndpoint(c.APIEndpoint); err != nil {
		return err
	}
	for _, ep := range c.Endpoints {
		if err := ValidateEndpoint(ep.URL); err != nil {
			return fmt.Errorf("endpoint %q: %w", ep.Name, err)
		}
	}
	if c.InputMaxHeight < 1 {
		return fmt.Errorf("input_max_height must be at least 1, got %d", c.InputMaxHeight)
	}
	return nil
}

// EndpointChoices returns the selector entries. The configured APIEndpoint is
// always first; duplicates from Endpoints are skipped.
func (c Config) EndpointChoices() []Endpoint {
	choices := []Endpoint{{Name: "default", URL: c.APIEndpoint}}
	seen := map[string]bool{strings.TrimRight(c.APIEndpoint, "/"): true}
	for _, ep := range c.Endpoints {
		key := strings.TrimRight(ep.URL, "/")
		if seen[key] {
			continue
		}
		seen[key] = true
		name := ep.Name
		if name == "" {
			name = ep.URL
		}
		choices = append(choices, Endpoint{Name: name, URL: ep.URL})
	}
	return choices
}
