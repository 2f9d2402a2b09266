package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	envConfigPath = "PALETTEGEN_CONFIG"
	envProvider   = "PALETTEGEN_PROVIDER"
	envModel      = "PALETTEGEN_MODEL"
	envColorCount = "PALETTEGEN_COLOR_COUNT"
	envDarkMode   = "PALETTEGEN_DARK_MODE"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderFantasy    = "fantasy"
)

const (
	DefaultProvider       = ProviderOpenRouter
	DefaultModel          = "meta-llama/llama-3-8b-instruct"
	DefaultColorCount     = 10
	DefaultCopyFeedbackMS = 1200

	DefaultRequestTimeoutSeconds = 60

	DefaultOpenRouterBaseURL   = "https://openrouter.ai/api/v1"
	DefaultOpenRouterAPIKeyEnv = "OPENROUTER_API_KEY"
	DefaultOpenAIAPIKeyEnv     = "OPENAI_API_KEY"

	maxColorCount = 50
)

// Config is the root runtime configuration loaded from config.json.
type Config struct {
	Generator GeneratorConfig `json:"generator"`
	Providers ProvidersConfig `json:"providers"`
	UI        UIConfig        `json:"ui"`
	Logging   LoggingConfig   `json:"logging,omitempty"`
}

// LoggingConfig controls structured log output format and verbosity.
type LoggingConfig struct {
	Format    string `json:"format,omitempty"`
	Level     string `json:"level,omitempty"`
	AddSource bool   `json:"add_source,omitempty"`
	File      string `json:"file,omitempty"`
}

// GeneratorConfig selects the provider and model used for palette requests.
type GeneratorConfig struct {
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	ColorCount int    `json:"color_count"`
}

// ProvidersConfig stores per-provider connection settings.
type ProvidersConfig struct {
	OpenRouter OpenAIProviderConfig `json:"openrouter"`
	OpenAI     OpenAIProviderConfig `json:"openai"`
}

// OpenAIProviderConfig configures an OpenAI-compatible chat-completion endpoint.
type OpenAIProviderConfig struct {
	BaseURL               string `json:"base_url"`
	APIKeyEnv             string `json:"api_key_env"`
	Organization          string `json:"organization,omitempty"`
	Project               string `json:"project,omitempty"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"`
	AppName               string `json:"app_name,omitempty"`
	AppURL                string `json:"app_url,omitempty"`
}

// UIConfig configures the interactive palette widget.
type UIConfig struct {
	DarkMode       bool `json:"dark_mode"`
	CopyFeedbackMS int  `json:"copy_feedback_ms"`
}

// Default returns a configuration that works without any config file.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// LoadConfig resolves config.json, unmarshals it, and applies defaults and
// environment overrides. A missing config file is not an error.
func LoadConfig() (*Config, error) {
	configPath, err := findConfigPath()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if configPath != "" {
		content, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := json.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate reports configuration values that cannot produce a usable palette request.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	switch c.Generator.Provider {
	case ProviderOpenRouter, ProviderOpenAI, ProviderFantasy:
	default:
		return fmt.Errorf("unsupported generator.provider %q", c.Generator.Provider)
	}

	if c.Generator.ColorCount < 1 || c.Generator.ColorCount > maxColorCount {
		return fmt.Errorf("generator.color_count must be between 1 and %d, got %d", maxColorCount, c.Generator.ColorCount)
	}

	return nil
}

// ProviderSettings returns the connection settings for an OpenAI-compatible provider id.
func (c *Config) ProviderSettings(providerID string) (OpenAIProviderConfig, error) {
	switch strings.TrimSpace(providerID) {
	case ProviderOpenRouter:
		return c.Providers.OpenRouter, nil
	case ProviderOpenAI, ProviderFantasy:
		return c.Providers.OpenAI, nil
	default:
		return OpenAIProviderConfig{}, fmt.Errorf("unsupported provider: %s", providerID)
	}
}

func applyDefaults(cfg *Config) {
	cfg.Generator.Provider = strings.ToLower(strings.TrimSpace(cfg.Generator.Provider))
	if cfg.Generator.Provider == "" {
		cfg.Generator.Provider = DefaultProvider
	}
	cfg.Generator.Model = strings.TrimSpace(cfg.Generator.Model)
	if cfg.Generator.Model == "" {
		cfg.Generator.Model = DefaultModel
	}
	if cfg.Generator.ColorCount == 0 {
		cfg.Generator.ColorCount = DefaultColorCount
	}

	if strings.TrimSpace(cfg.Providers.OpenRouter.BaseURL) == "" {
		cfg.Providers.OpenRouter.BaseURL = DefaultOpenRouterBaseURL
	}
	if strings.TrimSpace(cfg.Providers.OpenRouter.APIKeyEnv) == "" {
		cfg.Providers.OpenRouter.APIKeyEnv = DefaultOpenRouterAPIKeyEnv
	}
	if strings.TrimSpace(cfg.Providers.OpenAI.APIKeyEnv) == "" {
		cfg.Providers.OpenAI.APIKeyEnv = DefaultOpenAIAPIKeyEnv
	}
	if cfg.Providers.OpenRouter.RequestTimeoutSeconds <= 0 {
		cfg.Providers.OpenRouter.RequestTimeoutSeconds = DefaultRequestTimeoutSeconds
	}
	if cfg.Providers.OpenAI.RequestTimeoutSeconds <= 0 {
		cfg.Providers.OpenAI.RequestTimeoutSeconds = DefaultRequestTimeoutSeconds
	}

	if cfg.UI.CopyFeedbackMS <= 0 {
		cfg.UI.CopyFeedbackMS = DefaultCopyFeedbackMS
	}
}

// applyEnvOverrides injects selected env-driven settings on top of file config.
func applyEnvOverrides(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	if value := strings.TrimSpace(os.Getenv(envProvider)); value != "" {
		cfg.Generator.Provider = value
	}

	if value := strings.TrimSpace(os.Getenv(envModel)); value != "" {
		cfg.Generator.Model = value
	}

	if value := strings.TrimSpace(os.Getenv(envColorCount)); value != "" {
		count, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parse %s: %w", envColorCount, err)
		}
		cfg.Generator.ColorCount = count
	}

	if value := strings.TrimSpace(os.Getenv(envDarkMode)); value != "" {
		cfg.UI.DarkMode = ParseBool(value)
	}

	return nil
}

// ParseBool accepts the usual truthy spellings used in environment variables.
func ParseBool(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// findConfigPath resolves the active config file location.
//
// Precedence is PALETTEGEN_CONFIG first, then cwd-local fallback paths. An
// empty path with a nil error means no config file exists.
func findConfigPath() (string, error) {
	if value := strings.TrimSpace(os.Getenv(envConfigPath)); value != "" {
		if info, err := os.Stat(value); err == nil && !info.IsDir() {
			return value, nil
		}
		return "", fmt.Errorf("%s does not point to a file: %s", envConfigPath, value)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get current working directory: %w", err)
	}

	candidates := []string{
		filepath.Join(cwd, "config.json"),
		filepath.Join(cwd, "config", "config.json"),
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", nil
}
