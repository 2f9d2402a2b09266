package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFromEnvPath(t *testing.T) {
	unsetConfigEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
	  "generator": {"provider": "openai", "model": "gpt-4o-mini", "color_count": 5},
	  "providers": {"openai": {"base_url": "http://127.0.0.1:4096/v1", "request_timeout_seconds": 30}},
	  "ui": {"dark_mode": true},
	  "logging": {"format": "json", "level": "debug", "add_source": true}
	}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("PALETTEGEN_CONFIG", path)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Generator.Provider != ProviderOpenAI {
		t.Fatalf("generator.provider = %q, want %q", cfg.Generator.Provider, ProviderOpenAI)
	}
	if cfg.Generator.ColorCount != 5 {
		t.Fatalf("generator.color_count = %d, want 5", cfg.Generator.ColorCount)
	}
	if !cfg.UI.DarkMode {
		t.Fatal("ui.dark_mode = false, want true")
	}
	if cfg.UI.CopyFeedbackMS != DefaultCopyFeedbackMS {
		t.Fatalf("ui.copy_feedback_ms = %d, want %d", cfg.UI.CopyFeedbackMS, DefaultCopyFeedbackMS)
	}
	if cfg.Providers.OpenAI.APIKeyEnv != DefaultOpenAIAPIKeyEnv {
		t.Fatalf("providers.openai.api_key_env = %q, want %q", cfg.Providers.OpenAI.APIKeyEnv, DefaultOpenAIAPIKeyEnv)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("logging.format = %q, want %q", cfg.Logging.Format, "json")
	}
	if !cfg.Logging.AddSource {
		t.Fatal("logging.add_source = false, want true")
	}
}

func TestLoadConfigInvalidEnvPath(t *testing.T) {
	unsetConfigEnv(t)
	t.Setenv("PALETTEGEN_CONFIG", filepath.Join(t.TempDir(), "missing.json"))

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing config path")
	}
}

func TestLoadConfigWithoutFileUsesDefaults(t *testing.T) {
	unsetConfigEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Generator.Provider != DefaultProvider {
		t.Fatalf("generator.provider = %q, want %q", cfg.Generator.Provider, DefaultProvider)
	}
	if cfg.Generator.Model != DefaultModel {
		t.Fatalf("generator.model = %q, want %q", cfg.Generator.Model, DefaultModel)
	}
	if cfg.Generator.ColorCount != DefaultColorCount {
		t.Fatalf("generator.color_count = %d, want %d", cfg.Generator.ColorCount, DefaultColorCount)
	}
	if cfg.Providers.OpenRouter.BaseURL != DefaultOpenRouterBaseURL {
		t.Fatalf("providers.openrouter.base_url = %q, want %q", cfg.Providers.OpenRouter.BaseURL, DefaultOpenRouterBaseURL)
	}
	if cfg.Providers.OpenRouter.APIKeyEnv != DefaultOpenRouterAPIKeyEnv {
		t.Fatalf("providers.openrouter.api_key_env = %q, want %q", cfg.Providers.OpenRouter.APIKeyEnv, DefaultOpenRouterAPIKeyEnv)
	}
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	unsetConfigEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("PALETTEGEN_PROVIDER", "Fantasy")
	t.Setenv("PALETTEGEN_MODEL", "gpt-4o")
	t.Setenv("PALETTEGEN_COLOR_COUNT", "5")
	t.Setenv("PALETTEGEN_DARK_MODE", "yes")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Generator.Provider != ProviderFantasy {
		t.Fatalf("generator.provider = %q, want %q", cfg.Generator.Provider, ProviderFantasy)
	}
	if cfg.Generator.Model != "gpt-4o" {
		t.Fatalf("generator.model = %q, want %q", cfg.Generator.Model, "gpt-4o")
	}
	if cfg.Generator.ColorCount != 5 {
		t.Fatalf("generator.color_count = %d, want 5", cfg.Generator.ColorCount)
	}
	if !cfg.UI.DarkMode {
		t.Fatal("ui.dark_mode = false, want true")
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown provider", env: map[string]string{"PALETTEGEN_PROVIDER": "acme"}},
		{name: "count not a number", env: map[string]string{"PALETTEGEN_COLOR_COUNT": "ten"}},
		{name: "count too large", env: map[string]string{"PALETTEGEN_COLOR_COUNT": "500"}},
		{name: "negative count", env: map[string]string{"PALETTEGEN_COLOR_COUNT": "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetConfigEnv(t)
			t.Chdir(t.TempDir())
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			if _, err := LoadConfig(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestProviderSettings(t *testing.T) {
	cfg := Default()
	cfg.Providers.OpenAI.BaseURL = "http://example.test/v1"

	settings, err := cfg.ProviderSettings(ProviderOpenRouter)
	if err != nil {
		t.Fatalf("ProviderSettings(openrouter) error: %v", err)
	}
	if settings.BaseURL != DefaultOpenRouterBaseURL {
		t.Fatalf("openrouter base url = %q, want %q", settings.BaseURL, DefaultOpenRouterBaseURL)
	}

	settings, err = cfg.ProviderSettings(ProviderFantasy)
	if err != nil {
		t.Fatalf("ProviderSettings(fantasy) error: %v", err)
	}
	if settings.BaseURL != "http://example.test/v1" {
		t.Fatalf("fantasy base url = %q, want openai settings", settings.BaseURL)
	}

	if _, err := cfg.ProviderSettings("unknown"); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "1", want: true},
		{input: " TRUE ", want: true},
		{input: "on", want: true},
		{input: "no", want: false},
		{input: "", want: false},
	}

	for _, tt := range tests {
		if got := ParseBool(tt.input); got != tt.want {
			t.Fatalf("ParseBool(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func unsetConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{envConfigPath, envProvider, envModel, envColorCount, envDarkMode} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}
