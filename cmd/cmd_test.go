package cmd

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"palettegen/pkg/bus"
	"palettegen/pkg/config"
	"palettegen/pkg/palette"

	"github.com/stretchr/testify/require"
)

func TestResolveTheme(t *testing.T) {
	original := themeText
	t.Cleanup(func() {
		themeText = original
	})

	tests := []struct {
		name    string
		flag    string
		flagSet bool
		args    []string
		want    string
	}{
		{name: "flag wins over args", flag: "from-flag", flagSet: true, args: []string{"from", "args"}, want: "from-flag"},
		{name: "flag kept verbatim", flag: "  neon  arcade  ", flagSet: true, want: "  neon  arcade  "},
		{name: "whitespace flag kept", flag: "   ", flagSet: true, args: []string{"ignored"}, want: "   "},
		{name: "empty flag is an empty theme", flag: "", flagSet: true, args: []string{"ignored"}, want: ""},
		{name: "args joined verbatim", args: []string{" a", "b "}, want: " a b "},
		{name: "args joined", args: []string{"forest", "at", "dawn"}, want: "forest at dawn"},
		{name: "no input", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			themeText = tt.flag
			if got := resolveTheme(tt.flagSet, tt.args); got != tt.want {
				t.Fatalf("resolveTheme(%v, %q) = %q, want %q", tt.flagSet, tt.args, got, tt.want)
			}
		})
	}
}

func TestApplyColorCount(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, applyColorCount(cfg, 5))
	require.Equal(t, 5, cfg.Generator.ColorCount)

	require.Error(t, applyColorCount(config.Default(), 0))
	require.Error(t, applyColorCount(config.Default(), 51))
}

func TestWriteJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeJSON(&out, palette.Palette{"#FF5733", "#c70039"}))

	var decoded []string
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Equal(t, []string{"#FF5733", "#c70039"}, decoded)
}

func TestRenderSwatchesListsEveryColorInOrder(t *testing.T) {
	rendered := renderSwatches(palette.Palette{"#FFFFFF", "#000000", "#FFFFFF"})

	lines := strings.Split(rendered, "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "#FFFFFF")
	require.Contains(t, lines[1], "#000000")
	require.Contains(t, lines[2], "#FFFFFF")
}

func TestRouteUILogsDefaultsToTempFile(t *testing.T) {
	cfg := config.Default()
	routeUILogs(cfg)
	require.Equal(t, filepath.Join(os.TempDir(), uiLogFileName), cfg.Logging.File)

	cfg.Logging.File = "/var/log/custom.log"
	routeUILogs(cfg)
	require.Equal(t, "/var/log/custom.log", cfg.Logging.File)
}

func TestLoadDotEnvKeepsExistingVariables(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PALETTEGEN_TEST_A=from-file\nPALETTEGEN_TEST_B=from-file\n"), 0o600))

	t.Setenv("PALETTEGEN_TEST_A", "from-env")
	t.Setenv("PALETTEGEN_TEST_B", "")
	require.NoError(t, os.Unsetenv("PALETTEGEN_TEST_B"))

	require.NoError(t, loadDotEnv(path))
	require.Equal(t, "from-env", os.Getenv("PALETTEGEN_TEST_A"))
	require.Equal(t, "from-file", os.Getenv("PALETTEGEN_TEST_B"))
}

func TestLoadDotEnvIgnoresMissingFile(t *testing.T) {
	require.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestLogEventsWritesDebugRecords(t *testing.T) {
	var out bytes.Buffer
	log := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	stream := make(chan bus.Event, 2)
	stream <- bus.Event{Type: bus.EventPaletteGenerated, RequestID: "7", Provider: "openrouter", Payload: map[string]string{"colors": "3"}}
	stream <- bus.Event{Type: bus.EventPaletteFailed, RequestID: "8", Error: "boom"}
	close(stream)

	logEvents(stream, log)

	output := out.String()
	require.Contains(t, output, "type=palette_generated")
	require.Contains(t, output, "request_id=7")
	require.Contains(t, output, "colors=3")
	require.Contains(t, output, "type=palette_failed")
	require.Contains(t, output, "error=boom")
}

func TestCommandsAreRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, command := range rootCmd.Commands() {
		names[command.Name()] = true
	}

	for _, want := range []string{"ui", "generate", "health"} {
		if !names[want] {
			t.Fatalf("expected %q subcommand to be registered", want)
		}
	}

	for _, flag := range []string{"theme", "count", "json"} {
		if generateCmd.Flags().Lookup(flag) == nil {
			t.Fatalf("expected generate flag %q", flag)
		}
	}
}
