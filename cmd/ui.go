package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"palettegen/pkg/clipboard"
	"palettegen/pkg/config"
	"palettegen/pkg/ui/picker"

	"github.com/spf13/cobra"
)

const uiLogFileName = "palettegen.log"

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive palette picker",
	Long:  "Opens a terminal widget: type a theme, press enter to generate a palette, then copy colors to the clipboard.",
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = args
		return runUI(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	routeUILogs(cfg)

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	if ctx == nil {
		ctx = context.Background()
	}
	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.observe(runCtx)
	log := a.log.With("component", "cmd.ui")
	log.Info("Picker started", "provider", cfg.Generator.Provider, "model", cfg.Generator.Model, "color_count", cfg.Generator.ColorCount)

	err = picker.Run(runCtx, picker.Options{
		Generate:     a.requester.Generate,
		Clipboard:    clipboard.Default(),
		CopyFeedback: time.Duration(cfg.UI.CopyFeedbackMS) * time.Millisecond,
		DarkMode:     cfg.UI.DarkMode,
		Provider:     cfg.Generator.Provider,
		Model:        cfg.Generator.Model,
		ColorCount:   cfg.Generator.ColorCount,
		Logger:       a.log,
	})
	if err != nil {
		log.Error("Picker stopped", "error", err)
		return err
	}

	log.Info("Picker closed")
	return nil
}

// routeUILogs keeps log output off the terminal while the alternate screen
// is active.
func routeUILogs(cfg *config.Config) {
	if strings.TrimSpace(cfg.Logging.File) != "" {
		return
	}

	cfg.Logging.File = filepath.Join(os.TempDir(), uiLogFileName)
}
