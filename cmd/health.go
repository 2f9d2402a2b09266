package cmd

import (
	"context"
	"fmt"

	"palettegen/pkg/config"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the configured provider is reachable",
	Long:  "Loads configuration, connects to the configured provider, and verifies the endpoint accepts the credential.",
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = args

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if err := a.client.Health(ctx); err != nil {
			a.log.With("component", "cmd.health").Error("Provider health check failed", "provider", cfg.Generator.Provider, "error", err)
			return fmt.Errorf("provider health check failed: %w", err)
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "provider %s is reachable (model %s)\n", cfg.Generator.Provider, cfg.Generator.Model)
		return err
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
