/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const dotEnvFile = ".env"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "palettegen",
	Short: "Generate color palettes from a theme",
	Long: `Palettegen asks a chat-completion model for hex colors matching a free-text
theme and shows them as swatches you can copy to the clipboard.

Run without a subcommand to open the interactive picker.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadDotEnv(dotEnvFile)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI(cmd.Context())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// loadDotEnv reads path into the environment. Variables that are already set
// win, and a missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}

	return nil
}
