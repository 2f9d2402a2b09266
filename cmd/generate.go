package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"palettegen/pkg/config"
	"palettegen/pkg/palette"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	themeText  string
	colorCount int
	jsonOutput bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [theme]",
	Short: "Generate one palette and print it",
	Long:  "Sends one palette request for the theme and prints the colors as swatches, or as a JSON array with --json.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cmd.Flags().Changed("count") {
			if err := applyColorCount(cfg, colorCount); err != nil {
				return err
			}
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

		result, err := a.requester.Generate(ctx, resolveTheme(cmd.Flags().Changed("theme"), args))
		if err != nil {
			return err
		}

		if result.Fallback {
			fmt.Fprintln(cmd.ErrOrStderr(), "no colors found in the reply, using the fallback palette")
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), result.Palette)
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), renderSwatches(result.Palette))
		return err
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&themeText, "theme", "t", "", "theme text to generate colors for")
	generateCmd.Flags().IntVarP(&colorCount, "count", "n", config.DefaultColorCount, "number of colors to request")
	generateCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the palette as a JSON array")
}

// resolveTheme returns the theme exactly as given: the --theme value when the
// flag was set, otherwise the positional args joined by single spaces.
func resolveTheme(themeFlagSet bool, args []string) string {
	if themeFlagSet {
		return themeText
	}

	return strings.Join(args, " ")
}

func applyColorCount(cfg *config.Config, count int) error {
	cfg.Generator.ColorCount = count
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid --count: %w", err)
	}

	return nil
}

func writeJSON(w io.Writer, colors palette.Palette) error {
	encoder := json.NewEncoder(w)
	return encoder.Encode(colors.Strings())
}

func renderSwatches(colors palette.Palette) string {
	lines := make([]string, 0, len(colors))
	for _, color := range colors {
		fg := lipgloss.Color("#FAFAFA")
		if color.IsLight() {
			fg = lipgloss.Color("#1A1A1A")
		}

		swatch := lipgloss.NewStyle().
			Background(lipgloss.Color(string(color))).
			Foreground(fg).
			Padding(0, 2).
			Render(string(color))
		lines = append(lines, swatch)
	}

	return strings.Join(lines, "\n")
}

