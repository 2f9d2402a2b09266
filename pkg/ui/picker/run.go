package picker

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Run starts the interactive widget in the alternate screen and blocks until
// the user quits or ctx is canceled.
func Run(ctx context.Context, opts Options) error {
	program := tea.NewProgram(newModel(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}

	if m, ok := final.(*model); ok && len(m.state.Palette) > 0 {
		fmt.Println(renderGoodbyeBanner(m.state.Palette.String()))
	}
	return nil
}

func renderGoodbyeBanner(colors string) string {
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("54")).
		Padding(0, 1)

	return style.Render("last palette: " + colors)
}
