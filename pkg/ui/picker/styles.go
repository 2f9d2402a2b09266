package picker

import "github.com/charmbracelet/lipgloss"

// theme groups reusable styles for widget regions.
type theme struct {
	header       lipgloss.Style
	headerMeta   lipgloss.Style
	divider      lipgloss.Style
	inputLabel   lipgloss.Style
	input        lipgloss.Style
	inputFocused lipgloss.Style
	swatch       lipgloss.Style
	swatchCursor lipgloss.Style
	swatchCopied lipgloss.Style
	darkLabel    lipgloss.Color
	lightLabel   lipgloss.Color
	empty        lipgloss.Style
	status       lipgloss.Style
	statusBusy   lipgloss.Style
	statusErr    lipgloss.Style
	statusOK     lipgloss.Style
	hint         lipgloss.Style
	frame        lipgloss.Style
}

func themeFor(dark bool) theme {
	if dark {
		return darkTheme()
	}

	return lightTheme()
}

func lightTheme() theme {
	return theme{
		header: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("61")),
		headerMeta: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		divider: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")),
		inputLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("236")),
		input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("250")).
			Foreground(lipgloss.Color("235")).
			Background(lipgloss.Color("255")).
			Padding(0, 1),
		inputFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("61")).
			Foreground(lipgloss.Color("235")).
			Background(lipgloss.Color("255")).
			Padding(0, 1),
		swatch: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("252")).
			Align(lipgloss.Center, lipgloss.Center),
		swatchCursor: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("61")).
			Align(lipgloss.Center, lipgloss.Center),
		swatchCopied: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("34")).
			Align(lipgloss.Center, lipgloss.Center),
		darkLabel:  lipgloss.Color("#1A1A1A"),
		lightLabel: lipgloss.Color("#FAFAFA"),
		empty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true),
		status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Bold(true),
		statusBusy: lipgloss.NewStyle().
			Foreground(lipgloss.Color("130")).
			Bold(true),
		statusErr: lipgloss.NewStyle().
			Foreground(lipgloss.Color("160")).
			Bold(true),
		statusOK: lipgloss.NewStyle().
			Foreground(lipgloss.Color("28")).
			Bold(true),
		hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")),
		frame: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("252")).
			Background(lipgloss.Color("255")).
			Padding(0, 1),
	}
}

func darkTheme() theme {
	return theme{
		header: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("54")),
		headerMeta: lipgloss.NewStyle().
			Foreground(lipgloss.Color("223")),
		divider: lipgloss.NewStyle().
			Foreground(lipgloss.Color("239")),
		inputLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")),
		input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("239")).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1),
		inputFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("141")).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1),
		swatch: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Align(lipgloss.Center, lipgloss.Center),
		swatchCursor: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("141")).
			Align(lipgloss.Center, lipgloss.Center),
		swatchCopied: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("114")).
			Align(lipgloss.Center, lipgloss.Center),
		darkLabel:  lipgloss.Color("#1A1A1A"),
		lightLabel: lipgloss.Color("#FAFAFA"),
		empty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true),
		status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Bold(true),
		statusBusy: lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")).
			Bold(true),
		statusErr: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true),
		statusOK: lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")).
			Bold(true),
		hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")),
		frame: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("239")).
			Background(lipgloss.Color("234")).
			Padding(0, 1),
	}
}
