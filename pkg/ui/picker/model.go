package picker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"palettegen/pkg/clipboard"
	"palettegen/pkg/palette"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	gridColumns      = 5
	swatchWidth      = 13
	swatchHeight     = 3
	defaultCopyDelay = 1200 * time.Millisecond
)

// GenerateFunc performs one palette request for theme.
type GenerateFunc func(ctx context.Context, theme string) (palette.Result, error)

// Options configures the widget.
type Options struct {
	Generate     GenerateFunc
	Clipboard    clipboard.Writer
	CopyFeedback time.Duration
	DarkMode     bool

	// Shown in the header only.
	Provider   string
	Model      string
	ColorCount int

	Logger *slog.Logger
}

type focus int

const (
	focusInput focus = iota
	focusPalette
)

type paletteResultMsg struct {
	result palette.Result
	err    error
}

type copyResultMsg struct {
	seq   uint64
	color palette.Color
	err   error
}

type copyExpiredMsg struct {
	seq uint64
}

type model struct {
	ctx  context.Context
	opts Options
	log  *slog.Logger

	state   State
	theme   theme
	spinner spinner.Model
	input   textinput.Model
	focus   focus
	cursor  int
	copyErr string
	width   int
	height  int
}

func newModel(ctx context.Context, opts Options) *model {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.CopyFeedback <= 0 {
		opts.CopyFeedback = defaultCopyDelay
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.Default()
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))

	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "Describe a theme: sunset, forest at dawn, neon arcade..."
	in.CharLimit = 0
	in.Focus()

	return &model{
		ctx:     ctx,
		opts:    opts,
		log:     log.With("component", "ui.palette"),
		state:   NewState(opts.DarkMode),
		theme:   themeFor(opts.DarkMode),
		spinner: spin,
		input:   in,
		width:   80,
		height:  24,
	}
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		m.input.Width = max(20, m.width-10)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	case paletteResultMsg:
		m.resolve(typed)
		return m, nil
	case copyResultMsg:
		if typed.err != nil {
			m.log.Warn("Clipboard write failed", "error", typed.err)
			m.copyErr = "clipboard unavailable"
			m.state.ExpireCopy(typed.seq)
			return m, nil
		}
		m.copyErr = ""
		m.log.Debug("Color copied", "color", string(typed.color))
		return m, nil
	case copyExpiredMsg:
		m.state.ExpireCopy(typed.seq)
		return m, nil
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "ctrl+t":
		m.state.ToggleTheme()
		m.theme = themeFor(m.state.DarkMode)
		return m, nil
	case "tab", "shift+tab":
		m.switchFocus()
		return m, nil
	}

	if m.focus == focusInput {
		if msg.String() == "enter" {
			return m, m.startRequest()
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key := msg.String(); key {
	case "left", "h":
		m.moveCursor(-1)
	case "right", "l":
		m.moveCursor(1)
	case "up", "k":
		m.moveCursor(-gridColumns)
	case "down", "j":
		m.moveCursor(gridColumns)
	case "enter", " ", "c":
		return m, m.copyColor(m.cursor)
	case "r":
		return m, m.startRequest()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9", "0":
		index := int(key[0] - '1')
		if key == "0" {
			index = 9
		}
		return m, m.copyColor(index)
	}

	return m, nil
}

func (m *model) switchFocus() {
	if m.focus == focusInput && len(m.state.Palette) > 0 {
		m.focus = focusPalette
		m.input.Blur()
		return
	}

	m.focus = focusInput
	m.input.Focus()
}

func (m *model) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.state.Palette) {
		return
	}
	m.cursor = next
}

// startRequest returns nil when a request is already outstanding.
func (m *model) startRequest() tea.Cmd {
	if !m.state.BeginRequest() {
		return nil
	}

	m.copyErr = ""
	return tea.Batch(m.spinner.Tick, generateCmd(m.ctx, m.opts.Generate, m.input.Value()))
}

func (m *model) resolve(msg paletteResultMsg) {
	switch {
	case msg.err != nil:
		m.state.ResolveError()
	case msg.result.Fallback:
		m.state.ResolveFallback()
	default:
		m.state.ResolveSuccess(msg.result.Palette)
	}

	if m.cursor >= len(m.state.Palette) {
		m.cursor = 0
	}
}

func (m *model) copyColor(index int) tea.Cmd {
	if index < 0 || index >= len(m.state.Palette) {
		return nil
	}

	color := m.state.Palette[index]
	seq := m.state.BeginCopy(index)
	m.cursor = index

	return tea.Batch(
		copyCmd(m.opts.Clipboard, seq, color),
		copyExpiryCmd(m.opts.CopyFeedback, seq),
	)
}

func (m *model) View() string {
	contentWidth := max(40, m.width-4)

	mode := "light"
	if m.state.DarkMode {
		mode = "dark"
	}
	header := m.theme.header.Width(contentWidth).Render("🎨 Palette Generator")
	meta := m.theme.headerMeta.Render(fmt.Sprintf(
		"provider:%s · model:%s · colors:%d · display:%s",
		displayOrNA(m.opts.Provider),
		displayOrNA(m.opts.Model),
		m.opts.ColorCount,
		mode,
	))
	line := m.theme.divider.Render(strings.Repeat("─", contentWidth))

	inputStyle := m.theme.input
	if m.focus == focusInput {
		inputStyle = m.theme.inputFocused
	}

	parts := []string{
		header,
		meta,
		line,
		m.theme.inputLabel.Render("Theme"),
		inputStyle.Width(contentWidth - 2).Render(m.input.View()),
		m.renderPalette(),
		m.statusLine(),
		m.theme.hint.Render("enter generate/copy · tab focus · ←/→ move · 1-0 copy · ctrl+t light/dark · esc quit"),
	}

	return m.theme.frame.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m *model) renderPalette() string {
	if len(m.state.Palette) == 0 {
		return m.theme.empty.Render("No palette yet. Type a theme and press enter.")
	}

	rows := make([]string, 0, (len(m.state.Palette)+gridColumns-1)/gridColumns)
	row := make([]string, 0, gridColumns)
	for i, color := range m.state.Palette {
		row = append(row, m.renderSwatch(i, color))
		if len(row) == gridColumns {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = row[:0]
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *model) renderSwatch(index int, color palette.Color) string {
	style := m.theme.swatch
	if m.focus == focusPalette && index == m.cursor {
		style = m.theme.swatchCursor
	}

	label := fmt.Sprintf("%d %s", (index+1)%10, color)
	if index >= 10 {
		label = string(color)
	}
	if index == m.state.Copied {
		style = m.theme.swatchCopied
		label = "✓ Copied!"
	}

	fg := m.theme.lightLabel
	if color.IsLight() {
		fg = m.theme.darkLabel
	}

	return style.
		Width(swatchWidth).
		Height(swatchHeight).
		Background(lipgloss.Color(string(color))).
		Foreground(fg).
		Render(label)
}

func (m *model) statusLine() string {
	switch {
	case m.state.Loading:
		return m.theme.statusBusy.Render(fmt.Sprintf("%s generating palette...", m.spinner.View()))
	case m.state.Copied != NoCopy:
		return m.theme.statusOK.Render(fmt.Sprintf("copied %s", m.state.Palette[m.state.Copied]))
	case m.copyErr != "":
		return m.theme.statusErr.Render(m.copyErr)
	case m.state.Failed:
		return m.theme.statusErr.Render("request failed, check the log and try again")
	case m.state.Fallback:
		return m.theme.status.Render("no colors in reply, showing fallback palette")
	default:
		return m.theme.status.Render("ready")
	}
}

func generateCmd(ctx context.Context, generate GenerateFunc, theme string) tea.Cmd {
	return func() tea.Msg {
		if generate == nil {
			return paletteResultMsg{err: errors.New("palette generator is not configured")}
		}
		result, err := generate(ctx, theme)
		return paletteResultMsg{result: result, err: err}
	}
}

func copyCmd(writer clipboard.Writer, seq uint64, color palette.Color) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{seq: seq, color: color, err: writer.WriteAll(string(color))}
	}
}

func copyExpiryCmd(delay time.Duration, seq uint64) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return copyExpiredMsg{seq: seq}
	})
}

func displayOrNA(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "n/a"
	}

	return trimmed
}
