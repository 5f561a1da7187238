package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/deskup/internal/theme"
)

// StatusBar is the bottom line: a spinner while fetches are in flight, the
// latest message and a right-aligned info segment.
type StatusBar struct {
	spinner spinner.Model
	loading bool
	message string
	isError bool
	info    string
	width   int
}

// NewStatusBar creates a status bar.
func NewStatusBar() StatusBar {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	return StatusBar{spinner: sp}
}

// SetWidth sets the status bar width.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// SetLoading toggles the spinner.
func (s *StatusBar) SetLoading(loading bool) {
	s.loading = loading
}

// Loading reports whether the spinner is shown.
func (s *StatusBar) Loading() bool {
	return s.loading
}

// SetMessage shows an informational message.
func (s *StatusBar) SetMessage(msg string) {
	s.message = msg
	s.isError = false
}

// SetError shows err until the next message.
func (s *StatusBar) SetError(err error) {
	if err == nil {
		return
	}
	s.message = err.Error()
	s.isError = true
}

// ClearMessage removes the current message.
func (s *StatusBar) ClearMessage() {
	s.message = ""
	s.isError = false
}

// Message returns the current message.
func (s *StatusBar) Message() string {
	return s.message
}

// SetInfo sets the right-aligned segment.
func (s *StatusBar) SetInfo(info string) {
	s.info = info
}

// Tick starts the spinner animation.
func (s *StatusBar) Tick() tea.Cmd {
	return s.spinner.Tick
}

// Update advances the spinner.
func (s *StatusBar) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return cmd
}

// View renders the status bar.
func (s *StatusBar) View() string {
	t := theme.Current

	badge := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Surface).
		Background(t.Title).
		Padding(0, 1).
		Render("DeskUp")

	var left string
	switch {
	case s.message != "" && s.isError:
		left = lipgloss.NewStyle().
			Foreground(t.Error).
			Background(t.Surface).
			Padding(0, 1).
			Render("✗ " + s.message)
	case s.message != "":
		left = lipgloss.NewStyle().
			Foreground(t.Info).
			Background(t.Surface).
			Padding(0, 1).
			Render(s.message)
	case s.loading:
		left = lipgloss.NewStyle().
			Foreground(t.Warning).
			Background(t.Surface).
			Padding(0, 1).
			Render(s.spinner.View() + " Loading...")
	}

	right := lipgloss.NewStyle().
		Foreground(t.Muted).
		Background(t.Surface).
		Padding(0, 1).
		Render(s.info)

	spacerWidth := s.width - lipgloss.Width(badge) - lipgloss.Width(left) - lipgloss.Width(right)
	if spacerWidth < 0 {
		spacerWidth = 0
	}
	spacer := lipgloss.NewStyle().
		Background(t.Surface).
		Render(strings.Repeat(" ", spacerWidth))

	return badge + left + spacer + right
}
