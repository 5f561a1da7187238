package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/deskup/internal/theme"
)

// HelpBinding is one key and what it does.
type HelpBinding struct {
	Key  string
	Desc string
}

// HelpGroup is a titled column of bindings.
type HelpGroup struct {
	Name     string
	Bindings []HelpBinding
}

// Overlay is a centered popup box drawn over the dashboard. It shows either
// the key help columns or a free-form body such as a bookmark preview.
type Overlay struct {
	visible bool
	title   string
	body    string
	groups  []HelpGroup
	footer  string
	width   int
	height  int
}

// ShowHelp opens the overlay with key help columns.
func (o *Overlay) ShowHelp(groups []HelpGroup) {
	o.visible = true
	o.title = "Keys"
	o.groups = groups
	o.body = ""
	o.footer = "press ? or esc to close"
}

// ShowBody opens the overlay with pre-rendered content.
func (o *Overlay) ShowBody(title, body string) {
	o.visible = true
	o.title = title
	o.body = body
	o.groups = nil
	o.footer = "press esc to close, enter to open"
}

// Hide closes the overlay.
func (o *Overlay) Hide() {
	o.visible = false
}

// IsVisible reports whether the overlay is shown.
func (o *Overlay) IsVisible() bool {
	return o.visible
}

// Title returns the overlay title.
func (o *Overlay) Title() string {
	return o.title
}

// SetSize sets the area the overlay is centered in.
func (o *Overlay) SetSize(w, h int) {
	o.width = w
	o.height = h
}

// View renders the overlay box, or "" when hidden.
func (o *Overlay) View() string {
	if !o.visible {
		return ""
	}
	t := theme.Current

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Title)
	separatorStyle := lipgloss.NewStyle().Foreground(t.Border)
	dimStyle := lipgloss.NewStyle().Foreground(t.Muted).Italic(true)

	body := o.body
	if o.groups != nil {
		body = o.helpColumns(t)
	}
	if o.width > 8 {
		body = lipgloss.NewStyle().MaxWidth(o.width - 8).Render(body)
	}
	if o.height > 10 {
		body = lipgloss.NewStyle().MaxHeight(o.height - 10).Render(body)
	}

	bodyWidth := max(lipgloss.Width(body), lipgloss.Width(o.title)+2)
	rule := separatorStyle.Render(strings.Repeat("─", bodyWidth))

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(o.title),
		rule,
		body,
		rule,
		dimStyle.Render(o.footer),
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Selection).
		Padding(1, 2).
		Render(content)

	if o.width > 0 && o.height > 0 {
		return lipgloss.Place(o.width, o.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (o *Overlay) helpColumns(t theme.Theme) string {
	groupStyle := lipgloss.NewStyle().Bold(true).Underline(true).Foreground(t.Heading)
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Surface).Background(t.Toggle).Padding(0, 1)
	descStyle := lipgloss.NewStyle().Foreground(t.Text)
	colStyle := lipgloss.NewStyle().Width(26)

	var columns []string
	for _, g := range o.groups {
		lines := []string{groupStyle.Render(g.Name), ""}
		for _, b := range g.Bindings {
			lines = append(lines, keyStyle.Render(b.Key)+descStyle.Render(" "+b.Desc))
		}
		columns = append(columns, colStyle.Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}
