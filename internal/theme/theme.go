package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the dashboard color palette.
type Theme struct {
	Name string

	Title   lipgloss.Color // DeskUp heading
	Heading lipgloss.Color // section headings
	Toggle  lipgloss.Color // collapsible sub-lists and categories

	Text  lipgloss.Color
	Muted lipgloss.Color // loading placeholders, hints
	Link  lipgloss.Color // bookmarks

	Surface   lipgloss.Color // status bar, selection background
	Border    lipgloss.Color
	Selection lipgloss.Color

	Error   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Info    lipgloss.Color
}

var themes = map[string]Theme{
	"default":    Default,
	"gruvbox":    Gruvbox,
	"nord":       Nord,
	"tokyonight": TokyoNight,
}

var Default = Theme{
	Name:      "default",
	Title:     lipgloss.Color("#F59E0B"),
	Heading:   lipgloss.Color("#A78BFA"),
	Toggle:    lipgloss.Color("#06B6D4"),
	Text:      lipgloss.Color("#E2E8F0"),
	Muted:     lipgloss.Color("#64748B"),
	Link:      lipgloss.Color("#38BDF8"),
	Surface:   lipgloss.Color("#1E293B"),
	Border:    lipgloss.Color("#334155"),
	Selection: lipgloss.Color("#7C3AED"),
	Error:     lipgloss.Color("#EF4444"),
	Success:   lipgloss.Color("#22C55E"),
	Warning:   lipgloss.Color("#F59E0B"),
	Info:      lipgloss.Color("#3B82F6"),
}

var Gruvbox = Theme{
	Name:      "gruvbox",
	Title:     lipgloss.Color("#FABD2F"),
	Heading:   lipgloss.Color("#FB4934"),
	Toggle:    lipgloss.Color("#8EC07C"),
	Text:      lipgloss.Color("#EBDBB2"),
	Muted:     lipgloss.Color("#928374"),
	Link:      lipgloss.Color("#83A598"),
	Surface:   lipgloss.Color("#3C3836"),
	Border:    lipgloss.Color("#504945"),
	Selection: lipgloss.Color("#D65D0E"),
	Error:     lipgloss.Color("#FB4934"),
	Success:   lipgloss.Color("#B8BB26"),
	Warning:   lipgloss.Color("#FABD2F"),
	Info:      lipgloss.Color("#83A598"),
}

var Nord = Theme{
	Name:      "nord",
	Title:     lipgloss.Color("#EBCB8B"),
	Heading:   lipgloss.Color("#B48EAD"),
	Toggle:    lipgloss.Color("#8FBCBB"),
	Text:      lipgloss.Color("#D8DEE9"),
	Muted:     lipgloss.Color("#616E88"),
	Link:      lipgloss.Color("#88C0D0"),
	Surface:   lipgloss.Color("#3B4252"),
	Border:    lipgloss.Color("#434C5E"),
	Selection: lipgloss.Color("#5E81AC"),
	Error:     lipgloss.Color("#BF616A"),
	Success:   lipgloss.Color("#A3BE8C"),
	Warning:   lipgloss.Color("#EBCB8B"),
	Info:      lipgloss.Color("#81A1C1"),
}

var TokyoNight = Theme{
	Name:      "tokyonight",
	Title:     lipgloss.Color("#E0AF68"),
	Heading:   lipgloss.Color("#BB9AF7"),
	Toggle:    lipgloss.Color("#7DCFFF"),
	Text:      lipgloss.Color("#C0CAF5"),
	Muted:     lipgloss.Color("#565F89"),
	Link:      lipgloss.Color("#7AA2F7"),
	Surface:   lipgloss.Color("#24283B"),
	Border:    lipgloss.Color("#3B4261"),
	Selection: lipgloss.Color("#3D59A1"),
	Error:     lipgloss.Color("#F7768E"),
	Success:   lipgloss.Color("#9ECE6A"),
	Warning:   lipgloss.Color("#E0AF68"),
	Info:      lipgloss.Color("#7AA2F7"),
}

// Current is the active theme.
var Current = Default

// Set changes the active theme by name.
func Set(name string) bool {
	if t, ok := themes[name]; ok {
		Current = t
		return true
	}
	return false
}

// List returns all available theme names, sorted.
func List() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Next returns the theme after the current one in List order.
func Next() Theme {
	names := List()
	for i, n := range names {
		if n == Current.Name {
			return themes[names[(i+1)%len(names)]]
		}
	}
	return Default
}
