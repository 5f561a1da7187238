package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/vidyasagar/deskup/internal/config"
	"github.com/vidyasagar/deskup/internal/dashboard"
	"github.com/vidyasagar/deskup/internal/feeds"
	"github.com/vidyasagar/deskup/internal/refresh"
	"github.com/vidyasagar/deskup/internal/theme"
)

// Toggle keys for the collapsible sub-lists. Bookmark categories are keyed
// by CategoryKey.
const (
	ToggleJapan = "anniversary/japan"
	ToggleWorld = "anniversary/world"
)

// CategoryKey is the toggle key of the index-th category of a bookmark
// group. The index keeps same-named categories apart.
func CategoryKey(group string, index int, name string) string {
	return fmt.Sprintf("%s/%d/%s", group, index, name)
}

const (
	gridGap      = 3
	gridMinWidth = 56
)

// ItemKind is what activating an item does.
type ItemKind int

const (
	ItemToggle ItemKind = iota
	ItemDesktop
	ItemWeb
	ItemTask
	ItemSettings
)

func (k ItemKind) String() string {
	switch k {
	case ItemToggle:
		return "toggle"
	case ItemDesktop:
		return "desktop"
	case ItemWeb:
		return "web"
	case ItemTask:
		return "task"
	case ItemSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// Item is one selectable entry of the panel. Target is the toggle key,
// bookmark URL or task id. A wrapped item starts at Row and spans Height
// rows.
type Item struct {
	Kind   ItemKind
	Label  string
	Target string
	Row    int
	Height int
	X      int
	Width  int
}

// CellStyle selects the theme color for a cell.
type CellStyle int

const (
	StyleText CellStyle = iota
	StyleTitle
	StyleHeading
	StyleToggle
	StyleMuted
	StyleError
	StyleNotice
	StyleLink
	StyleTask
	StyleAction
)

// Cell is a run of text placed at column X of a row. Item is the index of
// the item it belongs to, or -1.
type Cell struct {
	Text  string
	Style CellStyle
	Item  int
	X     int
	Width int
}

// Row is one screen line.
type Row []Cell

// Panel is the laid-out dashboard for one frame.
type Panel struct {
	Rows  []Row
	Items []Item
	Width int
}

// entry is a line inside one column before it is placed on a row.
type entry struct {
	text       string
	style      CellStyle
	selectable bool
	kind       ItemKind
	target     string
	label      string
}

func plain(s string, style CellStyle) entry {
	return entry{text: s, style: style}
}

func selectable(kind ItemKind, label, target, s string, style CellStyle) entry {
	return entry{text: s, style: style, selectable: true, kind: kind, target: target, label: label}
}

// Render lays out the dashboard. It reads nothing but its arguments.
func Render(snap dashboard.Snapshot, s *config.Settings, now time.Time, collapsed map[string]bool, width int) Panel {
	if width <= 0 {
		width = 80
	}
	p := &Panel{Width: width}

	p.add(plain("DeskUp", StyleTitle))
	p.add(plain(GreetingLine(s.UserName, now.Hour()), StyleText))

	p.blank()
	p.add(plain("Weather", StyleHeading))
	p.addAll(slotEntries(snap.Weather, "weather data", "Loading weather data...",
		"Weather not configured: set weather_api_key and location in config.toml",
		func(w feeds.Weather) []entry {
			return []entry{plain(WeatherLine(s.Location, w), StyleText)}
		}))

	p.blank()
	p.add(plain("What day is it today?", StyleHeading))
	p.addAll(toggled(ToggleJapan, "Anniversary in Japan", collapsed, func() []entry {
		return slotEntries(snap.Anniversaries, "anniversary data", "Loading anniversary data...", "",
			anniversaryEntries)
	}))
	p.addAll(toggled(ToggleWorld, "Anniversary in the world", collapsed, func() []entry {
		return slotEntries(snap.Holidays, "holiday data", "Loading anniversary data...",
			"Holidays not configured: set country_code in config.toml",
			holidayEntries)
	}))

	p.blank()
	p.add(plain("Joke of the day", StyleHeading))
	p.addAll(slotEntries(snap.Joke, "joke", "Loading joke data...", "",
		func(j string) []entry { return []entry{plain(j, StyleText)} }))

	p.blank()
	desktop := bookmarkColumn("Desktop Applications", "desktop", ItemDesktop, s.Bookmarks.Desktop, collapsed)
	web := bookmarkColumn("WEB Applications", "web", ItemWeb, s.Bookmarks.Web, collapsed)
	if width >= gridMinWidth {
		p.grid(desktop, web)
	} else {
		p.addAll(desktop)
		p.blank()
		p.addAll(web)
	}

	p.blank()
	p.add(plain("Tasks", StyleHeading))
	p.addAll(taskEntries(snap))

	p.blank()
	p.add(selectable(ItemSettings, "Settings", "", "⚙ Settings (open config.toml)", StyleAction))

	return *p
}

// slotEntries renders one slot according to its status. An empty
// notConfigured message means the slot is always configured.
func slotEntries[T any](st refresh.State[T], what, loading, notConfigured string, ready func(T) []entry) []entry {
	switch st.Status() {
	case refresh.StatusReady:
		return ready(st.Value)
	case refresh.StatusFailed:
		return []entry{plain(fmt.Sprintf("Failed to load %s: %v (press r to retry)", what, st.Err), StyleError)}
	case refresh.StatusNotConfigured:
		if notConfigured == "" {
			notConfigured = what + " not configured"
		}
		return []entry{plain(notConfigured, StyleNotice)}
	default:
		return []entry{plain(loading, StyleMuted)}
	}
}

func anniversaryEntries(list []feeds.Anniversary) []entry {
	if len(list) == 0 {
		return []entry{plain("Nothing recorded for today.", StyleMuted)}
	}
	out := make([]entry, 0, len(list))
	for _, a := range list {
		line := "・" + a.Name
		if a.Description != "" {
			line += ": " + a.Description
		}
		out = append(out, plain(line, StyleText))
	}
	return out
}

func holidayEntries(list []feeds.Holiday) []entry {
	if len(list) == 0 {
		return []entry{plain("No public holidays found.", StyleMuted)}
	}
	out := make([]entry, 0, len(list))
	for _, h := range list {
		out = append(out, plain(fmt.Sprintf("・%s: %s (%s)", h.Date, h.Name, h.LocalName), StyleText))
	}
	return out
}

// toggled renders a collapsible header followed by body unless collapsed.
func toggled(key, label string, collapsed map[string]bool, body func() []entry) []entry {
	marker := "▾ "
	if collapsed[key] {
		marker = "▸ "
	}
	out := []entry{selectable(ItemToggle, label, key, marker+label, StyleToggle)}
	if !collapsed[key] {
		out = append(out, indent(body())...)
	}
	return out
}

func indent(entries []entry) []entry {
	for i := range entries {
		entries[i].text = "  " + entries[i].text
	}
	return entries
}

func bookmarkColumn(heading, group string, kind ItemKind, cats []config.Category, collapsed map[string]bool) []entry {
	out := []entry{plain(heading, StyleHeading)}
	if len(cats) == 0 {
		return append(out, plain("No bookmarks.", StyleMuted))
	}
	for i, c := range cats {
		out = append(out, toggled(CategoryKey(group, i, c.Name), c.Name, collapsed, func() []entry {
			items := make([]entry, 0, len(c.Items))
			for _, b := range c.Items {
				items = append(items, selectable(kind, b.Name, b.URL, b.Name, StyleLink))
			}
			return items
		})...)
	}
	return out
}

func taskEntries(snap dashboard.Snapshot) []entry {
	if snap.Tasks.Status() != refresh.StatusReady {
		return slotEntries(snap.Tasks, "tasks", "Loading tasks...",
			"Tasks not configured: set notion_api_key and notion_database_id in config.toml", nil)
	}
	tasks := snap.VisibleTasks()
	if len(tasks) == 0 {
		return []entry{plain("No open tasks.", StyleMuted)}
	}
	out := make([]entry, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, selectable(ItemTask, t.Title, t.ID, "[ ] "+t.Title, StyleTask))
	}
	return out
}

func (p *Panel) blank() {
	p.Rows = append(p.Rows, nil)
}

func (p *Panel) add(e entry) {
	p.addAll([]entry{e})
}

func (p *Panel) addAll(entries []entry) {
	for _, c := range p.place(entries, len(p.Rows), 0, p.Width) {
		p.Rows = append(p.Rows, Row{c})
	}
}

// grid places two columns side by side, each wrapped to its own width.
func (p *Panel) grid(left, right []entry) {
	leftWidth := (p.Width - gridGap) / 2
	rightX := leftWidth + gridGap
	rightWidth := p.Width - rightX

	row := len(p.Rows)
	l := p.place(left, row, 0, leftWidth)
	r := p.place(right, row, rightX, rightWidth)

	for i := 0; i < max(len(l), len(r)); i++ {
		var cells Row
		if i < len(l) {
			cells = append(cells, l[i])
		}
		if i < len(r) {
			cells = append(cells, r[i])
		}
		p.Rows = append(p.Rows, cells)
	}
}

// place wraps entries into one cell per line, starting at row, and
// registers the selectable ones. Continuation lines share their item.
func (p *Panel) place(entries []entry, row, x, width int) []Cell {
	var out []Cell
	for _, e := range entries {
		lines := wrap(e.text, width)
		item := -1
		if e.selectable {
			item = len(p.Items)
			p.Items = append(p.Items, Item{
				Kind:   e.kind,
				Label:  e.label,
				Target: e.target,
				Row:    row + len(out),
				Height: len(lines),
				X:      x,
				Width:  width,
			})
		}
		for _, l := range lines {
			out = append(out, Cell{Text: l, Style: e.style, Item: item, X: x, Width: width})
		}
	}
	return out
}

// wrap splits text on newlines and word-wraps each line to width cells.
// Continuation lines keep the leading indent of their line.
func wrap(text string, width int) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, line := range strings.Split(text, "\n") {
		body := strings.TrimLeft(line, " ")
		lead := line[:len(line)-len(body)]
		avail := width - len(lead)
		if avail < 1 {
			lead, avail = "", width
		}
		if body == "" {
			out = append(out, "")
			continue
		}
		for _, w := range strings.Split(ansi.Wrap(body, avail, ""), "\n") {
			out = append(out, lead+strings.TrimRight(w, " "))
		}
	}
	return out
}

// ItemAt returns the item under screen column x of row.
func (p Panel) ItemAt(x, row int) (int, bool) {
	for i, it := range p.Items {
		if row >= it.Row && row < it.Row+max(it.Height, 1) && x >= it.X && x < it.X+it.Width {
			return i, true
		}
	}
	return -1, false
}

// Lines returns the panel as plain text, one string per row.
func (p Panel) Lines() []string {
	lines := make([]string, len(p.Rows))
	for i, r := range p.Rows {
		lines[i] = p.line(r, -1, nil)
	}
	return lines
}

// String is the plain-text panel.
func (p Panel) String() string {
	return strings.Join(p.Lines(), "\n")
}

// View renders the panel with theme colors, highlighting item selected.
func (p Panel) View(selected int) string {
	styles := cellStyles(theme.Current)
	lines := make([]string, len(p.Rows))
	for i, r := range p.Rows {
		lines[i] = p.line(r, selected, styles)
	}
	return strings.Join(lines, "\n")
}

func (p Panel) line(r Row, selected int, styles map[CellStyle]lipgloss.Style) string {
	var sb strings.Builder
	col := 0
	for _, c := range r {
		if c.X > col {
			sb.WriteString(strings.Repeat(" ", c.X-col))
			col = c.X
		}
		s := ansi.Truncate(c.Text, c.Width, "…")
		w := ansi.StringWidth(s)
		if styles != nil {
			st := styles[c.Style]
			if c.Item >= 0 && c.Item == selected {
				st = styles[selectedStyle]
			}
			s = st.Render(s)
		}
		sb.WriteString(s)
		col += w
	}
	return strings.TrimRight(sb.String(), " ")
}

const selectedStyle CellStyle = -1

func cellStyles(t theme.Theme) map[CellStyle]lipgloss.Style {
	base := lipgloss.NewStyle()
	return map[CellStyle]lipgloss.Style{
		StyleText:     base.Foreground(t.Text),
		StyleTitle:    base.Bold(true).Foreground(t.Title),
		StyleHeading:  base.Bold(true).Underline(true).Foreground(t.Heading),
		StyleToggle:   base.Bold(true).Foreground(t.Toggle),
		StyleMuted:    base.Italic(true).Foreground(t.Muted),
		StyleError:    base.Foreground(t.Error),
		StyleNotice:   base.Foreground(t.Warning),
		StyleLink:     base.Foreground(t.Link),
		StyleTask:     base.Foreground(t.Text),
		StyleAction:   base.Foreground(t.Info),
		selectedStyle: base.Bold(true).Foreground(t.Text).Background(t.Selection),
	}
}
