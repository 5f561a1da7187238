package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vidyasagar/deskup/internal/dashboard"
	"github.com/vidyasagar/deskup/internal/launch"
	"github.com/vidyasagar/deskup/internal/logging"
	"github.com/vidyasagar/deskup/internal/preview"
	"github.com/vidyasagar/deskup/internal/theme"
	"github.com/vidyasagar/deskup/internal/ui"
)

const (
	// FrameInterval is how often the model asks the orchestrator for work.
	FrameInterval = 250 * time.Millisecond

	previewTimeout  = 10 * time.Second
	statusBarHeight = 1
)

// Model is the top-level bubbletea model for deskup.
type Model struct {
	// UI components
	viewport  ui.PanelViewport
	statusBar ui.StatusBar
	overlay   ui.Overlay

	// Data
	dash         *dashboard.Dashboard
	launcher     *launch.Launcher
	previewer    *preview.Previewer
	settingsPath string
	now          func() time.Time

	// Panel state
	panel     ui.Panel
	selected  int
	collapsed map[string]bool

	// previewURL is the bookmark shown in the overlay, opened on enter.
	previewURL string

	keys   KeyMap
	width  int
	height int
	ready  bool
}

// SlotSettledMsg is sent by the refresh runtime when a job finishes, so the
// settled slot renders without waiting for the next frame.
type SlotSettledMsg struct {
	Name string
}

// frameMsg drives the refresh loop.
type frameMsg time.Time

// previewLoadedMsg is sent when a bookmark preview finishes loading.
type previewLoadedMsg struct {
	url  string
	card *preview.Card
	err  error
}

// Option configures a Model.
type Option func(*Model)

// WithLauncher replaces the platform launcher.
func WithLauncher(l *launch.Launcher) Option {
	return func(m *Model) {
		m.launcher = l
	}
}

// WithPreviewer enables bookmark previews.
func WithPreviewer(p *preview.Previewer) Option {
	return func(m *Model) {
		m.previewer = p
	}
}

// WithSettingsPath sets the file the Settings entry opens.
func WithSettingsPath(path string) Option {
	return func(m *Model) {
		m.settingsPath = path
	}
}

// WithClock replaces time.Now for the greeting.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// New creates the model for dash.
func New(dash *dashboard.Dashboard, opts ...Option) Model {
	m := Model{
		viewport:  ui.NewPanelViewport(),
		statusBar: ui.NewStatusBar(),
		dash:      dash,
		launcher:  launch.New(),
		now:       time.Now,
		collapsed: make(map[string]bool),
		keys:      DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.rebuild()
	return m
}

// Init implements tea.Model. The first frame fires immediately.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return frameMsg(time.Now()) },
		m.statusBar.Tick(),
	)
}

func frame() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		m.rebuild()
		return m, nil

	case frameMsg:
		if n := m.dash.Refresh(); n > 0 {
			logging.Debug("frame dispatched fetches", "count", n)
		}
		if err := m.dash.TakeError(); err != nil {
			m.statusBar.SetError(err)
		}
		m.rebuild()
		return m, frame()

	case SlotSettledMsg:
		m.rebuild()
		return m, nil

	case previewLoadedMsg:
		return m.handlePreviewLoaded(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	}

	// Spinner ticks and anything else.
	cmd := m.statusBar.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading deskup..."
	}
	if m.overlay.IsVisible() {
		return m.overlay.View()
	}
	return m.viewport.View() + "\n" + m.statusBar.View()
}

// layout recalculates dimensions for all components.
func (m *Model) layout() {
	m.statusBar.SetWidth(m.width)
	m.overlay.SetSize(m.width, m.height)

	viewportHeight := m.height - statusBarHeight
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	m.viewport.SetSize(m.width, viewportHeight)
}

// rebuild renders the panel from a fresh snapshot. The selection follows
// the same item across rebuilds when it still exists.
func (m *Model) rebuild() {
	prev, hadPrev := m.selectedItem()

	m.panel = ui.Render(m.dash.Snapshot(), m.dash.Settings(), m.now(), m.collapsed, m.width)

	if hadPrev {
		for i, it := range m.panel.Items {
			if it.Kind == prev.Kind && it.Target == prev.Target && it.Label == prev.Label {
				m.selected = i
				break
			}
		}
	}
	m.selected = min(max(m.selected, 0), len(m.panel.Items)-1)

	m.viewport.SetContent(m.panel.View(m.selected))
	m.statusBar.SetLoading(m.dash.Loading())
	m.statusBar.SetInfo(fmt.Sprintf("%s  %s", theme.Current.Name, m.viewport.ScrollInfo()))
}

func (m *Model) selectedItem() (ui.Item, bool) {
	if m.selected < 0 || m.selected >= len(m.panel.Items) {
		return ui.Item{}, false
	}
	return m.panel.Items[m.selected], true
}

// selectIndex moves the selection and scrolls it into view.
func (m *Model) selectIndex(i int) {
	if len(m.panel.Items) == 0 {
		return
	}
	m.selected = min(max(i, 0), len(m.panel.Items)-1)
	m.viewport.SetContent(m.panel.View(m.selected))
	m.viewport.EnsureVisible(m.panel.Items[m.selected].Row)
	m.statusBar.SetInfo(fmt.Sprintf("%s  %s", theme.Current.Name, m.viewport.ScrollInfo()))
}

// handleKeyMsg processes key events.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Always allow Ctrl+C to quit.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.overlay.IsVisible() {
		return m.handleOverlayKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.selectIndex(m.selected - 1)

	case key.Matches(msg, m.keys.Down):
		m.selectIndex(m.selected + 1)

	case key.Matches(msg, m.keys.GotoTop):
		m.selectIndex(0)

	case key.Matches(msg, m.keys.GotoBottom):
		m.selectIndex(len(m.panel.Items) - 1)

	case key.Matches(msg, m.keys.PageDown), key.Matches(msg, m.keys.PageUp):
		return m, m.viewport.Update(msg)

	case key.Matches(msg, m.keys.Activate):
		if it, ok := m.selectedItem(); ok {
			m.activate(it)
		}

	case key.Matches(msg, m.keys.Preview):
		return m.startPreview()

	case key.Matches(msg, m.keys.Retry):
		if n := m.dash.Retry(); n > 0 {
			m.statusBar.SetMessage(fmt.Sprintf("Retrying %d failed section(s)", n))
		} else {
			m.statusBar.SetMessage("Nothing to retry")
		}
		m.rebuild()

	case key.Matches(msg, m.keys.Theme):
		next := theme.Next()
		theme.Set(next.Name)
		m.statusBar.SetMessage(fmt.Sprintf("Theme: %s", next.Name))
		m.rebuild()

	case key.Matches(msg, m.keys.Help):
		m.overlay.ShowHelp(m.keys.HelpGroups())

	case key.Matches(msg, m.keys.Close):
		m.statusBar.ClearMessage()
	}
	return m, nil
}

// handleOverlayKey processes keys while a popup is shown.
func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
		m.overlay.Hide()
		m.previewURL = ""
	case key.Matches(msg, m.keys.Activate):
		if m.previewURL != "" {
			m.open(m.previewURL, m.overlay.Title())
		}
		m.overlay.Hide()
		m.previewURL = ""
	}
	return m, nil
}

// handleMouseMsg maps left clicks to panel items and forwards the wheel to
// the viewport.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.overlay.IsVisible() {
		return m, nil
	}
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		if msg.Y >= m.viewport.Height() {
			return m, nil
		}
		row := msg.Y + m.viewport.YOffset()
		if i, ok := m.panel.ItemAt(msg.X, row); ok {
			m.selectIndex(i)
			m.activate(m.panel.Items[i])
		}
		return m, nil
	}
	cmd := m.viewport.Update(msg)
	m.statusBar.SetInfo(fmt.Sprintf("%s  %s", theme.Current.Name, m.viewport.ScrollInfo()))
	return m, cmd
}

// activate runs the action behind an item.
func (m *Model) activate(it ui.Item) {
	switch it.Kind {
	case ui.ItemToggle:
		m.collapsed[it.Target] = !m.collapsed[it.Target]
		m.rebuild()

	case ui.ItemDesktop, ui.ItemWeb:
		m.open(it.Target, it.Label)

	case ui.ItemTask:
		if err := m.dash.MarkDone(it.Target); err != nil {
			m.statusBar.SetError(err)
			return
		}
		m.statusBar.SetMessage(fmt.Sprintf("Completing %q...", it.Label))
		m.rebuild()

	case ui.ItemSettings:
		if m.settingsPath == "" {
			m.statusBar.SetError(errors.New("settings path unknown"))
			return
		}
		m.open(m.settingsPath, "settings")
	}
}

func (m *Model) open(target, label string) {
	if err := m.launcher.Launch(target); err != nil {
		logging.Warn("launch failed", "target", target, "err", err)
		m.statusBar.SetError(err)
		return
	}
	m.statusBar.SetMessage(fmt.Sprintf("Opened %s", label))
}

// startPreview loads the selected web bookmark in the background.
func (m Model) startPreview() (tea.Model, tea.Cmd) {
	it, ok := m.selectedItem()
	if !ok || it.Kind != ui.ItemWeb {
		m.statusBar.SetMessage("Select a web bookmark to preview")
		return m, nil
	}
	if m.previewer == nil {
		m.statusBar.SetError(errors.New("previews are disabled"))
		return m, nil
	}

	m.statusBar.SetMessage(fmt.Sprintf("Loading preview of %s...", it.Label))
	p := m.previewer
	target := it.Target
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), previewTimeout)
		defer cancel()
		card, err := p.Load(ctx, target)
		return previewLoadedMsg{url: target, card: card, err: err}
	}
}

// handlePreviewLoaded shows a finished preview in the overlay.
func (m Model) handlePreviewLoaded(msg previewLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		logging.Warn("preview failed", "url", msg.url, "err", msg.err)
		m.statusBar.SetError(msg.err)
		return m, nil
	}
	m.statusBar.ClearMessage()

	width := m.width - 12
	if width < 20 {
		width = 20
	}
	m.previewURL = msg.url
	m.overlay.ShowBody(msg.card.Title, m.previewer.Render(msg.card, width))
	return m, nil
}
