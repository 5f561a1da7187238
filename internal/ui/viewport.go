package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// PanelViewport wraps bubbles/viewport for the scrollable dashboard body.
type PanelViewport struct {
	viewport viewport.Model
	ready    bool
}

// NewPanelViewport creates a viewport; dimensions are set on the first
// WindowSizeMsg.
func NewPanelViewport() PanelViewport {
	return PanelViewport{}
}

// SetSize updates the viewport dimensions.
func (pv *PanelViewport) SetSize(width, height int) {
	if !pv.ready {
		pv.viewport = viewport.New(width, height)
		pv.viewport.MouseWheelEnabled = true
		pv.viewport.MouseWheelDelta = 3
		pv.ready = true
		return
	}
	pv.viewport.Width = width
	pv.viewport.Height = height
}

// SetContent replaces the content, keeping the scroll offset.
func (pv *PanelViewport) SetContent(content string) {
	if pv.ready {
		pv.viewport.SetContent(content)
	}
}

// Update forwards messages (mouse wheel, paging keys) to the viewport.
func (pv *PanelViewport) Update(msg tea.Msg) tea.Cmd {
	if !pv.ready {
		return nil
	}
	var cmd tea.Cmd
	pv.viewport, cmd = pv.viewport.Update(msg)
	return cmd
}

// View renders the visible part of the content.
func (pv *PanelViewport) View() string {
	if !pv.ready {
		return "\n  Initializing..."
	}
	return pv.viewport.View()
}

// Ready reports whether the viewport has been sized.
func (pv *PanelViewport) Ready() bool {
	return pv.ready
}

// YOffset is the first visible content row.
func (pv *PanelViewport) YOffset() int {
	return pv.viewport.YOffset
}

// Height returns the viewport height.
func (pv *PanelViewport) Height() int {
	if !pv.ready {
		return 0
	}
	return pv.viewport.Height
}

// EnsureVisible scrolls the minimum amount to show content row.
func (pv *PanelViewport) EnsureVisible(row int) {
	if !pv.ready || pv.viewport.Height <= 0 {
		return
	}
	top := pv.viewport.YOffset
	bottom := top + pv.viewport.Height - 1
	switch {
	case row < top:
		pv.viewport.SetYOffset(row)
	case row > bottom:
		pv.viewport.SetYOffset(row - pv.viewport.Height + 1)
	}
}

// ScrollInfo returns "TOP", "BOT" or a percentage.
func (pv *PanelViewport) ScrollInfo() string {
	if !pv.ready || pv.viewport.TotalLineCount() <= pv.viewport.Height {
		return "ALL"
	}
	pct := pv.viewport.ScrollPercent()
	switch {
	case pct <= 0:
		return "TOP"
	case pct >= 1:
		return "BOT"
	default:
		return fmt.Sprintf("%d%%", int(pct*100))
	}
}
