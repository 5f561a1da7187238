package preview

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Cached glamour renderer, rebuilt when the width or style changes.
var (
	cachedRenderer      *glamour.TermRenderer
	cachedRendererWidth int
	cachedRendererStyle string
	rendererMu          sync.Mutex
)

// Markdown lays out a card as a markdown document.
func Markdown(card *Card) string {
	var md strings.Builder

	md.WriteString("# " + card.Title + "\n\n")
	var meta []string
	if card.SiteName != "" {
		meta = append(meta, card.SiteName)
	}
	if card.Byline != "" {
		meta = append(meta, card.Byline)
	}
	if len(meta) > 0 {
		md.WriteString("*" + strings.Join(meta, " · ") + "*\n\n")
	}
	if card.Excerpt != "" {
		md.WriteString(card.Excerpt + "\n\n")
	}
	md.WriteString("---\n\n")
	fmt.Fprintf(&md, "<%s>\n", card.URL)
	return md.String()
}

// Render turns a card into styled terminal text. On a glamour error the
// plain markdown is returned.
func Render(card *Card, width int, style string) string {
	if width <= 0 {
		width = 80
	}
	contentWidth := width - 4
	if contentWidth > 100 {
		contentWidth = 100
	}

	md := Markdown(card)
	out, err := renderWithGlamour(md, contentWidth, style)
	if err != nil {
		return md
	}
	return out
}

func renderWithGlamour(markdown string, width int, style string) (string, error) {
	rendererMu.Lock()
	defer rendererMu.Unlock()

	if cachedRenderer == nil || cachedRendererWidth != width || cachedRendererStyle != style {
		styleOpt := glamour.WithAutoStyle()
		if style != "" && style != "auto" {
			styleOpt = glamour.WithStandardStyle(style)
		}
		renderer, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
		if err != nil {
			return "", err
		}
		cachedRenderer = renderer
		cachedRendererWidth = width
		cachedRendererStyle = style
	}

	return cachedRenderer.Render(markdown)
}
