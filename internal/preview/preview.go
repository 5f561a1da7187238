// Package preview loads a short readable summary of a web bookmark.
package preview

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vidyasagar/deskup/internal/fetch"
	"github.com/vidyasagar/deskup/internal/logging"
)

// DefaultCacheSize is the number of cards kept per session.
const DefaultCacheSize = 32

// ErrNotWeb is returned for bookmarks that are not web addresses.
var ErrNotWeb = errors.New("not a web address")

// Previewer fetches and caches bookmark cards.
type Previewer struct {
	http  *fetch.Client
	cache *lru.Cache[string, *Card]
	style string
}

// Option configures a Previewer.
type Option func(*Previewer)

// WithStyle selects a glamour standard style ("dark", "light", "notty"...).
func WithStyle(style string) Option {
	return func(p *Previewer) {
		p.style = style
	}
}

// New creates a Previewer on the shared HTTP client.
func New(c *fetch.Client, opts ...Option) (*Previewer, error) {
	cache, err := lru.New[string, *Card](DefaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating preview cache: %w", err)
	}
	p := &Previewer{http: c, cache: cache, style: "auto"}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Load returns the card for rawURL, from the cache when possible.
func (p *Previewer) Load(ctx context.Context, rawURL string) (*Card, error) {
	u, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}
	if card, ok := p.cache.Get(u); ok {
		return card, nil
	}

	page, err := fetchPage(ctx, p.http, u)
	if err != nil {
		return nil, fmt.Errorf("loading preview: %w", err)
	}
	card, err := Extract(page)
	if err != nil {
		return nil, fmt.Errorf("loading preview: %w", err)
	}

	p.cache.Add(u, card)
	logging.Debug("preview loaded", "url", u, "elapsed", page.Duration)
	return card, nil
}

// Render formats card for the given width in the configured style.
func (p *Previewer) Render(card *Card, width int) string {
	return Render(card, width, p.style)
}

// Len reports how many cards are cached.
func (p *Previewer) Len() int {
	return p.cache.Len()
}
