package preview

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

const excerptLimit = 400

// Card is the summary shown for a previewed bookmark.
type Card struct {
	Title    string
	SiteName string
	Byline   string
	Excerpt  string
	URL      string
	Elapsed  time.Duration
}

// Extract builds a Card from a fetched page. Readability supplies the
// article fields; <title> and meta tags fill whatever it leaves empty.
func Extract(page *Page) (*Card, error) {
	card := &Card{URL: page.FinalURL, Elapsed: page.Duration}

	if !IsHTML(page.ContentType) {
		card.Title = page.FinalURL
		card.Excerpt = truncate(strings.TrimSpace(string(page.Body)), excerptLimit)
		return card, nil
	}

	parsedURL, err := url.Parse(page.FinalURL)
	if err != nil {
		return nil, fmt.Errorf("parsing URL: %w", err)
	}

	if article, err := readability.FromReader(bytes.NewReader(page.Body), parsedURL); err == nil {
		card.Title = strings.TrimSpace(article.Title)
		card.SiteName = strings.TrimSpace(article.SiteName)
		card.Byline = strings.TrimSpace(article.Byline)
		card.Excerpt = strings.TrimSpace(article.Excerpt)
		if card.Excerpt == "" {
			card.Excerpt = strings.TrimSpace(article.TextContent)
		}
	}

	if card.Title == "" || card.Excerpt == "" || card.SiteName == "" {
		if err := fillFromMeta(card, page.Body); err != nil {
			return nil, err
		}
	}
	if card.Title == "" {
		card.Title = parsedURL.Host
	}
	card.Excerpt = truncate(collapseSpace(card.Excerpt), excerptLimit)
	return card, nil
}

// fillFromMeta sets empty card fields from the document head.
func fillFromMeta(card *Card, body []byte) error {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("parsing html: %w", err)
	}

	meta := func(selectors ...string) string {
		for _, sel := range selectors {
			if v, ok := doc.Find(sel).First().Attr("content"); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
		return ""
	}

	if card.Title == "" {
		card.Title = meta(`meta[property="og:title"]`)
		if card.Title == "" {
			card.Title = strings.TrimSpace(doc.Find("title").First().Text())
		}
	}
	if card.Excerpt == "" {
		card.Excerpt = meta(`meta[name="description"]`, `meta[property="og:description"]`)
	}
	if card.SiteName == "" {
		card.SiteName = meta(`meta[property="og:site_name"]`)
	}
	return nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:limit-1])) + "…"
}
