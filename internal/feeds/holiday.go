package feeds

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/vidyasagar/deskup/internal/fetch"
)

const holidayBaseURL = "https://date.nager.at"

// Holiday is one public holiday from Nager.Date.
type Holiday struct {
	Date      string `json:"date"`
	Name      string `json:"name"`
	LocalName string `json:"localName"`
}

// HolidayClient fetches public holidays by year and country.
type HolidayClient struct {
	http    *fetch.Client
	baseURL string
}

// NewHolidayClient creates a holiday client.
func NewHolidayClient(c *fetch.Client) *HolidayClient {
	return &HolidayClient{http: c, baseURL: holidayBaseURL}
}

// WithBaseURL points the client at another host.
func (h *HolidayClient) WithBaseURL(base string) *HolidayClient {
	h.baseURL = base
	return h
}

// PublicHolidays returns the holidays of year in the ISO country code.
func (h *HolidayClient) PublicHolidays(ctx context.Context, year int, countryCode string) ([]Holiday, error) {
	cc := url.PathEscape(strings.ToUpper(strings.TrimSpace(countryCode)))
	u := fmt.Sprintf("%s/api/v3/publicholidays/%d/%s", h.baseURL, year, cc)

	var holidays []Holiday
	if err := h.http.GetJSON(ctx, u, &holidays); err != nil {
		return nil, fmt.Errorf("fetching holidays: %w", err)
	}
	return holidays, nil
}
