package feeds

import (
	"context"
	"fmt"
	"time"

	"github.com/vidyasagar/deskup/internal/fetch"
)

const anniversaryBaseURL = "https://api.whatistoday.cyou"

// Anniversary is one Japanese "day of" observance.
type Anniversary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type anniversaryResponse struct {
	Anniversaries []Anniversary `json:"anniversaries"`
}

// AnniversaryClient fetches Japanese anniversaries by month and day.
type AnniversaryClient struct {
	http    *fetch.Client
	baseURL string
}

// NewAnniversaryClient creates an anniversary client.
func NewAnniversaryClient(c *fetch.Client) *AnniversaryClient {
	return &AnniversaryClient{http: c, baseURL: anniversaryBaseURL}
}

// WithBaseURL points the client at another host.
func (a *AnniversaryClient) WithBaseURL(base string) *AnniversaryClient {
	a.baseURL = base
	return a
}

// On returns the anniversaries for the month and day of date.
func (a *AnniversaryClient) On(ctx context.Context, date time.Time) ([]Anniversary, error) {
	u := fmt.Sprintf("%s/v3/anniv/month/%d/day/%d", a.baseURL, int(date.Month()), date.Day())

	var resp anniversaryResponse
	if err := a.http.GetJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("fetching anniversaries: %w", err)
	}
	return resp.Anniversaries, nil
}
