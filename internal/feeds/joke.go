package feeds

import (
	"context"
	"fmt"

	"github.com/vidyasagar/deskup/internal/fetch"
)

const jokeBaseURL = "https://official-joke-api.appspot.com"

type jokeResponse struct {
	Setup     string `json:"setup"`
	Punchline string `json:"punchline"`
}

// JokeClient fetches a random joke. No auth.
type JokeClient struct {
	http    *fetch.Client
	baseURL string
}

// NewJokeClient creates a joke client.
func NewJokeClient(c *fetch.Client) *JokeClient {
	return &JokeClient{http: c, baseURL: jokeBaseURL}
}

// WithBaseURL points the client at another host.
func (j *JokeClient) WithBaseURL(base string) *JokeClient {
	j.baseURL = base
	return j
}

// Random returns one joke as "setup - punchline".
func (j *JokeClient) Random(ctx context.Context) (string, error) {
	var resp jokeResponse
	if err := j.http.GetJSON(ctx, j.baseURL+"/jokes/random", &resp); err != nil {
		return "", fmt.Errorf("fetching joke: %w", err)
	}
	return fmt.Sprintf("%s - %s", resp.Setup, resp.Punchline), nil
}
