package feeds

import (
	"context"
	"fmt"
	"net/url"

	"github.com/vidyasagar/deskup/internal/fetch"
)

const weatherBaseURL = "https://api.openweathermap.org"

// Weather is the current conditions for the configured location.
type Weather struct {
	Description string
	TempKelvin  float64
	Humidity    int
}

// weatherResponse mirrors the OpenWeatherMap current-weather reply.
type weatherResponse struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
}

// WeatherClient fetches current weather by city name.
type WeatherClient struct {
	http    *fetch.Client
	baseURL string
	apiKey  string
	lang    string
}

// NewWeatherClient creates a weather client for the given API key.
func NewWeatherClient(c *fetch.Client, apiKey string) *WeatherClient {
	return &WeatherClient{http: c, baseURL: weatherBaseURL, apiKey: apiKey, lang: "ja"}
}

// WithBaseURL points the client at another host.
func (w *WeatherClient) WithBaseURL(base string) *WeatherClient {
	w.baseURL = base
	return w
}

// Current returns the weather for location.
func (w *WeatherClient) Current(ctx context.Context, location string) (Weather, error) {
	q := url.Values{}
	q.Set("q", location)
	q.Set("appid", w.apiKey)
	q.Set("lang", w.lang)

	var resp weatherResponse
	if err := w.http.GetJSON(ctx, w.baseURL+"/data/2.5/weather?"+q.Encode(), &resp); err != nil {
		return Weather{}, fmt.Errorf("fetching weather: %w", err)
	}

	out := Weather{
		TempKelvin: resp.Main.Temp,
		Humidity:   resp.Main.Humidity,
	}
	if len(resp.Weather) > 0 {
		out.Description = resp.Weather[0].Description
	}
	return out, nil
}
