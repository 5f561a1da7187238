package ui

import (
	"fmt"
	"math"

	"github.com/vidyasagar/deskup/internal/feeds"
)

// absoluteZero in hundredths of a kelvin.
const absoluteZero = 27315

// Celsius converts Kelvin to Celsius rounded half away from zero to one
// decimal. The reading is taken to two decimals first so that values such
// as 273.2 round as written rather than as their binary approximation.
func Celsius(kelvin float64) float64 {
	hundredths := int64(math.Round(kelvin*100)) - absoluteZero
	neg := hundredths < 0
	if neg {
		hundredths = -hundredths
	}
	tenths := (hundredths + 5) / 10
	if neg {
		tenths = -tenths
	}
	return float64(tenths) / 10
}

// FormatCelsius renders a Kelvin temperature as Celsius with one decimal.
func FormatCelsius(kelvin float64) string {
	c := Celsius(kelvin)
	if c == 0 {
		c = 0 // drop negative zero
	}
	return fmt.Sprintf("%.1f", c)
}

// WeatherLine formats the current conditions for location.
func WeatherLine(location string, w feeds.Weather) string {
	desc := w.Description
	if desc == "" {
		desc = "unknown"
	}
	return fmt.Sprintf("Weather in %s: %s, Temperature: %s°C, Humidity: %d%%",
		location, desc, FormatCelsius(w.TempKelvin), w.Humidity)
}
