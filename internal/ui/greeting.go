package ui

import "fmt"

// Greeting picks the salutation for an hour of the day (0-23).
func Greeting(hour int) string {
	switch {
	case hour < 12:
		return "Good morning!"
	case hour < 18:
		return "Hello!"
	default:
		return "Good evening!"
	}
}

// GreetingLine is the header line under the DeskUp title.
func GreetingLine(name string, hour int) string {
	return fmt.Sprintf("%s, %s. Is the coffee ready?", Greeting(hour), name)
}
