package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	homedir "github.com/mitchellh/go-homedir"
)

const (
	// PlaceholderAPIKey is written into fresh settings files. A weather key
	// equal to it counts as missing.
	PlaceholderAPIKey = "your_api_key_here"

	// DefaultStatusProperty is the Notion status property used when unset.
	DefaultStatusProperty = "Status"

	settingsFile = "config.toml"
)

// Settings holds the deskup user configuration.
type Settings struct {
	UserName      string    `toml:"user_name"`
	WeatherAPIKey string    `toml:"weather_api_key"`
	Location      string    `toml:"location"`
	CountryCode   string    `toml:"country_code"`
	Bookmarks     Bookmarks `toml:"bookmarks"`

	NotionAPIKey         string `toml:"notion_api_key,omitempty"`
	NotionDatabaseID     string `toml:"notion_database_id,omitempty"`
	NotionStatusProperty string `toml:"notion_status_property,omitempty"`
}

// Default returns the settings written on first start.
func Default(userName string) Settings {
	return Settings{
		UserName:      userName,
		WeatherAPIKey: PlaceholderAPIKey,
		Location:      "Tokyo",
		CountryCode:   "JP",
		Bookmarks: Bookmarks{
			Desktop: []Category{{
				Name:  "Work",
				Items: []Bookmark{{Name: "notepad", URL: "notepad"}},
			}},
			Web: []Category{{
				Name:  "Search",
				Items: []Bookmark{{Name: "Google", URL: "https://google.com"}},
			}},
		},
	}
}

// DefaultUserName picks the login name from the environment.
func DefaultUserName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	if u := os.Getenv("USERNAME"); u != "" {
		return u
	}
	return "user"
}

// WeatherConfigured reports whether the weather integration can run.
func (s Settings) WeatherConfigured() bool {
	return s.Location != "" && s.WeatherAPIKey != "" && s.WeatherAPIKey != PlaceholderAPIKey
}

// HolidaysConfigured reports whether a country code is set.
func (s Settings) HolidaysConfigured() bool {
	return s.CountryCode != ""
}

// TasksConfigured reports whether both Notion credentials are set.
func (s Settings) TasksConfigured() bool {
	return s.NotionAPIKey != "" && s.NotionDatabaseID != ""
}

// StatusProperty returns the Notion status property name.
func (s Settings) StatusProperty() string {
	if s.NotionStatusProperty == "" {
		return DefaultStatusProperty
	}
	return s.NotionStatusProperty
}

// Load reads settings from path. A missing file is created with defaults
// and those defaults are returned; an existing file is never rewritten.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s := Default(DefaultUserName())
			if err := Save(path, &s); err != nil {
				return nil, err
			}
			return &s, nil
		}
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	var s Settings
	if _, err := toml.Decode(string(data), &s); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	return &s, nil
}

// Save writes settings to path as TOML, creating parent directories.
func Save(path string, s *Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// ResolvePath returns the settings path: the override (with ~ expanded)
// when given, otherwise config.toml in the per-OS config directory.
func ResolvePath(override string) (string, error) {
	if override != "" {
		p, err := homedir.Expand(override)
		if err != nil {
			return "", fmt.Errorf("expanding %s: %w", override, err)
		}
		return p, nil
	}

	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, settingsFile), nil
}
