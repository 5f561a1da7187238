package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	original := Default("alice")
	original.NotionAPIKey = "secret_abc"
	original.NotionDatabaseID = "db-123"

	if err := Save(path, &original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(*loaded, original) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", *loaded, original)
	}
}

func TestLoadCreatesDefaultsOnce(t *testing.T) {
	t.Setenv("USER", "bob")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	first, err := Load(path)
	if err != nil {
		t.Fatalf("first Load failed: %v", err)
	}
	if first.WeatherAPIKey != PlaceholderAPIKey {
		t.Errorf("expected placeholder key, got %q", first.WeatherAPIKey)
	}
	if first.Location != "Tokyo" || first.CountryCode != "JP" {
		t.Errorf("expected Tokyo/JP defaults, got %q/%q", first.Location, first.CountryCode)
	}
	if first.UserName != "bob" {
		t.Errorf("expected user name from $USER, got %q", first.UserName)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("settings file not created: %v", err)
	}

	second, err := Load(path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("reload changed settings:\n got  %+v\n want %+v", second, first)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(after) != string(written) {
		t.Error("reload rewrote the settings file")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("user_name = [broken"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for malformed settings")
	}
	if !strings.Contains(err.Error(), "parsing settings") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestIntegrationChecks(t *testing.T) {
	s := Default("x")
	if s.WeatherConfigured() {
		t.Error("placeholder key should not count as configured")
	}
	s.WeatherAPIKey = "real"
	if !s.WeatherConfigured() {
		t.Error("real key and location should be configured")
	}
	s.Location = ""
	if s.WeatherConfigured() {
		t.Error("missing location should not be configured")
	}

	if !s.HolidaysConfigured() {
		t.Error("default country code should enable holidays")
	}
	if s.TasksConfigured() {
		t.Error("tasks should need both Notion fields")
	}
	s.NotionAPIKey = "k"
	if s.TasksConfigured() {
		t.Error("tasks should need the database id too")
	}
	s.NotionDatabaseID = "d"
	if !s.TasksConfigured() {
		t.Error("tasks should be configured with key and database id")
	}

	if s.StatusProperty() != DefaultStatusProperty {
		t.Errorf("StatusProperty() = %q, want %q", s.StatusProperty(), DefaultStatusProperty)
	}
	s.NotionStatusProperty = "State"
	if s.StatusProperty() != "State" {
		t.Errorf("StatusProperty() = %q, want State", s.StatusProperty())
	}
}

func TestResolvePath(t *testing.T) {
	got, err := ResolvePath("/tmp/custom.toml")
	if err != nil || got != "/tmp/custom.toml" {
		t.Errorf("ResolvePath(abs) = %q, %v", got, err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	got, err = ResolvePath("~/deskup.toml")
	if err != nil {
		t.Fatalf("ResolvePath(~) failed: %v", err)
	}
	if got != filepath.Join(home, "deskup.toml") {
		t.Errorf("ResolvePath(~) = %q", got)
	}
}

func TestBookmarksLookup(t *testing.T) {
	b := Default("x").Bookmarks
	if b.Count() != 2 {
		t.Errorf("Count() = %d, want 2", b.Count())
	}
	bm, ok := b.Find("Google")
	if !ok || bm.URL != "https://google.com" {
		t.Errorf("Find(Google) = %+v, %v", bm, ok)
	}
	if _, ok := b.Find("missing"); ok {
		t.Error("Find should miss unknown names")
	}
}
