package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vidyasagar/deskup/internal/config"
	"github.com/vidyasagar/deskup/internal/dashboard"
	"github.com/vidyasagar/deskup/internal/feeds"
	"github.com/vidyasagar/deskup/internal/logging"
	"github.com/vidyasagar/deskup/internal/theme"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Cleanup(logging.Close)
	t.Cleanup(func() { theme.Set(theme.Default.Name) })

	var out bytes.Buffer
	cmd := New()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deskup", "config.toml")

	out, err := run(t, "--config", path, "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("output = %q, want %q", out, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("settings file not created: %v", err)
	}
	if !strings.Contains(string(data), config.PlaceholderAPIKey) {
		t.Errorf("settings file missing placeholder key:\n%s", data)
	}
}

func TestSettingsLogsBookmarkCount(t *testing.T) {
	saved := logging.Logger
	defer func() { logging.Logger = saved }()

	var buf bytes.Buffer
	logging.SetOutput(&buf, "info")

	o := &Options{ConfigPath: filepath.Join(t.TempDir(), "config.toml")}
	if _, _, err := o.settings(); err != nil {
		t.Fatalf("settings: %v", err)
	}
	if !strings.Contains(buf.String(), "bookmarks=2") {
		t.Errorf("log = %q", buf.String())
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != "deskup "+Version+"\n" {
		t.Errorf("output = %q", out)
	}
}

func TestUnknownTheme(t *testing.T) {
	_, err := run(t, "--theme", "neon", "version")
	if err == nil || !strings.Contains(err.Error(), `unknown theme "neon"`) {
		t.Errorf("err = %v", err)
	}
}

func TestOpenUnknownBookmark(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	_, err := run(t, "--config", path, "open", "Nowhere")
	if err == nil || !strings.Contains(err.Error(), `no bookmark named "Nowhere"`) {
		t.Errorf("err = %v", err)
	}
}

func TestDone(t *testing.T) {
	dir := t.TempDir()

	unconfigured := filepath.Join(dir, "plain.toml")
	if _, err := run(t, "--config", unconfigured, "done", "0f8fad5b-d9cb-469f-a165-70867728950e"); !errors.Is(err, dashboard.ErrTasksNotConfigured) {
		t.Errorf("unconfigured done = %v", err)
	}

	configured := filepath.Join(dir, "notion.toml")
	s := config.Default("alice")
	s.NotionAPIKey = "secret"
	s.NotionDatabaseID = "db"
	if err := config.Save(configured, &s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := run(t, "--config", configured, "done", "not-a-task"); !errors.Is(err, feeds.ErrInvalidTaskID) {
		t.Errorf("invalid id done = %v", err)
	}
}

func TestMalformedSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("user_name = [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "--config", path, "config"); err == nil {
		t.Error("malformed settings should fail")
	}
}
