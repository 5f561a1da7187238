// Package commands builds the deskup command line.
package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vidyasagar/deskup/internal/config"
	"github.com/vidyasagar/deskup/internal/logging"
	"github.com/vidyasagar/deskup/internal/refresh"
	"github.com/vidyasagar/deskup/internal/theme"
)

// New returns the root command. Without a subcommand it runs the dashboard.
func New() *cobra.Command {
	o := &Options{}

	cmd := &cobra.Command{
		Use:   "deskup",
		Short: "A morning dashboard for the terminal.",
		Long: `deskup shows the weather, today's anniversaries and holidays, a joke,
your bookmarks and your open Notion tasks in one terminal screen.`,
		Example: `
deskup
deskup --theme nord
deskup --config ~/dotfiles/deskup.toml snapshot
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd.Context(), o)
		},
	}

	AddOptionArgs(cmd, o)
	AddCommands(cmd, o)
	return cmd
}

// AddCommands registers every subcommand on topLevel.
func AddCommands(topLevel *cobra.Command, o *Options) {
	addSnapshot(topLevel, o)
	addDone(topLevel, o)
	addOpen(topLevel, o)
	addConfig(topLevel, o)
	addVersion(topLevel)
}

// Options are the flags shared by every command.
type Options struct {
	ConfigPath string
	Theme      string
	Timeout    time.Duration
	LogLevel   string
}

// AddOptionArgs binds the persistent flags.
func AddOptionArgs(cmd *cobra.Command, o *Options) {
	cmd.PersistentFlags().StringVarP(&o.ConfigPath, "config", "c", "",
		"Settings file (default: config.toml in the user config dir).")
	cmd.PersistentFlags().StringVar(&o.Theme, "theme", theme.Default.Name,
		fmt.Sprintf("Color theme. One of %s.", strings.Join(theme.List(), ", ")))
	cmd.PersistentFlags().DurationVar(&o.Timeout, "timeout", refresh.DefaultTimeout,
		"Timeout for each API request.")
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "info",
		"Log level: debug, info, warn or error.")
}

// setup applies the theme and opens the log file.
func (o *Options) setup() error {
	if !theme.Set(o.Theme) {
		return fmt.Errorf("unknown theme %q (available: %s)", o.Theme, strings.Join(theme.List(), ", "))
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", o.Timeout)
	}

	dir, err := config.DataDir()
	if err != nil {
		return err
	}
	return logging.Init(dir, o.LogLevel)
}

// settings resolves the settings path and loads it, creating defaults.
func (o *Options) settings() (*config.Settings, string, error) {
	path, err := config.ResolvePath(o.ConfigPath)
	if err != nil {
		return nil, "", err
	}
	s, err := config.Load(path)
	if err != nil {
		logging.Error("loading settings", "path", path, "err", err)
		return nil, "", err
	}
	logging.Info("settings loaded", "path", path, "bookmarks", s.Bookmarks.Count())
	return s, path, nil
}
