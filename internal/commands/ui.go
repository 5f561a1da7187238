package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vidyasagar/deskup/internal/app"
	"github.com/vidyasagar/deskup/internal/dashboard"
	"github.com/vidyasagar/deskup/internal/fetch"
	"github.com/vidyasagar/deskup/internal/logging"
	"github.com/vidyasagar/deskup/internal/preview"
	"github.com/vidyasagar/deskup/internal/refresh"
)

// runUI runs the full-screen dashboard until the user quits.
func runUI(ctx context.Context, o *Options) error {
	s, path, err := o.settings()
	if err != nil {
		return err
	}

	hc := fetch.NewClient()
	rt := refresh.NewRuntime(ctx, refresh.WithTimeout(o.Timeout))
	d := dashboard.New(s, rt, dashboard.WithClients(dashboard.NewClients(s, hc)))
	defer d.Close()

	pv, err := preview.New(hc)
	if err != nil {
		return err
	}

	m := app.New(d, app.WithPreviewer(pv), app.WithSettingsPath(path))
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	rt.OnDone(func(name string) {
		p.Send(app.SlotSettledMsg{Name: name})
	})

	if _, err := p.Run(); err != nil {
		logging.Error("program exited", "err", err)
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
