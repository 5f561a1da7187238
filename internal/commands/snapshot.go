package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vidyasagar/deskup/internal/dashboard"
	"github.com/vidyasagar/deskup/internal/refresh"
	"github.com/vidyasagar/deskup/internal/ui"
)

func addSnapshot(topLevel *cobra.Command, o *Options) {
	width := 80
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Fetch everything once and print the dashboard as text.",
		Example: `
deskup snapshot
deskup snapshot --width 120 > today.txt
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := o.settings()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			rt := refresh.NewRuntime(ctx, refresh.WithTimeout(o.Timeout))
			d := dashboard.New(s, rt)
			defer d.Close()

			// Each job is bounded by the request timeout.
			waitCtx, cancel := context.WithTimeout(ctx, 2*rt.Timeout())
			defer cancel()
			if err := d.Wait(waitCtx); err != nil {
				return fmt.Errorf("waiting for dashboard: %w", err)
			}

			panel := ui.Render(d.Snapshot(), s, time.Now(), nil, width)
			fmt.Fprintln(cmd.OutOrStdout(), panel.String())
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", width, "Line width of the printed panel.")
	topLevel.AddCommand(cmd)
}
