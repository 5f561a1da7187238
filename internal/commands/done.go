package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vidyasagar/deskup/internal/dashboard"
	"github.com/vidyasagar/deskup/internal/feeds"
	"github.com/vidyasagar/deskup/internal/fetch"
)

func addDone(topLevel *cobra.Command, o *Options) {
	cmd := &cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a Notion task as done.",
		Example: `
deskup done 0f8fad5b-d9cb-469f-a165-70867728950e
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := o.settings()
			if err != nil {
				return err
			}
			if !s.TasksConfigured() {
				return dashboard.ErrTasksNotConfigured
			}

			ctx := cmd.Context()
			ctx, cancel := context.WithTimeout(ctx, o.Timeout)
			defer cancel()

			n := feeds.NewNotionClient(fetch.NewClient(), s.NotionAPIKey, s.NotionDatabaseID, s.StatusProperty())
			if err := n.MarkDone(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s done.\n", args[0])
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
