package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vidyasagar/deskup/internal/launch"
)

func addOpen(topLevel *cobra.Command, o *Options) {
	cmd := &cobra.Command{
		Use:   "open <bookmark>",
		Short: "Open a bookmark by name.",
		Example: `
deskup open Google
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := o.settings()
			if err != nil {
				return err
			}
			b, ok := s.Bookmarks.Find(args[0])
			if !ok {
				return fmt.Errorf("no bookmark named %q", args[0])
			}
			if err := launch.Launch(b.URL); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opened %s.\n", b.Name)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
