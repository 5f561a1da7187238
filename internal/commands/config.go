package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func addConfig(topLevel *cobra.Command, o *Options) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the settings file path, creating it with defaults if missing.",
		Example: `
deskup config
$EDITOR "$(deskup config)"
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, path, err := o.settings()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
