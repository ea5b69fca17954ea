package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init <database>",
		Short: "Create a new database file",
		Long: `Create a new GraniteDB database at the given path by delegating to
the granitectl engine. Parent directories are created as needed; an
existing file is never overwritten.`,
		Example: `  granite-ide init app.grn`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient(cmd).CreateDatabase(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created database %s\n", args[0])
			return nil
		},
	}
}
