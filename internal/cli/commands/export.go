package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ExportOptions holds options for the export command.
type ExportOptions struct {
	SQL string
	Out string
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &ExportOptions{}
	cmd := &cobra.Command{
		Use:   "export <database>",
		Short: "Run a query and write the result to a CSV file",
		Example: `  granite-ide export app.grn -q "SELECT * FROM users" --out users.csv`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient(cmd).ExportCSV(cmd.Context(), args[0], opts.SQL, opts.Out); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", opts.Out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.SQL, "query", "q", "", "SQL statement to export")
	cmd.Flags().StringVar(&opts.Out, "out", "", "Destination CSV file")
	_ = cmd.MarkFlagRequired("query")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
