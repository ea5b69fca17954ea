package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robwalker-codes/granite-db/internal/granitectl"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	SQL    string
	Format string // Output format: table, json, csv
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}
	cmd := &cobra.Command{
		Use:   "query <database>",
		Short: "Execute a SQL statement against a database",
		Long: `Execute a SQL statement through the granitectl engine and print the
result. The adapter asks the engine for structured JSON output and falls
back to parsing the legacy text table when an older engine rejects it.`,
		Example: `  # Query with a table rendering
  granite-ide query app.grn -q "SELECT * FROM users"

  # Machine-readable output
  granite-ide query app.grn -q "SELECT * FROM users" --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.SQL, "query", "q", "", "SQL statement to execute")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: table, json, csv")
	_ = cmd.MarkFlagRequired("query")

	return cmd
}

func runQuery(cmd *cobra.Command, dbPath string, opts *QueryOptions) error {
	client := newClient(cmd)
	w := cmd.OutOrStdout()

	switch format := outputFormat(opts.Format); format {
	case "csv":
		resp, err := client.Execute(cmd.Context(), dbPath, opts.SQL, granitectl.FormatCSV)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(w, resp.Output)
		return nil
	case "json":
		resp, err := client.Execute(cmd.Context(), dbPath, opts.SQL, granitectl.FormatJSONRows)
		if err != nil {
			return err
		}
		return renderResultJSON(w, resp.Result)
	case "table":
		resp, err := client.Execute(cmd.Context(), dbPath, opts.SQL, granitectl.FormatJSONRows)
		if err != nil {
			return err
		}
		renderResult(w, resp.Result)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
