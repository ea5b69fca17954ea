package commands

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewExplainCommand creates the explain command.
func NewExplainCommand() *cobra.Command {
	var sql string
	cmd := &cobra.Command{
		Use:   "explain <database>",
		Short: "Show the engine's execution plan for a statement",
		Long: `Ask the granitectl engine for the execution plan of a SQL statement
and print the plan JSON.`,
		Example: `  granite-ide explain app.grn -q "SELECT * FROM users WHERE id = 1"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := newClient(cmd).Explain(cmd.Context(), args[0], sql)
			if err != nil {
				return err
			}

			// Indent when the engine emits compact JSON; print verbatim
			// when it does not.
			var buf bytes.Buffer
			if err := json.Indent(&buf, []byte(plan), "", "  "); err != nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), plan)
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), buf.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&sql, "query", "q", "", "SQL statement to explain")
	_ = cmd.MarkFlagRequired("query")

	return cmd
}
