package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// SchemaOptions holds options for the schema command.
type SchemaOptions struct {
	Format string // Output format: table, json
}

// NewSchemaCommand creates the schema command.
func NewSchemaCommand() *cobra.Command {
	opts := &SchemaOptions{}
	cmd := &cobra.Command{
		Use:   "schema <database>",
		Short: "Show the tables, columns, indexes and foreign keys of a database",
		Long: `Fetch the database schema from the granitectl engine. Modern engines
answer with structured JSON metadata; for older engines the adapter parses
the legacy dump listing instead.`,
		Example: `  granite-ide schema app.grn
  granite-ide schema app.grn --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: table, json")

	return cmd
}

func runSchema(cmd *cobra.Command, dbPath string, opts *SchemaOptions) error {
	schema, err := newClient(cmd).Schema(cmd.Context(), dbPath)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch format := outputFormat(opts.Format); format {
	case "json":
		return renderSchemaJSON(w, schema)
	case "table":
		renderSchema(w, schema)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
