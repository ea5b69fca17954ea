package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robwalker-codes/granite-db/internal/granitectl"
)

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Format string // Output format: text, json
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the granitectl engine installation",
		Long: `Report where the granitectl engine binary resolves from, whether it
exists, and which version it reports.

The resolution order is:
  1. The ` + granitectl.EnvPathOverride + ` environment variable
  2. An engine/ directory next to the granite-ide binary
  3. The system PATH`,
		Example: `  # Human-readable report
  granite-ide doctor

  # Machine-readable report
  granite-ide doctor --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")

	return cmd
}

func runDoctor(cmd *cobra.Command, opts *DoctorOptions) error {
	info := newClient(cmd).Describe(cmd.Context())
	w := cmd.OutOrStdout()

	if opts.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	_, _ = fmt.Fprintf(w, "Engine binary: %s\n", info.Path)
	_, _ = fmt.Fprintf(w, "Resolved via:  %s\n", info.Provenance)
	if !info.Exists {
		_, _ = fmt.Fprintln(w, "Status:        not found")
		if info.Error != "" {
			_, _ = fmt.Fprintf(w, "Detail:        %s\n", info.Error)
		}
		return nil
	}

	_, _ = fmt.Fprintln(w, "Status:        ok")
	if info.Version != "" {
		_, _ = fmt.Fprintf(w, "Version:       %s\n", info.Version)
	}
	if info.Error != "" {
		// The binary exists but the version probe failed; report without
		// failing the command.
		_, _ = fmt.Fprintf(w, "Detail:        %s\n", info.Error)
	}
	return nil
}
