// Package commands contains the granite-ide subcommands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/robwalker-codes/granite-db/internal/cli/config"
	"github.com/robwalker-codes/granite-db/internal/granitectl"
)

// newClient builds an engine client using the logger the root command put
// in the context.
func newClient(cmd *cobra.Command) *granitectl.Client {
	return granitectl.New(config.GetLogger(cmd.Context()))
}

// outputFormat resolves the effective output format: the command-local flag
// when set, otherwise the configured default.
func outputFormat(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg := config.GetCurrentConfig(); cfg != nil && cfg.OutputFormat != "" {
		return cfg.OutputFormat
	}
	return config.DefaultOutput
}
