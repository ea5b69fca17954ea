package commands

import (
	"github.com/spf13/cobra"

	"github.com/robwalker-codes/granite-db/internal/cli/config"
	"github.com/robwalker-codes/granite-db/internal/ui"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the IDE API server",
		Long: `Start the local HTTP server the GraniteDB IDE frontend talks to.
The server exposes database open/create, query execution, explain plans,
schema metadata, CSV export and engine diagnostics, and shuts down
gracefully on interrupt.`,
		Example: `  # Serve on the configured host and port
  granite-ide serve

  # Serve on a specific port
  granite-ide serve --port 9000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetCurrentConfig()
			if cfg == nil {
				cfg = &config.Config{Host: config.DefaultHost, Port: config.DefaultPort}
			}
			logger := config.GetLogger(cmd.Context())

			srv := ui.NewServer(ui.Config{
				Adapter: newClient(cmd),
				Logger:  logger,
				Host:    cfg.Host,
				Port:    cfg.Port,
			})
			return srv.Serve(cmd.Context())
		},
	}
}
