package cli

import (
	"github.com/spf13/cobra"

	"github.com/skylinelab/watertower/pkg/api"
)

// newServeCmd creates the serve command, which runs the HTTP API until
// interrupted.
func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			runner, err := newRunner(ctx, cfg, false, logger)
			if err != nil {
				return err
			}
			defer runner.Close()

			printInfo("Serving on %s", StyleValue.Render(addr))
			return api.NewServer(addr, runner, logger).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
