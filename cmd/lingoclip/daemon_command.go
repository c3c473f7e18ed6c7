package main

import (
	"github.com/spf13/cobra"

	"lingoclip/internal/deps"
	"lingoclip/internal/pipeline"
)

func newDaemonCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Process queued tasks until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := deps.Verify(cfg); err != nil {
				return err
			}
			logger, err := ctx.buildLogger(cfg, true)
			if err != nil {
				return err
			}
			store, err := ctx.openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			coordinator := ctx.buildCoordinator(cfg, store, logger)
			runner := pipeline.NewRunner(cfg, store, coordinator, logger)
			return runner.Run(cmd.Context())
		},
	}
}
