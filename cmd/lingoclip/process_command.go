package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lingoclip/internal/deps"
	"lingoclip/internal/pipeline"
	"lingoclip/internal/queue"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var name string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "process <video-file>",
		Short: "Run one video through the pipeline and wait for the result",
		Args:  cobra.ExactArgs(1),
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

			inputPath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve input path: %w", err)
			}
			taskName := strings.TrimSpace(name)
			if taskName == "" {
				taskName = strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
			}
			outDir := strings.TrimSpace(outputDir)
			if outDir == "" {
				outDir = filepath.Join(cfg.Paths.OutputDir, taskName)
			}

			task := queue.NewTask(taskName, inputPath, outDir)
			if err := store.Insert(cmd.Context(), task); err != nil {
				return fmt.Errorf("enqueue task: %w", err)
			}

			coordinator := ctx.buildCoordinator(cfg, store, logger)
			coordinator.SetPublisher(pipeline.PublisherFunc(func(snapshot *queue.Task) {
				fmt.Fprintf(cmd.OutOrStdout(), "%-22s %3d%%\n", snapshot.Phase, snapshot.Progress)
			}))

			if err := coordinator.Run(cmd.Context(), task); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "done: %s\n", task.OutputFilePath)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Task name (defaults to the input file name)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Output directory (defaults under paths.output_dir)")

	return cmd
}
