package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lingoclip/internal/queue"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Manage the task queue",
	}

	queueCmd.AddCommand(newQueueAddCommand(ctx))
	queueCmd.AddCommand(newQueueListCommand(ctx))
	queueCmd.AddCommand(newQueueShowCommand(ctx))
	queueCmd.AddCommand(newQueueStatsCommand(ctx))

	return queueCmd
}

func newQueueAddCommand(ctx *commandContext) *cobra.Command {
	var name string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "add <video-file>",
		Short: "Enqueue a video for the daemon to process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
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
			fmt.Fprintf(cmd.OutOrStdout(), "queued %s (%s)\n", task.Name, task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Task name (defaults to the input file name)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Output directory (defaults under paths.output_dir)")

	return cmd
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List queued tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			var statuses []queue.Status
			if trimmed := strings.TrimSpace(statusFilter); trimmed != "" {
				status, ok := queue.ParseStatus(trimmed)
				if !ok {
					return fmt.Errorf("unknown status %q", trimmed)
				}
				statuses = append(statuses, status)
			}

			tasks, err := store.List(cmd.Context(), statuses...)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "queue is empty")
				return nil
			}

			rows := make([][]string, 0, len(tasks))
			for _, task := range tasks {
				rows = append(rows, []string{
					shortID(task.ID),
					task.Name,
					string(task.Status),
					string(task.Phase),
					fmt.Sprintf("%d%%", task.Progress),
					task.CreatedAt.Local().Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "NAME", "STATUS", "PHASE", "PROGRESS", "CREATED"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "Only show tasks with this status (pending, processing, completed, failed)")

	return cmd
}

func newQueueStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task counts by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			total := 0
			for _, status := range []queue.Status{
				queue.StatusPending,
				queue.StatusProcessing,
				queue.StatusCompleted,
				queue.StatusFailed,
			} {
				fmt.Fprintf(out, "%-11s %d\n", string(status)+":", stats[status])
				total += stats[status]
			}
			fmt.Fprintf(out, "%-11s %d\n", "total:", total)
			return nil
		},
	}
}

func newQueueShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			task, err := findTask(cmd, store, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id:        %s\n", task.ID)
			fmt.Fprintf(out, "name:      %s\n", task.Name)
			fmt.Fprintf(out, "input:     %s\n", task.InputPath)
			fmt.Fprintf(out, "status:    %s\n", task.Status)
			fmt.Fprintf(out, "phase:     %s\n", task.Phase)
			fmt.Fprintf(out, "progress:  %d%%\n", task.Progress)
			fmt.Fprintf(out, "created:   %s\n", task.CreatedAt.Local().Format(time.RFC3339))
			fmt.Fprintf(out, "updated:   %s\n", task.UpdatedAt.Local().Format(time.RFC3339))
			if task.OutputFilePath != "" {
				fmt.Fprintf(out, "output:    %s\n", task.OutputFilePath)
			}
			if task.ErrorMessage != "" {
				fmt.Fprintf(out, "error:     %s\n", task.ErrorMessage)
			}
			return nil
		},
	}
}

// findTask resolves a full or shortened task ID, requiring an unambiguous
// prefix match.
func findTask(cmd *cobra.Command, store queue.TaskStore, id string) (*queue.Task, error) {
	task, err := store.GetByID(cmd.Context(), id)
	if err != nil {
		return nil, err
	}
	if task != nil {
		return task, nil
	}

	tasks, err := store.List(cmd.Context())
	if err != nil {
		return nil, err
	}
	var match *queue.Task
	for _, candidate := range tasks {
		if strings.HasPrefix(candidate.ID, id) {
			if match != nil {
				return nil, fmt.Errorf("task id %q is ambiguous", id)
			}
			match = candidate
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no task with id %q", id)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
