package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"lingoclip/internal/config"
	"lingoclip/internal/logging"
	"lingoclip/internal/queue"
)

const (
	defaultPollInterval = 2 * time.Second
	lockFileName        = "lingoclip.lock"
)

// Runner polls the queue for pending tasks and feeds them to a coordinator,
// up to the configured concurrency. A file lock in the work directory keeps
// a second daemon off the same queue.
type Runner struct {
	cfg         *config.Config
	store       queue.TaskStore
	coordinator *Coordinator
	log         *slog.Logger
}

// NewRunner builds a daemon runner.
func NewRunner(cfg *config.Config, store queue.TaskStore, coordinator *Coordinator, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:         cfg,
		store:       store,
		coordinator: coordinator,
		log:         logging.NewComponentLogger(logger, "daemon"),
	}
}

// Run blocks until ctx is cancelled, then waits for in-flight tasks to reach
// a terminal state before returning.
func (r *Runner) Run(ctx context.Context) error {
	if err := os.MkdirAll(r.cfg.Paths.WorkDir, 0o755); err != nil {
		return fmt.Errorf("create work directory: %w", err)
	}
	lockPath := filepath.Join(r.cfg.Paths.WorkDir, lockFileName)
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire daemon lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another daemon already holds %s", lockPath)
	}
	defer func() { _ = lock.Unlock() }()

	maxConcurrent := r.cfg.Pipeline.MaxConcurrent
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	poll := time.Duration(r.cfg.Pipeline.QueuePollInterval) * time.Second
	if poll <= 0 {
		poll = defaultPollInterval
	}

	r.log.InfoContext(ctx, "daemon started",
		logging.Int("max_concurrent", maxConcurrent),
		logging.Duration("poll_interval", poll))

	sem := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		r.dispatch(ctx, sem, &wg)
		select {
		case <-ctx.Done():
			r.log.Info("daemon stopping, waiting for in-flight tasks")
			wg.Wait()
			return nil
		case <-ticker.C:
		}
	}
}

// dispatch claims pending tasks while concurrency slots are free. Claiming
// flips the task to processing so the next poll skips it.
func (r *Runner) dispatch(ctx context.Context, sem chan struct{}, wg *sync.WaitGroup) {
	for {
		select {
		case sem <- struct{}{}:
		default:
			return
		}

		task, err := r.store.NextPending(ctx)
		if err != nil {
			<-sem
			r.log.ErrorContext(ctx, "failed to poll queue", logging.Error(err))
			return
		}
		if task == nil {
			<-sem
			return
		}

		task.Status = queue.StatusProcessing
		task.UpdatedAt = time.Now().UTC()
		if err := r.store.Update(ctx, task); err != nil {
			<-sem
			r.log.ErrorContext(ctx, "failed to claim task",
				logging.String(logging.FieldTaskID, task.ID),
				logging.Error(err))
			return
		}

		wg.Add(1)
		go func(task *queue.Task) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := r.coordinator.Run(ctx, task); err != nil {
				r.log.ErrorContext(ctx, "task ended in failure",
					logging.String(logging.FieldTaskID, task.ID),
					logging.Error(err))
			}
		}(task)
	}
}
