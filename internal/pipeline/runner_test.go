package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"lingoclip/internal/pipeline"
	"lingoclip/internal/queue"
)

func TestRunnerProcessesPendingTask(t *testing.T) {
	h := newHarness(t, staticTranscriber())
	h.cfg.Pipeline.QueuePollInterval = 1
	h.cfg.Pipeline.MaxConcurrent = 2

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	h.coord.SetPublisher(pipeline.PublisherFunc(func(task *queue.Task) {
		if task.Status == queue.StatusCompleted {
			close(done)
		}
	}))

	runner := pipeline.NewRunner(h.cfg, h.store, h.coord, nil)
	errCh := make(chan error, 1)
	go func() { errCh <- runner.Run(ctx) }()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("task not processed in time")
	}
	cancel()

	if err := <-errCh; err != nil {
		t.Fatalf("Run: %v", err)
	}

	stored, err := h.store.GetByID(context.Background(), h.task.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Status != queue.StatusCompleted || stored.Progress != 100 {
		t.Fatalf("task state = %s progress %d", stored.Status, stored.Progress)
	}
}

func TestRunnerRefusesSecondInstance(t *testing.T) {
	h := newHarness(t, staticTranscriber())

	if err := os.MkdirAll(h.cfg.Paths.WorkDir, 0o755); err != nil {
		t.Fatalf("create work dir: %v", err)
	}
	lock := flock.New(filepath.Join(h.cfg.Paths.WorkDir, "lingoclip.lock"))
	locked, err := lock.TryLock()
	if err != nil || !locked {
		t.Fatalf("could not pre-acquire lock: locked=%v err=%v", locked, err)
	}
	defer func() { _ = lock.Unlock() }()

	runner := pipeline.NewRunner(h.cfg, h.store, h.coord, nil)
	if err := runner.Run(context.Background()); err == nil {
		t.Fatal("expected error while lock is held elsewhere")
	}
}
