package testsupport

import (
	"context"
	"testing"

	"lingoclip/internal/config"
	"lingoclip/internal/queue"
)

// MustOpenStore opens a SQLite task store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *queue.SQLiteStore {
	t.Helper()

	store, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("queue.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewTask inserts a fresh pending task into store and returns it.
func NewTask(t testing.TB, store queue.TaskStore, name, inputPath, outputDir string) *queue.Task {
	t.Helper()

	task := queue.NewTask(name, inputPath, outputDir)
	if err := store.Insert(context.Background(), task); err != nil {
		t.Fatalf("store.Insert: %v", err)
	}
	return task
}
