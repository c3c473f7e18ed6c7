package queue

import "context"

// TaskStore persists tasks. The pipeline behaves identically against the
// SQLite store and the in-memory store; both return copies, never pointers
// into their own state.
type TaskStore interface {
	// Insert stores a new task. Inserting an existing ID is an error.
	Insert(ctx context.Context, task *Task) error
	// Update persists the task's current state, replacing the stored row whole.
	Update(ctx context.Context, task *Task) error
	// GetByID fetches a task copy, or nil when the ID is unknown.
	GetByID(ctx context.Context, id string) (*Task, error)
	// List returns tasks filtered by status (all tasks when none given),
	// ordered by creation time.
	List(ctx context.Context, statuses ...Status) ([]*Task, error)
	// NextPending returns the oldest pending task, or nil when the queue is idle.
	NextPending(ctx context.Context) (*Task, error)
	// Stats returns a count of tasks grouped by status.
	Stats(ctx context.Context) (map[Status]int, error)
	// Close releases underlying resources.
	Close() error
}
