package queue

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryStore is a TaskStore for one-shot runs and tests. It stores copies
// under a mutex so readers always observe a whole, consistent task.
type MemoryStore struct {
	mu    sync.RWMutex
	tasks map[string]*Task
}

var _ TaskStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tasks: make(map[string]*Task)}
}

// Insert stores a new task.
func (s *MemoryStore) Insert(_ context.Context, task *Task) error {
	if task == nil {
		return fmt.Errorf("task is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tasks[task.ID]; exists {
		return fmt.Errorf("insert task: duplicate id %s", task.ID)
	}
	s.tasks[task.ID] = task.Clone()
	return nil
}

// Update replaces the stored task whole.
func (s *MemoryStore) Update(_ context.Context, task *Task) error {
	if task == nil {
		return fmt.Errorf("task is nil")
	}
	task.UpdatedAt = time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tasks[task.ID]; !exists {
		return fmt.Errorf("update task: unknown id %s", task.ID)
	}
	s.tasks[task.ID] = task.Clone()
	return nil
}

// GetByID fetches a task copy, or nil when unknown.
func (s *MemoryStore) GetByID(_ context.Context, id string) (*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasks[id].Clone(), nil
}

// List returns tasks filtered by status, ordered by creation time.
func (s *MemoryStore) List(_ context.Context, statuses ...Status) ([]*Task, error) {
	wanted := make(map[Status]struct{}, len(statuses))
	for _, status := range statuses {
		wanted[status] = struct{}{}
	}

	s.mu.RLock()
	var tasks []*Task
	for _, task := range s.tasks {
		if len(wanted) > 0 {
			if _, ok := wanted[task.Status]; !ok {
				continue
			}
		}
		tasks = append(tasks, task.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// NextPending returns the oldest pending task, or nil when the queue is idle.
func (s *MemoryStore) NextPending(ctx context.Context) (*Task, error) {
	pending, err := s.List(ctx, StatusPending)
	if err != nil || len(pending) == 0 {
		return nil, err
	}
	return pending[0], nil
}

// Stats returns a count of tasks grouped by status.
func (s *MemoryStore) Stats(_ context.Context) (map[Status]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make(map[Status]int)
	for _, task := range s.tasks {
		stats[task.Status]++
	}
	return stats, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
