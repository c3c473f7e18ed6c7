package pipeline

import "lingoclip/internal/queue"

// Publisher observes task state changes. The coordinator publishes a fresh
// copy of the task after every mutation it persists, so subscribers never
// share memory with the running pipeline.
type Publisher interface {
	Publish(task *queue.Task)
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(task *queue.Task)

// Publish implements Publisher.
func (f PublisherFunc) Publish(task *queue.Task) { f(task) }
