package queue

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status represents the coarse lifecycle of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusProcessing,
	StatusCompleted,
	StatusFailed,
}

// Phase is the fine-grained pipeline step, finer than Status. It advances
// monotonically within a run except for the jump to PhaseFailed.
type Phase string

const (
	PhasePending             Phase = "pending"
	PhaseExtractingAudio     Phase = "extracting_audio"
	PhaseGeneratingSubtitles Phase = "generating_subtitles"
	PhaseSplittingVideo      Phase = "splitting_video"
	PhaseBurningPass2        Phase = "burning_pass2"
	PhaseBurningPass3        Phase = "burning_pass3"
	PhaseMergingSegments     Phase = "merging_segments"
	PhaseCompleted           Phase = "completed"
	PhaseFailed              Phase = "failed"
)

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return normalized, true
	}
	return "", false
}

// Task is the unit of work and its observable state. The coordinator owns and
// exclusively mutates a task while it runs; everyone else reads store copies.
// Once Status reaches a terminal value the task is immutable.
type Task struct {
	ID             string
	Name           string
	InputPath      string
	OutputDir      string
	Status         Status
	Phase          Phase
	Progress       int
	OutputFilePath string
	ErrorMessage   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewTask creates a pending task with a fresh identifier.
func NewTask(name, inputPath, outputDir string) *Task {
	now := time.Now().UTC()
	return &Task{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		InputPath: inputPath,
		OutputDir: outputDir,
		Status:    StatusPending,
		Phase:     PhasePending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns an independent copy of the task.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

// IsTerminal reports whether the task has reached a final state.
func (t *Task) IsTerminal() bool {
	return t.Status == StatusCompleted || t.Status == StatusFailed
}

// Advance moves the task to a later phase with a new progress checkpoint.
// Progress never decreases on a successful run.
func (t *Task) Advance(phase Phase, progress int) {
	t.Status = StatusProcessing
	t.Phase = phase
	if progress > t.Progress {
		t.Progress = progress
	}
	t.UpdatedAt = time.Now().UTC()
}

// SetCompleted marks the task finished and records the final output path.
func (t *Task) SetCompleted(outputFilePath string) {
	t.Status = StatusCompleted
	t.Phase = PhaseCompleted
	t.Progress = 100
	t.OutputFilePath = outputFilePath
	t.ErrorMessage = ""
	t.UpdatedAt = time.Now().UTC()
}

// SetFailed marks the task failed with the full diagnostic text.
func (t *Task) SetFailed(message string) {
	t.Status = StatusFailed
	t.Phase = PhaseFailed
	t.ErrorMessage = message
	t.UpdatedAt = time.Now().UTC()
}
