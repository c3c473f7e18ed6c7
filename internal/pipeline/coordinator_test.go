package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"lingoclip/internal/config"
	"lingoclip/internal/media"
	"lingoclip/internal/pipeline"
	"lingoclip/internal/queue"
	"lingoclip/internal/selection"
	"lingoclip/internal/services"
	"lingoclip/internal/subtitles"
	"lingoclip/internal/testsupport"
	"lingoclip/internal/transcribe"
)

// fakeTool creates real files for every operation so cleanup behavior is
// observable.
type fakeTool struct {
	duration time.Duration
	noClips  bool

	mu          sync.Mutex
	mergeInputs []string
}

func (f *fakeTool) ProbeDuration(context.Context, string) (time.Duration, error) {
	return f.duration, nil
}

func (f *fakeTool) ExtractAudio(_ context.Context, _, outDir, baseName string) (string, error) {
	return touch(filepath.Join(outDir, baseName+".wav"))
}

func (f *fakeTool) CutSegments(_ context.Context, _ string, segments []media.Segment, outDir string) ([]string, error) {
	if f.noClips {
		return nil, nil
	}
	paths := make([]string, 0, len(segments))
	for _, segment := range segments {
		path, err := touch(filepath.Join(outDir, fmt.Sprintf("segment_%02d.mp4", segment.Index)))
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (f *fakeTool) BurnCaptions(_ context.Context, _, _, outPath string) (string, error) {
	return touch(outPath)
}

func (f *fakeTool) MakeTitleCard(_ context.Context, _, outDir, fileName string, _ time.Duration) (string, error) {
	return touch(filepath.Join(outDir, fileName))
}

func (f *fakeTool) MergeClips(_ context.Context, clipPaths []string, outDir, outFileName string) (string, error) {
	f.mu.Lock()
	f.mergeInputs = append([]string(nil), clipPaths...)
	f.mu.Unlock()
	return touch(filepath.Join(outDir, outFileName))
}

func touch(path string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte("fake"), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// transcriberFunc lets a test hook into the transcription stage.
type transcriberFunc func(ctx context.Context, audioPath string) (subtitles.Timeline, error)

func (f transcriberFunc) Transcribe(ctx context.Context, audioPath string) (subtitles.Timeline, error) {
	return f(ctx, audioPath)
}

func staticTranscriber() transcriberFunc {
	return func(context.Context, string) (subtitles.Timeline, error) {
		// Sentences across two minutes give the heuristic selector real
		// windows to score.
		return testsupport.Timeline(24), nil
	}
}

type harness struct {
	cfg   *config.Config
	store *queue.MemoryStore
	tool  *fakeTool
	coord *pipeline.Coordinator
	task  *queue.Task
}

func newHarness(t *testing.T, transcriber transcribe.Transcriber, opts ...testsupport.ConfigOption) *harness {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)

	store := queue.NewMemoryStore()
	tool := &fakeTool{duration: 120 * time.Second}
	captions := transcribe.NewService(transcriber, nil)
	selector := selection.NewHeuristicSelector(selection.Params{})
	coord := pipeline.NewCoordinator(cfg, store, tool, captions, nil, selector, nil)

	inputPath := filepath.Join(t.TempDir(), "lecture.mp4")
	testsupport.WriteVideoStub(t, inputPath)
	task := testsupport.NewTask(t, store, "lecture", inputPath, filepath.Join(cfg.Paths.OutputDir, "lecture"))

	return &harness{cfg: cfg, store: store, tool: tool, coord: coord, task: task}
}

func TestRunCompletesAndCleansUp(t *testing.T) {
	h := newHarness(t, staticTranscriber())

	var progress []int
	h.coord.SetPublisher(pipeline.PublisherFunc(func(task *queue.Task) {
		progress = append(progress, task.Progress)
	}))

	if err := h.coord.Run(context.Background(), h.task); err != nil {
		t.Fatalf("Run: %v", err)
	}

	stored, err := h.store.GetByID(context.Background(), h.task.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Status != queue.StatusCompleted || stored.Phase != queue.PhaseCompleted {
		t.Fatalf("terminal state = %s/%s", stored.Status, stored.Phase)
	}
	if stored.Progress != 100 {
		t.Fatalf("progress = %d, want 100", stored.Progress)
	}
	if stored.OutputFilePath == "" {
		t.Fatal("output path not recorded")
	}
	if _, err := os.Stat(stored.OutputFilePath); err != nil {
		t.Fatalf("output file missing: %v", err)
	}

	// All intermediates removed, work directory gone with them.
	workDir := filepath.Join(h.cfg.Paths.WorkDir, "tasks", h.task.ID)
	if _, err := os.Stat(workDir); !os.IsNotExist(err) {
		t.Fatalf("work directory survived cleanup: %v", err)
	}

	want := []int{5, 10, 35, 45, 55, 70, 85, 100}
	if len(progress) != len(want) {
		t.Fatalf("published %d snapshots %v, want %d", len(progress), progress, len(want))
	}
	for i, p := range want {
		if progress[i] != p {
			t.Fatalf("snapshot %d progress = %d, want %d (all: %v)", i, progress[i], p, progress)
		}
	}

	// Title cards enabled by default: merge receives (card, pass) pairs.
	if len(h.tool.mergeInputs) != 8 {
		t.Fatalf("merge received %d clips, want 8: %v", len(h.tool.mergeInputs), h.tool.mergeInputs)
	}
	if h.tool.mergeInputs[1] != h.tool.mergeInputs[7] {
		t.Fatal("first and last pass should reference the same base clip")
	}
}

func TestRunWithoutTitleCardsMergesFourPasses(t *testing.T) {
	h := newHarness(t, staticTranscriber(), testsupport.WithoutTitleCards())

	if err := h.coord.Run(context.Background(), h.task); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(h.tool.mergeInputs) != 4 {
		t.Fatalf("merge received %d clips, want 4", len(h.tool.mergeInputs))
	}
}

func TestRunMissingInputFailsFast(t *testing.T) {
	h := newHarness(t, staticTranscriber())
	h.task.InputPath = filepath.Join(t.TempDir(), "gone.mp4")

	err := h.coord.Run(context.Background(), h.task)
	if err == nil {
		t.Fatal("expected error")
	}

	stored, _ := h.store.GetByID(context.Background(), h.task.ID)
	if stored.Status != queue.StatusFailed {
		t.Fatalf("status = %s, want failed", stored.Status)
	}
	if !strings.Contains(stored.ErrorMessage, "gone.mp4") {
		t.Fatalf("error message does not name the missing path: %q", stored.ErrorMessage)
	}
	if stored.Progress != 0 {
		t.Fatalf("progress = %d, want 0", stored.Progress)
	}
}

func TestRunRejectsShortInput(t *testing.T) {
	h := newHarness(t, staticTranscriber())
	h.tool.duration = 5 * time.Second

	if err := h.coord.Run(context.Background(), h.task); err == nil {
		t.Fatal("expected error for sub-minimum input")
	}

	stored, _ := h.store.GetByID(context.Background(), h.task.ID)
	if stored.Status != queue.StatusFailed || stored.Progress != 0 {
		t.Fatalf("short input state = %s progress %d", stored.Status, stored.Progress)
	}
}

func TestRunFailsWhenCutProducesNoClips(t *testing.T) {
	h := newHarness(t, staticTranscriber())
	h.tool.noClips = true

	err := h.coord.Run(context.Background(), h.task)
	if err == nil {
		t.Fatal("expected error when no clip comes back")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("error = %v, want external tool failure", err)
	}

	stored, _ := h.store.GetByID(context.Background(), h.task.ID)
	if stored.Status != queue.StatusFailed {
		t.Fatalf("status = %s, want failed", stored.Status)
	}
}

func TestRunCancellationBetweenStages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	// Cancellation requested while transcription runs is observed at the
	// next stage boundary.
	transcriber := transcriberFunc(func(context.Context, string) (subtitles.Timeline, error) {
		cancel()
		return testsupport.Timeline(24), nil
	})
	h := newHarness(t, transcriber)

	err := h.coord.Run(ctx, h.task)
	if err == nil {
		t.Fatal("expected cancellation error")
	}

	stored, _ := h.store.GetByID(context.Background(), h.task.ID)
	if stored.Status != queue.StatusFailed {
		t.Fatalf("status = %s, want failed", stored.Status)
	}
	if stored.ErrorMessage != "task cancelled by user" {
		t.Fatalf("error message = %q", stored.ErrorMessage)
	}
}

func TestRunTranscriberFailureKeepsIntermediates(t *testing.T) {
	transcriber := transcriberFunc(func(context.Context, string) (subtitles.Timeline, error) {
		return subtitles.Timeline{}, errors.New("model crashed")
	})
	h := newHarness(t, transcriber)

	if err := h.coord.Run(context.Background(), h.task); err == nil {
		t.Fatal("expected error")
	}

	// Extracted audio is left for post-mortem inspection.
	audioPath := filepath.Join(h.cfg.Paths.WorkDir, "tasks", h.task.ID, "audio.wav")
	if _, err := os.Stat(audioPath); err != nil {
		t.Fatalf("intermediate audio removed on failure: %v", err)
	}

	stored, _ := h.store.GetByID(context.Background(), h.task.ID)
	if !strings.Contains(stored.ErrorMessage, "model crashed") {
		t.Fatalf("diagnostic lost: %q", stored.ErrorMessage)
	}
}
