package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"lingoclip/internal/config"
	"lingoclip/internal/logging"
	"lingoclip/internal/media"
	"lingoclip/internal/queue"
	"lingoclip/internal/selection"
	"lingoclip/internal/services"
	"lingoclip/internal/textutil"
	"lingoclip/internal/transcribe"
	"lingoclip/internal/translate"
)

// passTitles announce the four rendered passes. Cards are title-cased at
// render time.
var passTitles = []string{
	"first listen",
	"english subtitles",
	"bilingual subtitles",
	"final listen",
}

// Coordinator runs one task through the full clip pipeline. It is safe to
// run multiple tasks concurrently as long as the collaborators are.
type Coordinator struct {
	cfg        *config.Config
	store      queue.TaskStore
	tool       media.Tool
	captions   *transcribe.Service
	translator translate.Translator
	selector   selection.Selector
	publisher  Publisher
	log        *slog.Logger
}

// NewCoordinator wires the pipeline to its collaborators. translator may be
// nil; the bilingual track then passes through English.
func NewCoordinator(cfg *config.Config, store queue.TaskStore, tool media.Tool, captions *transcribe.Service, translator translate.Translator, selector selection.Selector, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Coordinator{
		cfg:        cfg,
		store:      store,
		tool:       tool,
		captions:   captions,
		translator: translator,
		selector:   selector,
		log:        logging.NewComponentLogger(logger, "pipeline"),
	}
}

// SetPublisher registers an observer for task snapshots.
func (c *Coordinator) SetPublisher(publisher Publisher) {
	c.publisher = publisher
}

// Run drives task to a terminal state. Any stage error, including
// cooperative cancellation observed between stages, lands the task in Failed
// with the full diagnostic recorded; the returned error carries the same
// information for the caller's logs.
func (c *Coordinator) Run(ctx context.Context, task *queue.Task) error {
	log := logging.WithTask(c.log, task.ID)
	log.InfoContext(ctx, "task started", logging.String("input", task.InputPath))

	if err := c.execute(ctx, log, task); err != nil {
		if services.IsCancellation(err) {
			task.SetFailed(services.CancellationMessage)
			log.InfoContext(ctx, "task cancelled")
		} else {
			task.SetFailed(err.Error())
			log.ErrorContext(ctx, "task failed", logging.Error(err))
		}
		if persistErr := c.persist(ctx, task); persistErr != nil {
			log.ErrorContext(ctx, "failed to record terminal state", logging.Error(persistErr))
		}
		return err
	}

	log.InfoContext(ctx, "task completed", logging.String("output", task.OutputFilePath))
	return nil
}

func (c *Coordinator) execute(ctx context.Context, log *slog.Logger, task *queue.Task) error {
	// Validation happens before the task enters processing: input problems
	// must never consume pipeline progress.
	if _, err := os.Stat(task.InputPath); err != nil {
		return services.Wrap(services.ErrInput, "pipeline", "validate", fmt.Sprintf("input file %s does not exist", task.InputPath), err)
	}
	if err := os.MkdirAll(task.OutputDir, 0o755); err != nil {
		return services.Wrap(services.ErrInput, "pipeline", "validate", "create output directory", err)
	}
	total, err := c.tool.ProbeDuration(ctx, task.InputPath)
	if err != nil {
		return err
	}
	if minInput := secondsToDuration(c.cfg.Pipeline.MinInputSeconds); minInput > 0 && total < minInput {
		return services.Wrap(services.ErrInput, "pipeline", "validate",
			fmt.Sprintf("input runs %s, need at least %s", total.Round(time.Millisecond), minInput), nil)
	}

	workDir := filepath.Join(c.cfg.Paths.WorkDir, "tasks", task.ID)
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return services.Wrap(services.ErrInput, "pipeline", "validate", "create work directory", err)
	}
	if err := c.advance(ctx, task, queue.PhaseExtractingAudio, 5); err != nil {
		return err
	}
	if err := checkCancelled(ctx); err != nil {
		return err
	}

	var artifacts []string

	audioPath, err := c.tool.ExtractAudio(ctx, task.InputPath, workDir, "audio")
	if err != nil {
		return err
	}
	artifacts = append(artifacts, audioPath)
	if err := c.advance(ctx, task, queue.PhaseGeneratingSubtitles, 10); err != nil {
		return err
	}
	if err := checkCancelled(ctx); err != nil {
		return err
	}

	captions, err := c.captions.GenerateEnglishAndBilingual(ctx, audioPath, workDir, "full", c.translator)
	if err != nil {
		return err
	}
	artifacts = append(artifacts, captions.EnglishPath, captions.BilingualPath)
	if err := c.advance(ctx, task, queue.PhaseSplittingVideo, 35); err != nil {
		return err
	}
	if err := checkCancelled(ctx); err != nil {
		return err
	}

	clipStart, clipEnd := c.selector.Select(ctx, captions.English, total)
	log.InfoContext(ctx, "segment chosen",
		logging.Duration("start", clipStart),
		logging.Duration("end", clipEnd))

	clips, err := c.tool.CutSegments(ctx, task.InputPath, []media.Segment{{Index: 1, Start: clipStart, End: clipEnd}}, workDir)
	if err != nil {
		return err
	}
	if len(clips) != 1 {
		return services.Wrap(services.ErrExternalTool, "pipeline", "cut_segments",
			fmt.Sprintf("expected 1 clip, got %d", len(clips)), nil)
	}
	baseClip := clips[0]
	artifacts = append(artifacts, baseClip)

	englishSRT := filepath.Join(workDir, "clip.en.srt")
	bilingualSRT := filepath.Join(workDir, "clip.bi.srt")
	if err := captions.English.CropAndShift(clipStart, clipEnd).WriteFile(englishSRT); err != nil {
		return services.Wrap(services.ErrExternalTool, "pipeline", "crop_subtitles", "write English track", err)
	}
	if err := captions.Bilingual.CropAndShift(clipStart, clipEnd).WriteFile(bilingualSRT); err != nil {
		return services.Wrap(services.ErrExternalTool, "pipeline", "crop_subtitles", "write bilingual track", err)
	}
	artifacts = append(artifacts, englishSRT, bilingualSRT)
	if err := c.advance(ctx, task, queue.PhaseBurningPass2, 45); err != nil {
		return err
	}
	if err := checkCancelled(ctx); err != nil {
		return err
	}

	pass2, err := c.tool.BurnCaptions(ctx, baseClip, englishSRT, filepath.Join(workDir, "pass2.mp4"))
	if err != nil {
		return err
	}
	artifacts = append(artifacts, pass2)
	if err := c.advance(ctx, task, queue.PhaseBurningPass3, 55); err != nil {
		return err
	}
	if err := checkCancelled(ctx); err != nil {
		return err
	}

	pass3, err := c.tool.BurnCaptions(ctx, baseClip, bilingualSRT, filepath.Join(workDir, "pass3.mp4"))
	if err != nil {
		return err
	}
	artifacts = append(artifacts, pass3)
	if err := c.advance(ctx, task, queue.PhaseMergingSegments, 70); err != nil {
		return err
	}
	if err := checkCancelled(ctx); err != nil {
		return err
	}

	// The first and last pass are the base clip unmodified, so the same file
	// is referenced twice instead of re-encoding a copy.
	passes := []string{baseClip, pass2, pass3, baseClip}
	mergeList := passes
	if c.cfg.Pipeline.TitleCards {
		cards, cardErr := c.makeTitleCards(ctx, workDir)
		if cardErr != nil {
			return cardErr
		}
		artifacts = append(artifacts, cards...)
		mergeList = interleave(cards, passes)
	}

	outputPath, err := c.tool.MergeClips(ctx, mergeList, task.OutputDir, outputFileName(task))
	if err != nil {
		return err
	}
	if err := c.advance(ctx, task, queue.PhaseMergingSegments, 85); err != nil {
		return err
	}

	c.cleanup(ctx, log, artifacts, workDir)

	task.SetCompleted(outputPath)
	return c.persist(ctx, task)
}

func (c *Coordinator) makeTitleCards(ctx context.Context, workDir string) ([]string, error) {
	caser := cases.Title(language.English)
	duration := secondsToDuration(c.cfg.Pipeline.TitleCardSeconds)
	cards := make([]string, 0, len(passTitles))
	for i, title := range passTitles {
		card, err := c.tool.MakeTitleCard(ctx, caser.String(title), workDir, fmt.Sprintf("card_%d.mp4", i+1), duration)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// cleanup removes intermediate artifacts after a successful run. Deletion
// failures are logged and swallowed; they never change the task outcome.
func (c *Coordinator) cleanup(ctx context.Context, log *slog.Logger, artifacts []string, workDir string) {
	for _, path := range artifacts {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.DebugContext(ctx, "failed to remove intermediate file",
				logging.String("path", path),
				logging.Error(err))
		}
	}
	// Succeeds only once the directory is empty.
	if err := os.Remove(workDir); err != nil {
		log.DebugContext(ctx, "work directory not removed",
			logging.String("path", workDir),
			logging.Error(err))
	}
}

func (c *Coordinator) advance(ctx context.Context, task *queue.Task, phase queue.Phase, progress int) error {
	task.Advance(phase, progress)
	return c.persist(ctx, task)
}

// persist records the task and publishes a snapshot. The update must land
// even when ctx was cancelled: terminal states are written on that path.
func (c *Coordinator) persist(ctx context.Context, task *queue.Task) error {
	if err := c.store.Update(context.WithoutCancel(ctx), task); err != nil {
		return fmt.Errorf("persist task %s: %w", task.ID, err)
	}
	if c.publisher != nil {
		c.publisher.Publish(task.Clone())
	}
	return nil
}

// checkCancelled implements cooperative cancellation: external tool calls
// are not preemptible, so the signal is observed between stages only.
func checkCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return services.ErrCancelled
	default:
		return nil
	}
}

// interleave orders the merge list as (card, pass) pairs.
func interleave(cards, passes []string) []string {
	merged := make([]string, 0, len(cards)+len(passes))
	for i, pass := range passes {
		if i < len(cards) {
			merged = append(merged, cards[i])
		}
		merged = append(merged, pass)
	}
	return merged
}

// outputFileName derives the merged clip's name from the task name, falling
// back to the input file's stem when the name is unusable.
func outputFileName(task *queue.Task) string {
	stem := textutil.FileStem(task.Name)
	if stem == "clip" {
		base := filepath.Base(task.InputPath)
		if inputStem := textutil.FileStem(strings.TrimSuffix(base, filepath.Ext(base))); inputStem != "clip" {
			stem = inputStem
		}
	}
	return stem + "_lesson.mp4"
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
