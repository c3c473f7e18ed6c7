package transcribe

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"lingoclip/internal/config"
	"lingoclip/internal/logging"
	"lingoclip/internal/services"
	"lingoclip/internal/subtitles"
)

// Transcriber converts an audio file into a subtitle timeline.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (subtitles.Timeline, error)
}

type runFunc func(ctx context.Context, binary string, args []string) (string, error)

// WhisperCLI runs the whisper command-line tool and parses the SRT it emits.
type WhisperCLI struct {
	binary   string
	model    string
	language string
	timeout  time.Duration
	log      *slog.Logger
	run      runFunc
}

var _ Transcriber = (*WhisperCLI)(nil)

// NewWhisperCLI builds a transcriber from the configured whisper settings.
func NewWhisperCLI(cfg *config.Config, logger *slog.Logger) *WhisperCLI {
	if logger == nil {
		logger = logging.NewNop()
	}
	var timeout time.Duration
	if cfg.Transcriber.TimeoutSec > 0 {
		timeout = time.Duration(cfg.Transcriber.TimeoutSec) * time.Second
	}
	return &WhisperCLI{
		binary:   cfg.Transcriber.WhisperBinary,
		model:    cfg.Transcriber.Model,
		language: cfg.Transcriber.Language,
		timeout:  timeout,
		log:      logging.NewComponentLogger(logger, "transcribe"),
		run:      runWhisper,
	}
}

func runWhisper(ctx context.Context, binary string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	err := cmd.Run()
	return output.String(), err
}

// Transcribe runs whisper against audioPath. The tool writes its SRT into a
// scratch directory which is removed once the timeline is parsed.
func (w *WhisperCLI) Transcribe(ctx context.Context, audioPath string) (subtitles.Timeline, error) {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	scratchDir, err := os.MkdirTemp("", "lingoclip-whisper-")
	if err != nil {
		return subtitles.Timeline{}, services.Wrap(services.ErrTranscription, "transcribe", "whisper", "create scratch directory", err)
	}
	defer os.RemoveAll(scratchDir)

	binary := w.binary
	if strings.TrimSpace(binary) == "" {
		binary = "whisper"
	}
	args := []string{
		audioPath,
		"--model", w.model,
		"--language", w.language,
		"--task", "transcribe",
		"--output_format", "srt",
		"--output_dir", scratchDir,
	}
	w.log.DebugContext(ctx, "running whisper",
		logging.String("audio", audioPath),
		logging.String("model", w.model))

	output, err := w.run(ctx, binary, args)
	if err != nil {
		return subtitles.Timeline{}, services.Wrap(services.ErrTranscription, "transcribe", "whisper", strings.TrimSpace(output), err)
	}

	srtPath := filepath.Join(scratchDir, srtBaseName(audioPath))
	timeline, err := subtitles.ParseFile(srtPath)
	if err != nil {
		return subtitles.Timeline{}, services.Wrap(services.ErrTranscription, "transcribe", "whisper", "read generated subtitles", err)
	}
	return timeline, nil
}

// srtBaseName mirrors whisper's output naming: the audio file name with its
// extension swapped for .srt.
func srtBaseName(audioPath string) string {
	base := filepath.Base(audioPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".srt"
}
