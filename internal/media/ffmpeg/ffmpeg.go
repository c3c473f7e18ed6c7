package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"lingoclip/internal/config"
	"lingoclip/internal/logging"
	"lingoclip/internal/media"
	"lingoclip/internal/media/ffprobe"
	"lingoclip/internal/services"
)

// runFunc executes a binary with args and returns whatever it wrote to
// stderr alongside the exit error. Tests substitute it to capture argv.
type runFunc func(ctx context.Context, binary string, args []string) (string, error)

// Tool runs ffmpeg and ffprobe commands on behalf of the pipeline.
type Tool struct {
	ffmpegBin  string
	ffprobeBin string
	log        *slog.Logger
	run        runFunc
}

var _ media.Tool = (*Tool)(nil)

// NewTool builds a command-line media tool from the configured binaries.
func NewTool(cfg *config.Config, logger *slog.Logger) *Tool {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Tool{
		ffmpegBin:  cfg.Media.FFmpegBinary,
		ffprobeBin: cfg.Media.FFprobeBinary,
		log:        logging.NewComponentLogger(logger, "ffmpeg"),
		run:        runCommand,
	}
}

func runCommand(ctx context.Context, binary string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.String(), err
}

func (t *Tool) ProbeDuration(ctx context.Context, path string) (time.Duration, error) {
	result, err := ffprobe.Inspect(ctx, t.ffprobeBin, path)
	if err != nil {
		return 0, services.Wrap(services.ErrExternalTool, "media", "probe", "", err)
	}
	duration := result.Duration()
	if duration <= 0 {
		return 0, services.Wrap(services.ErrExternalTool, "media", "probe", fmt.Sprintf("no playable duration reported for %s", path), nil)
	}
	return duration, nil
}

func (t *Tool) ExtractAudio(ctx context.Context, videoPath, outDir, baseName string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "media", "extract_audio", "create output directory", err)
	}
	outPath := filepath.Join(outDir, baseName+".wav")
	if err := t.exec(ctx, "extract_audio", extractAudioArgs(videoPath, outPath)); err != nil {
		return "", err
	}
	return outPath, nil
}

func (t *Tool) CutSegments(ctx context.Context, videoPath string, segments []media.Segment, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "media", "cut_segments", "create output directory", err)
	}
	paths := make([]string, 0, len(segments))
	for _, segment := range segments {
		outPath := filepath.Join(outDir, fmt.Sprintf("segment_%02d.mp4", segment.Index))
		if err := t.exec(ctx, "cut_segments", cutArgs(videoPath, segment, outPath)); err != nil {
			return nil, err
		}
		paths = append(paths, outPath)
	}
	return paths, nil
}

func (t *Tool) BurnCaptions(ctx context.Context, videoPath, subtitlePath, outPath string) (string, error) {
	if err := t.exec(ctx, "burn_captions", burnArgs(videoPath, subtitlePath, outPath)); err != nil {
		return "", err
	}
	return outPath, nil
}

func (t *Tool) MakeTitleCard(ctx context.Context, text, outDir, fileName string, duration time.Duration) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "media", "title_card", "create output directory", err)
	}
	outPath := filepath.Join(outDir, fileName)
	if err := t.exec(ctx, "title_card", titleCardArgs(text, outPath, duration)); err != nil {
		return "", err
	}
	return outPath, nil
}

func (t *Tool) MergeClips(ctx context.Context, clipPaths []string, outDir, outFileName string) (string, error) {
	if len(clipPaths) == 0 {
		return "", services.Wrap(services.ErrExternalTool, "media", "merge", "no clips to merge", nil)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "media", "merge", "create output directory", err)
	}
	listPath := filepath.Join(outDir, outFileName+".concat.txt")
	if err := os.WriteFile(listPath, []byte(concatListFile(clipPaths)), 0o644); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "media", "merge", "write concat list", err)
	}
	defer os.Remove(listPath)

	outPath := filepath.Join(outDir, outFileName)
	if err := t.exec(ctx, "merge", concatArgs(listPath, outPath)); err != nil {
		return "", err
	}
	return outPath, nil
}

func (t *Tool) exec(ctx context.Context, operation string, args []string) error {
	binary := t.ffmpegBin
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	t.log.DebugContext(ctx, "running ffmpeg",
		logging.String("operation", operation),
		logging.String("args", strings.Join(args, " ")))

	stderr, err := t.run(ctx, binary, args)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "media", operation, strings.TrimSpace(stderr), err)
	}
	return nil
}
