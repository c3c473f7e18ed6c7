package media

import (
	"context"
	"time"
)

// Segment is one contiguous source-video range to cut into its own clip.
// Index orders the resulting files and names them.
type Segment struct {
	Index int
	Start time.Duration
	End   time.Duration
}

// Tool performs the external media operations the pipeline depends on. Every
// method is a blocking call into an external process; failures carry the
// tool's diagnostic output. Implementations must be safe for concurrent use
// by independent tasks.
type Tool interface {
	// ProbeDuration returns the playable length of the file at path.
	ProbeDuration(ctx context.Context, path string) (time.Duration, error)

	// ExtractAudio produces a transcription-ready audio file (16 kHz mono
	// PCM wav) under outDir and returns its path.
	ExtractAudio(ctx context.Context, videoPath, outDir, baseName string) (string, error)

	// CutSegments extracts each segment into its own clip under outDir and
	// returns the clip paths in segment order.
	CutSegments(ctx context.Context, videoPath string, segments []Segment, outDir string) ([]string, error)

	// BurnCaptions renders the subtitle file into the video frames.
	BurnCaptions(ctx context.Context, videoPath, subtitlePath, outPath string) (string, error)

	// MakeTitleCard synthesizes a short static card showing text.
	MakeTitleCard(ctx context.Context, text, outDir, fileName string, duration time.Duration) (string, error)

	// MergeClips concatenates the clips in order into a single output file.
	MergeClips(ctx context.Context, clipPaths []string, outDir, outFileName string) (string, error)
}
