package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"lingoclip/internal/subtitles"
)

// WriteVideoStub creates a placeholder input file at path. The pipeline
// under test never decodes it; it only needs the file to exist.
func WriteVideoStub(t testing.TB, path string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("stub video"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// Timeline builds a timeline of count back-to-back five-second cues starting
// at zero, each carrying a distinct full sentence.
func Timeline(count int) subtitles.Timeline {
	entries := make([]subtitles.Entry, 0, count)
	for i := 0; i < count; i++ {
		start := time.Duration(i*5) * time.Second
		entries = append(entries, subtitles.Entry{
			Index: i + 1,
			Start: start,
			End:   start + 4*time.Second,
			Lines: []string{fmt.Sprintf("cue number %d carries a complete spoken sentence.", i+1)},
		})
	}
	return subtitles.Timeline{Entries: entries}
}

// WriteSRT renders a timeline to path for tests that read caption files.
func WriteSRT(t testing.TB, path string, timeline subtitles.Timeline) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := timeline.WriteFile(path); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
