package ffmpeg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lingoclip/internal/logging"
	"lingoclip/internal/media"
	"lingoclip/internal/services"
)

func newFakeTool(run runFunc) *Tool {
	return &Tool{
		ffmpegBin:  "ffmpeg",
		ffprobeBin: "ffprobe",
		log:        logging.NewNop(),
		run:        run,
	}
}

func TestExtractAudioArgs(t *testing.T) {
	args := extractAudioArgs("/in/video.mp4", "/out/audio.wav")
	joined := strings.Join(args, " ")
	for _, want := range []string{"-vn", "-ac 1", "-ar 16000", "-f wav", "/out/audio.wav"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("argv missing %q: %s", want, joined)
		}
	}
}

func TestCutArgsUsesMillisecondPrecision(t *testing.T) {
	segment := media.Segment{Index: 1, Start: 1500 * time.Millisecond, End: 10250 * time.Millisecond}
	args := cutArgs("/in/video.mp4", segment, "/out/segment_01.mp4")
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-ss 1.500") || !strings.Contains(joined, "-to 10.250") {
		t.Fatalf("cut points not rendered: %s", joined)
	}
}

func TestBurnArgsEscapesFilterPath(t *testing.T) {
	args := burnArgs("/in/clip.mp4", "/subs/C:weird.srt", "/out/burned.mp4")
	joined := strings.Join(args, "\x00")
	if !strings.Contains(joined, `subtitles=/subs/C\:weird.srt`) {
		t.Fatalf("filter path not escaped: %q", joined)
	}
}

func TestTitleCardArgsEscapesText(t *testing.T) {
	args := titleCardArgs("Pat's 100% Pass", "/out/card.mp4", 2*time.Second)
	joined := strings.Join(args, "\x00")
	if !strings.Contains(joined, `Pat\'s 100\% Pass`) {
		t.Fatalf("card text not escaped: %q", joined)
	}
	if !strings.Contains(joined, "d=2.000") {
		t.Fatalf("card duration missing: %q", joined)
	}
}

func TestConcatListFileQuotesPaths(t *testing.T) {
	list := concatListFile([]string{"/a/one.mp4", "/a/it's.mp4"})
	want := "file '/a/one.mp4'\nfile '/a/it'\\''s.mp4'\n"
	if list != want {
		t.Fatalf("concat list = %q, want %q", list, want)
	}
}

func TestExtractAudioReturnsWavPath(t *testing.T) {
	var gotArgs []string
	tool := newFakeTool(func(_ context.Context, _ string, args []string) (string, error) {
		gotArgs = args
		return "", nil
	})

	outDir := t.TempDir()
	path, err := tool.ExtractAudio(context.Background(), "/in/video.mp4", outDir, "task-audio")
	if err != nil {
		t.Fatalf("ExtractAudio: %v", err)
	}
	if path != filepath.Join(outDir, "task-audio.wav") {
		t.Fatalf("audio path = %q", path)
	}
	if len(gotArgs) == 0 || gotArgs[len(gotArgs)-1] != path {
		t.Fatalf("output path not last arg: %v", gotArgs)
	}
}

func TestCutSegmentsOrdersOutputs(t *testing.T) {
	tool := newFakeTool(func(_ context.Context, _ string, _ []string) (string, error) {
		return "", nil
	})

	outDir := t.TempDir()
	segments := []media.Segment{
		{Index: 1, Start: 0, End: 5 * time.Second},
		{Index: 2, Start: 5 * time.Second, End: 10 * time.Second},
	}
	paths, err := tool.CutSegments(context.Background(), "/in/video.mp4", segments, outDir)
	if err != nil {
		t.Fatalf("CutSegments: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("got %d paths", len(paths))
	}
	if filepath.Base(paths[0]) != "segment_01.mp4" || filepath.Base(paths[1]) != "segment_02.mp4" {
		t.Fatalf("segment names wrong: %v", paths)
	}
}

func TestFailuresCarryStderr(t *testing.T) {
	tool := newFakeTool(func(_ context.Context, _ string, _ []string) (string, error) {
		return "Invalid data found when processing input\n", errors.New("exit status 1")
	})

	_, err := tool.BurnCaptions(context.Background(), "/in/clip.mp4", "/subs/en.srt", "/out/burned.mp4")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("error not classified as external tool failure: %v", err)
	}
	if !strings.Contains(err.Error(), "Invalid data found") {
		t.Fatalf("stderr diagnostics dropped: %v", err)
	}
}

func TestMergeClipsWritesConcatList(t *testing.T) {
	var listContent string
	tool := newFakeTool(func(_ context.Context, _ string, args []string) (string, error) {
		for i, arg := range args {
			if arg == "-i" && i+1 < len(args) {
				data, err := os.ReadFile(args[i+1])
				if err != nil {
					return "", err
				}
				listContent = string(data)
			}
		}
		return "", nil
	})

	outDir := t.TempDir()
	path, err := tool.MergeClips(context.Background(), []string{"/c/a.mp4", "/c/b.mp4"}, outDir, "final.mp4")
	if err != nil {
		t.Fatalf("MergeClips: %v", err)
	}
	if path != filepath.Join(outDir, "final.mp4") {
		t.Fatalf("output path = %q", path)
	}
	if !strings.Contains(listContent, "file '/c/a.mp4'") || !strings.Contains(listContent, "file '/c/b.mp4'") {
		t.Fatalf("concat list content = %q", listContent)
	}

	if _, err := os.Stat(filepath.Join(outDir, "final.mp4.concat.txt")); !os.IsNotExist(err) {
		t.Fatal("concat list not cleaned up")
	}
}

func TestMergeClipsRejectsEmptyInput(t *testing.T) {
	tool := newFakeTool(func(_ context.Context, _ string, _ []string) (string, error) {
		return "", nil
	})
	if _, err := tool.MergeClips(context.Background(), nil, t.TempDir(), "final.mp4"); err == nil {
		t.Fatal("expected error for empty clip list")
	}
}
