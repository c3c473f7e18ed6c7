package subtitles_test

import (
	"testing"
	"time"

	"lingoclip/internal/subtitles"
)

func sec(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func makeTimeline(ranges ...[2]float64) subtitles.Timeline {
	var tl subtitles.Timeline
	for i, r := range ranges {
		tl.Entries = append(tl.Entries, subtitles.Entry{
			Index: i + 1,
			Start: sec(r[0]),
			End:   sec(r[1]),
			Lines: []string{"cue"},
		})
	}
	return tl
}

func TestCropAndShiftClipsAndShifts(t *testing.T) {
	tl := makeTimeline([2]float64{0, 5}, [2]float64{8, 12}, [2]float64{14, 20}, [2]float64{25, 30})
	out := tl.CropAndShift(sec(10), sec(18))

	if len(out.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(out.Entries))
	}
	// 8..12 clipped to 10..12 then shifted to 0..2.
	first := out.Entries[0]
	if first.Start != 0 || first.End != sec(2) {
		t.Fatalf("first = %v..%v, want 0s..2s", first.Start, first.End)
	}
	// 14..20 clipped to 14..18 then shifted to 4..8.
	second := out.Entries[1]
	if second.Start != sec(4) || second.End != sec(8) {
		t.Fatalf("second = %v..%v, want 4s..8s", second.Start, second.End)
	}
	if first.Index != 1 || second.Index != 2 {
		t.Fatalf("indices = %d,%d, want 1,2", first.Index, second.Index)
	}
}

func TestCropAndShiftInvariants(t *testing.T) {
	tl := makeTimeline(
		[2]float64{0, 3}, [2]float64{2, 6}, [2]float64{5, 9},
		[2]float64{9, 14}, [2]float64{13, 22}, [2]float64{30, 31},
	)
	windowStart, windowEnd := sec(4), sec(15)
	out := tl.CropAndShift(windowStart, windowEnd)

	windowLen := windowEnd - windowStart
	for _, entry := range out.Entries {
		if entry.Start < 0 || entry.End > windowLen {
			t.Fatalf("entry %d escapes window: %v..%v (window length %v)", entry.Index, entry.Start, entry.End, windowLen)
		}
		if entry.End <= entry.Start {
			t.Fatalf("entry %d has non-positive duration", entry.Index)
		}
	}
	// Entries entirely outside [4,15) must not survive.
	for _, entry := range out.Entries {
		orig := entry.Start + windowStart
		if orig >= windowEnd {
			t.Fatalf("entry %d originated outside the window", entry.Index)
		}
	}
}

func TestCropAndShiftDropsDegenerateCues(t *testing.T) {
	tl := subtitles.Timeline{Entries: []subtitles.Entry{
		{Start: sec(5), End: sec(5), Lines: []string{"zero length"}},
		{Start: sec(6), End: sec(7), Lines: []string{"ok"}},
	}}
	out := tl.CropAndShift(sec(4), sec(10))
	if len(out.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(out.Entries))
	}
}

func TestCropAndShiftEmptyWindow(t *testing.T) {
	tl := makeTimeline([2]float64{0, 5})
	if out := tl.CropAndShift(sec(5), sec(5)); !out.IsEmpty() {
		t.Fatal("zero-width window must produce an empty timeline")
	}
	if out := tl.CropAndShift(sec(8), sec(4)); !out.IsEmpty() {
		t.Fatal("inverted window must produce an empty timeline")
	}
}

func TestSliceAndShiftNeverEmitsNonPositiveDurations(t *testing.T) {
	tl := subtitles.Timeline{Entries: []subtitles.Entry{
		{Start: sec(1), End: sec(1), Lines: []string{"degenerate"}},
		{Start: sec(2), End: sec(4), Lines: []string{"normal"}},
	}}
	out := tl.SliceAndShift(0, sec(10))
	if len(out.Entries) != 2 {
		t.Fatalf("entries = %d, want 2 (degenerate cue stretched, not dropped)", len(out.Entries))
	}
	for _, entry := range out.Entries {
		if entry.End <= entry.Start {
			t.Fatalf("entry %d has non-positive duration %v", entry.Index, entry.Duration())
		}
	}
	if got := out.Entries[0].Duration(); got != subtitles.MinSliceDuration {
		t.Fatalf("stretched duration = %v, want %v", got, subtitles.MinSliceDuration)
	}
}

func TestSliceAndShiftMatchesCropForHealthyCues(t *testing.T) {
	tl := makeTimeline([2]float64{1, 4}, [2]float64{6, 9}, [2]float64{11, 13})
	cropped := tl.CropAndShift(sec(2), sec(12))
	sliced := tl.SliceAndShift(sec(2), sec(12))
	if len(cropped.Entries) != len(sliced.Entries) {
		t.Fatalf("crop/slice diverge: %d vs %d entries", len(cropped.Entries), len(sliced.Entries))
	}
	for i := range cropped.Entries {
		if cropped.Entries[i].Start != sliced.Entries[i].Start || cropped.Entries[i].End != sliced.Entries[i].End {
			t.Fatalf("entry %d diverges: crop %v..%v, slice %v..%v", i,
				cropped.Entries[i].Start, cropped.Entries[i].End,
				sliced.Entries[i].Start, sliced.Entries[i].End)
		}
	}
}

func TestSpan(t *testing.T) {
	tl := makeTimeline([2]float64{3, 8}, [2]float64{1, 5}, [2]float64{6, 12})
	start, end := tl.Span()
	if start != sec(1) || end != sec(12) {
		t.Fatalf("span = %v..%v, want 1s..12s", start, end)
	}

	var empty subtitles.Timeline
	if s, e := empty.Span(); s != 0 || e != 0 {
		t.Fatalf("empty span = %v..%v, want zeroes", s, e)
	}
}
