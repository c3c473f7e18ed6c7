package subtitles

import (
	"strings"
	"time"
)

// MinSliceDuration is the floor applied by SliceAndShift: entries that clamp
// to a non-positive duration are stretched to this length instead of dropped,
// because a zero-length cue breaks the downstream caption renderer.
const MinSliceDuration = 500 * time.Millisecond

// Entry is a single timed caption cue. Start and End are offsets from the
// timeline origin; End is strictly greater than Start for every entry the
// crop and slice operations emit.
type Entry struct {
	Index int
	Start time.Duration
	End   time.Duration
	Lines []string
}

// Text joins the entry's lines for display and word counting.
func (e Entry) Text() string {
	return strings.Join(e.Lines, "\n")
}

// Duration returns the cue length.
func (e Entry) Duration() time.Duration {
	return e.End - e.Start
}

// Timeline is an ordered-by-start sequence of caption entries. Source
// timelines may contain overlapping cues; the operations below never require
// input entries to be disjoint.
type Timeline struct {
	Entries []Entry
}

// IsEmpty reports whether the timeline has no entries.
func (t Timeline) IsEmpty() bool {
	return len(t.Entries) == 0
}

// Span returns the time range from the first entry's start to the last
// entry's end, or zeroes for an empty timeline.
func (t Timeline) Span() (time.Duration, time.Duration) {
	if t.IsEmpty() {
		return 0, 0
	}
	start := t.Entries[0].Start
	end := t.Entries[0].End
	for _, entry := range t.Entries[1:] {
		if entry.Start < start {
			start = entry.Start
		}
		if entry.End > end {
			end = entry.End
		}
	}
	return start, end
}

// CropAndShift keeps entries overlapping [rangeStart, rangeEnd), clips each
// kept entry to the window, and shifts the result so it starts at zero.
// Entries whose clipped duration becomes non-positive are dropped; survivors
// are renumbered from 1.
func (t Timeline) CropAndShift(rangeStart, rangeEnd time.Duration) Timeline {
	return t.reclock(rangeStart, rangeEnd, false)
}

// SliceAndShift has the same window semantics as CropAndShift but guarantees
// every output entry keeps a strictly positive duration: cues clamped to
// nothing are stretched to MinSliceDuration instead of discarded.
func (t Timeline) SliceAndShift(segmentStart, segmentEnd time.Duration) Timeline {
	return t.reclock(segmentStart, segmentEnd, true)
}

func (t Timeline) reclock(windowStart, windowEnd time.Duration, stretch bool) Timeline {
	var out Timeline
	if windowEnd <= windowStart {
		return out
	}
	for _, entry := range t.Entries {
		if entry.End <= windowStart || entry.Start >= windowEnd {
			continue
		}
		start := entry.Start
		if start < windowStart {
			start = windowStart
		}
		end := entry.End
		if end > windowEnd {
			end = windowEnd
		}
		start -= windowStart
		end -= windowStart
		if end <= start {
			if !stretch {
				continue
			}
			end = start + MinSliceDuration
		}
		lines := make([]string, len(entry.Lines))
		copy(lines, entry.Lines)
		out.Entries = append(out.Entries, Entry{
			Index: len(out.Entries) + 1,
			Start: start,
			End:   end,
			Lines: lines,
		})
	}
	return out
}
