package selection

import (
	"strings"
	"time"

	"lingoclip/internal/subtitles"
)

// Candidate is an ephemeral proposed clip window considered during
// LLM-assisted selection.
type Candidate struct {
	Index     int
	Start     time.Duration
	End       time.Duration
	Text      string
	WordCount int
}

// Candidate windows offered to the model use looser bounds than the
// heuristic scorer so the model has real alternatives to choose between.
const (
	candidateMinDuration = 4 * time.Second
	candidateMaxDuration = 45 * time.Second
	candidateMinWords    = minWindowWords
	defaultCandidateCap  = 30
)

// BuildCandidates expands consecutive-entry windows into at most limit
// candidates, each carrying a 1-based index, its time range, and its text.
func BuildCandidates(timeline subtitles.Timeline, limit int) []Candidate {
	if limit <= 0 {
		limit = defaultCandidateCap
	}

	entries := timeline.Entries
	var out []Candidate
	for i := range entries {
		windowStart := entries[i].Start
		var text strings.Builder
		words := 0

		for j := i; j < len(entries); j++ {
			if j > i {
				text.WriteByte(' ')
			}
			text.WriteString(entries[j].Text())
			words += len(strings.Fields(entries[j].Text()))

			windowEnd := entries[j].End
			duration := windowEnd - windowStart
			if duration > candidateMaxDuration {
				break
			}
			if duration < candidateMinDuration || words < candidateMinWords {
				continue
			}

			out = append(out, Candidate{
				Index:     len(out) + 1,
				Start:     windowStart,
				End:       windowEnd,
				Text:      text.String(),
				WordCount: words,
			})
			if len(out) >= limit {
				return out
			}
		}
	}
	return out
}
