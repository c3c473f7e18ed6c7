package selection

import (
	"context"
	"math"
	"strings"
	"time"

	"lingoclip/internal/subtitles"
)

// Selector picks one contiguous clip range from a full-video timeline.
type Selector interface {
	Select(ctx context.Context, timeline subtitles.Timeline, totalDuration time.Duration) (start, end time.Duration)
}

// Params bounds the windows the selector considers.
type Params struct {
	MinDuration    time.Duration
	MaxDuration    time.Duration
	TargetDuration time.Duration
}

// DefaultParams returns the selector bounds used when nothing is configured.
func DefaultParams() Params {
	return Params{
		MinDuration:    8 * time.Second,
		MaxDuration:    25 * time.Second,
		TargetDuration: 15 * time.Second,
	}
}

// Scoring weights and thresholds. These are a deliberate design choice, not
// derived from data; changing them changes which clips users get, so they are
// fixed constants rather than configuration.
const (
	idealWordsPerSecond = 2.2
	weightSpeechRate    = 1.5
	weightCompleteness  = 2.0
	weightLength        = 1.0
	weightCentrality    = 0.3
	minWindowWords      = 5
)

// HeuristicSelector scores candidate windows deterministically: identical
// inputs always produce the identical range.
type HeuristicSelector struct {
	Params Params
}

// NewHeuristicSelector builds a heuristic selector, substituting defaults for
// non-positive bounds.
func NewHeuristicSelector(params Params) *HeuristicSelector {
	defaults := DefaultParams()
	if params.MinDuration <= 0 {
		params.MinDuration = defaults.MinDuration
	}
	if params.MaxDuration <= 0 {
		params.MaxDuration = defaults.MaxDuration
	}
	if params.TargetDuration <= 0 {
		params.TargetDuration = defaults.TargetDuration
	}
	return &HeuristicSelector{Params: params}
}

// Select implements Selector.
func (s *HeuristicSelector) Select(_ context.Context, timeline subtitles.Timeline, totalDuration time.Duration) (time.Duration, time.Duration) {
	params := s.clampParams(totalDuration)

	if timeline.IsEmpty() {
		end := params.TargetDuration
		if totalDuration >= 0 && end > totalDuration {
			end = totalDuration
		}
		return 0, end
	}

	start, end, found := s.bestWindow(timeline, totalDuration, params)
	if !found {
		start, end = timeline.Span()
	}
	return s.clampResult(start, end, totalDuration, params)
}

func (s *HeuristicSelector) clampParams(totalDuration time.Duration) Params {
	params := s.Params
	if totalDuration > 0 {
		if params.MaxDuration > totalDuration {
			params.MaxDuration = totalDuration
		}
		if params.MinDuration > params.MaxDuration {
			params.MinDuration = params.MaxDuration
		}
	}
	if params.TargetDuration < params.MinDuration {
		params.TargetDuration = params.MinDuration
	}
	if params.TargetDuration > params.MaxDuration {
		params.TargetDuration = params.MaxDuration
	}
	return params
}

func (s *HeuristicSelector) bestWindow(timeline subtitles.Timeline, totalDuration time.Duration, params Params) (time.Duration, time.Duration, bool) {
	entries := timeline.Entries
	var (
		bestStart time.Duration
		bestEnd   time.Duration
		bestScore float64
		found     bool
	)

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
			if duration > params.MaxDuration {
				break
			}
			if duration < params.MinDuration {
				continue
			}
			if words < minWindowWords {
				continue
			}

			score := scoreWindow(text.String(), words, windowStart, windowEnd, totalDuration, params.TargetDuration)
			// Strict comparison: exact ties keep the first window seen, which
			// keeps selection reproducible.
			if !found || score > bestScore {
				bestStart, bestEnd, bestScore = windowStart, windowEnd, score
				found = true
			}
		}
	}
	return bestStart, bestEnd, found
}

func scoreWindow(text string, words int, start, end, totalDuration, target time.Duration) float64 {
	duration := end - start
	seconds := duration.Seconds()

	rate := float64(words) / seconds
	rateScore := -math.Abs(rate - idealWordsPerSecond)

	completeness := 0.0
	if endsSentence(text) {
		completeness = 1.0
	}

	lengthScore := 0.0
	if target > 0 {
		lengthScore = -math.Abs(seconds-target.Seconds()) / target.Seconds()
	}

	centrality := 0.0
	if totalDuration > 0 {
		midpoint := (start + duration/2).Seconds() / totalDuration.Seconds()
		centrality = -math.Abs(midpoint - 0.5)
	}

	return weightSpeechRate*rateScore +
		weightCompleteness*completeness +
		weightLength*lengthScore +
		weightCentrality*centrality
}

func endsSentence(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	switch trimmed[len(trimmed)-1] {
	case '.', '?', '!':
		return true
	}
	return false
}

func (s *HeuristicSelector) clampResult(start, end, totalDuration time.Duration, params Params) (time.Duration, time.Duration) {
	if start < 0 {
		start = 0
	}
	if totalDuration > 0 && end > totalDuration {
		end = totalDuration
	}
	if end <= start {
		extension := params.TargetDuration
		if params.MaxDuration < extension {
			extension = params.MaxDuration
		}
		end = start + extension
		if totalDuration > 0 && end > totalDuration {
			end = totalDuration
		}
	}
	return start, end
}
