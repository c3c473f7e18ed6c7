package selection

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"lingoclip/internal/logging"
	"lingoclip/internal/services/llm"
	"lingoclip/internal/subtitles"
)

// Completer is the narrow slice of the LLM client the selector needs.
type Completer interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

const selectionSystemPrompt = `You pick the best excerpt of a video transcript for a short language-learning clip.
Prefer complete, self-contained utterances with clear everyday vocabulary.
Respond with strict JSON of the form {"index": N} where N is the 1-based index of the single best candidate. No other text.`

// LLMSelector asks a language model to pick a candidate window by index and
// falls back to the heuristic scorer whenever anything goes wrong. The
// fallback is designed behavior, not an error path: callers always get a
// usable range.
type LLMSelector struct {
	completer Completer
	fallback  *HeuristicSelector
	logger    *slog.Logger
	limit     int
}

// NewLLMSelector builds an LLM-assisted selector around the given completer
// and heuristic fallback.
func NewLLMSelector(completer Completer, fallback *HeuristicSelector, logger *slog.Logger, candidateLimit int) *LLMSelector {
	if fallback == nil {
		fallback = NewHeuristicSelector(DefaultParams())
	}
	return &LLMSelector{
		completer: completer,
		fallback:  fallback,
		logger:    logging.NewComponentLogger(logger, "llm-selector"),
		limit:     candidateLimit,
	}
}

// Select implements Selector.
func (s *LLMSelector) Select(ctx context.Context, timeline subtitles.Timeline, totalDuration time.Duration) (time.Duration, time.Duration) {
	if s.completer == nil || timeline.IsEmpty() || totalDuration <= 0 {
		return s.fallback.Select(ctx, timeline, totalDuration)
	}

	candidates := BuildCandidates(timeline, s.limit)
	if len(candidates) == 0 {
		s.logger.Debug("no candidates for model, using heuristic scorer")
		return s.fallback.Select(ctx, timeline, totalDuration)
	}

	content, err := s.completer.CompleteJSON(ctx, selectionSystemPrompt, buildSelectionPrompt(candidates))
	if err != nil {
		s.logger.Debug("model selection failed, using heuristic scorer", logging.Error(err))
		return s.fallback.Select(ctx, timeline, totalDuration)
	}

	index, ok := parseSelectionResponse(content)
	if !ok || index < 1 || index > len(candidates) {
		s.logger.Debug("unusable model response, using heuristic scorer",
			logging.String("response", content))
		return s.fallback.Select(ctx, timeline, totalDuration)
	}

	chosen := candidates[index-1]
	start, end := chosen.Start, chosen.End
	if start < 0 {
		start = 0
	}
	if end > totalDuration {
		end = totalDuration
	}
	if end <= start {
		return s.fallback.Select(ctx, timeline, totalDuration)
	}
	return start, end
}

func buildSelectionPrompt(candidates []Candidate) string {
	var b strings.Builder
	b.WriteString("Candidates:\n")
	for _, c := range candidates {
		fmt.Fprintf(&b, "%d. [%s - %s] (%d words): %s\n",
			c.Index,
			subtitles.FormatTimestamp(c.Start),
			subtitles.FormatTimestamp(c.End),
			c.WordCount,
			strings.TrimSpace(c.Text),
		)
	}
	b.WriteString("\nReturn the index of the best candidate.")
	return b.String()
}

// parseSelectionResponse accepts either {"index": N} or a bare integer.
func parseSelectionResponse(content string) (int, bool) {
	var payload struct {
		Index int `json:"index"`
	}
	if err := llm.DecodeJSON(content, &payload); err == nil && payload.Index != 0 {
		return payload.Index, true
	}
	var bare int
	if err := llm.DecodeJSON(content, &bare); err == nil && bare != 0 {
		return bare, true
	}
	return 0, false
}
