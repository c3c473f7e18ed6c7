package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"lingoclip/internal/logging"
	"lingoclip/internal/services/llm"
)

// Translator converts one English caption into its Chinese rendering.
type Translator interface {
	Translate(ctx context.Context, english string) (string, error)
}

// Completer is the LLM surface the translator needs.
type Completer interface {
	CompleteJSON(ctx context.Context, system, user string) (string, error)
}

const translatorSystemPrompt = "You translate English video captions into natural Simplified Chinese. " +
	"Keep the translation short enough to read as a subtitle and preserve the tone of the original line. " +
	`Respond with JSON only: {"translation": "<chinese text>"}.`

// LLMTranslator asks a chat-completion model for caption translations.
type LLMTranslator struct {
	completer Completer
	log       *slog.Logger
}

var _ Translator = (*LLMTranslator)(nil)

// NewLLMTranslator wires a translator to the shared LLM client.
func NewLLMTranslator(completer Completer, logger *slog.Logger) *LLMTranslator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &LLMTranslator{
		completer: completer,
		log:       logging.NewComponentLogger(logger, "translate"),
	}
}

func (t *LLMTranslator) Translate(ctx context.Context, english string) (string, error) {
	english = strings.TrimSpace(english)
	if english == "" {
		return "", nil
	}
	if t.completer == nil {
		return "", errors.New("translate: no completer configured")
	}

	content, err := t.completer.CompleteJSON(ctx, translatorSystemPrompt, english)
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}

	var payload struct {
		Translation string `json:"translation"`
	}
	if err := llm.DecodeJSON(content, &payload); err != nil {
		return "", fmt.Errorf("translate: decode response: %w", err)
	}
	translation := strings.TrimSpace(payload.Translation)
	if translation == "" {
		return "", errors.New("translate: empty translation in response")
	}
	return translation, nil
}
