package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInput marks missing or invalid input files and invalid task parameters.
	ErrInput = errors.New("input error")
	// ErrExternalTool marks a non-zero exit or unusable output from an external
	// media tool invocation.
	ErrExternalTool = errors.New("external tool error")
	// ErrTranscription marks speech-to-text failures.
	ErrTranscription = errors.New("transcription error")
	// ErrConfiguration marks unusable runtime configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrCancelled marks cooperative cancellation observed between stages.
	ErrCancelled = errors.New("cancelled")
)

// CancellationMessage is the user-facing error text recorded on a task when a
// run is cancelled, distinct from crash diagnostics.
const CancellationMessage = "task cancelled by user"

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsCancellation reports whether an error represents cooperative cancellation
// rather than a crash.
func IsCancellation(err error) bool {
	return errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled)
}

// IsInput reports whether an error was classified as an input problem.
func IsInput(err error) bool {
	return errors.Is(err, ErrInput)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
