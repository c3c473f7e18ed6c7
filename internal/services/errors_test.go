package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"lingoclip/internal/services"
)

func TestWrapPreservesMarkerAndCause(t *testing.T) {
	cause := errors.New("ffmpeg exited with status 1")
	err := services.Wrap(services.ErrExternalTool, "splitting_video", "cut segments", "base clip extraction failed", cause)

	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("marker lost: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause lost: %v", err)
	}
	for _, fragment := range []string{"splitting_video", "cut segments", "ffmpeg exited"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("error text missing %q: %v", fragment, err)
		}
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := services.Wrap(services.ErrInput, "pending", "validate input", "no such file", nil)
	if !errors.Is(err, services.ErrInput) {
		t.Fatalf("expected ErrInput, got %v", err)
	}
}

func TestIsCancellation(t *testing.T) {
	if !services.IsCancellation(fmt.Errorf("stage: %w", services.ErrCancelled)) {
		t.Fatal("wrapped ErrCancelled not detected")
	}
	if !services.IsCancellation(context.Canceled) {
		t.Fatal("context.Canceled not detected")
	}
	if services.IsCancellation(errors.New("boom")) {
		t.Fatal("arbitrary error misclassified as cancellation")
	}
}
