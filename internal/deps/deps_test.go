package deps

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"lingoclip/internal/services"
	"lingoclip/internal/testsupport"
)

func writeStubBinary(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := writeStubBinary(t, binDir, "present")

	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Unset", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available || results[0].Detail != "" {
		t.Fatalf("expected first requirement available, got %#v", results[0])
	}
	if results[1].Available || results[1].Detail == "" {
		t.Fatalf("expected missing binary flagged with detail, got %#v", results[1])
	}
	if results[2].Detail != "command not configured" {
		t.Fatalf("expected unconfigured detail, got %#v", results[2])
	}
}

func TestVerifyReportsMissingBinaries(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Media.FFmpegBinary = "lingoclip-test-missing-ffmpeg"
	cfg.Media.FFprobeBinary = "lingoclip-test-missing-ffprobe"
	cfg.Transcriber.WhisperBinary = "lingoclip-test-missing-whisper"

	err := Verify(cfg)
	if err == nil {
		t.Fatal("expected error for missing binaries")
	}
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestVerifyPassesWithStubBinaries(t *testing.T) {
	binDir := t.TempDir()
	cfg := testsupport.NewConfig(t)
	cfg.Media.FFmpegBinary = writeStubBinary(t, binDir, "ffmpeg")
	cfg.Media.FFprobeBinary = writeStubBinary(t, binDir, "ffprobe")
	cfg.Transcriber.WhisperBinary = writeStubBinary(t, binDir, "whisper")

	if err := Verify(cfg); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}
