// Package ffmpeg implements the media.Tool interface by shelling out to the
// ffmpeg and ffprobe binaries.
//
// Each operation builds a plain argv slice, runs it, and captures stderr so
// that a failed invocation surfaces the tool's own diagnostics instead of a
// bare exit code. Command construction is separated from execution so argv
// shapes can be tested without spawning processes.
package ffmpeg
