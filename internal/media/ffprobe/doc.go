// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// The pipeline only needs a handful of facts about an input video before
// committing work to it: that ffmpeg can read it, that it carries video and
// audio streams, and how long it runs. Inspect executes ffprobe once and the
// Result helpers answer those questions without re-probing.
package ffprobe
