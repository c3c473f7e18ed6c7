// Package subtitles implements the timed-text timeline the pipeline is built
// around: parsing and writing SRT files, and the crop/slice operations that
// realign a full-video timeline onto a clip-local clock.
//
// Parsing is forgiving; cue blocks with corrupt time ranges are skipped and
// index lines are ignored entirely because writers renumber from 1. Writing
// is deterministic and byte-stable so round-trip comparisons hold in tests.
package subtitles
