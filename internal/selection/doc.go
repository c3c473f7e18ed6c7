// Package selection chooses the contiguous time range of a video that is
// worth turning into a learning clip.
//
// Two interchangeable strategies implement Selector. The heuristic scorer is
// fully deterministic: it enumerates windows of consecutive subtitle entries
// and ranks them by speech rate, sentence completeness, length, and position.
// The LLM-assisted strategy builds a candidate list, asks a language model to
// pick one by index, and falls back to the heuristic scorer on any failure —
// a selection failure never fails the surrounding task.
package selection
