// Package queue owns the task data model and its persistence.
//
// A Task is the unit of work: one input video moving through the pipeline's
// phases. Stores hand out copies, never shared pointers, so a presentation
// layer polling the store can never observe a half-written update; the
// coordinator mutates its own copy and publishes it whole through Update.
//
// Two stores implement TaskStore with identical semantics: a SQLite-backed
// store for the daemon and an in-memory store for one-shot runs and tests.
// Treat this package as the single source of truth for task lifecycle rules.
package queue
