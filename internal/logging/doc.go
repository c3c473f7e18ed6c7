// Package logging wraps log/slog with the handlers and attribute helpers the
// rest of the application shares.
//
// Console output is produced by slog's text handler with normalized keys;
// JSON output targets machine consumption. Component loggers carry a standard
// "component" attribute, and pipeline loggers add task and phase fields so a
// single task's run can be filtered out of interleaved daemon logs.
package logging
