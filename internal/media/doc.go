// Package media defines the Tool interface the pipeline uses for all heavy
// video and audio work. The coordinator never shells out directly; it asks a
// Tool, and tests substitute deterministic fakes.
package media
