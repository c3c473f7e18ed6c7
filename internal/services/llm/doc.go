// Package llm wraps an OpenRouter-compatible chat completion API behind a
// JSON-only client.
//
// Callers hand the client a system and user prompt and get back the raw JSON
// payload the model produced. Transient HTTP failures (429, 5xx, timeouts)
// are retried with capped exponential backoff; everything else surfaces
// immediately. DecodeJSON tolerates the usual model formatting quirks such as
// code fences and prose around the payload.
package llm
