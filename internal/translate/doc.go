// Package translate turns English caption text into Chinese for the
// bilingual subtitle track. Translation is best effort: callers fall back to
// the English text whenever a translator is absent or fails, so nothing in
// this package is fatal to a pipeline run.
package translate
