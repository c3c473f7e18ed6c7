// Package transcribe produces subtitle timelines from extracted audio.
//
// The Transcriber interface keeps the pipeline independent of any particular
// speech-to-text engine; WhisperCLI adapts the whisper command-line tool. The
// Service layers caption generation on top: one transcription pass yields
// both the English timeline and a bilingual timeline, where translation is
// optional and silently degrades to English-only lines.
package transcribe
