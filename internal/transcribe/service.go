package transcribe

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"lingoclip/internal/logging"
	"lingoclip/internal/services"
	"lingoclip/internal/subtitles"
	"lingoclip/internal/translate"
)

// Captions bundles the two subtitle tracks one transcription pass produces.
type Captions struct {
	English       subtitles.Timeline
	Bilingual     subtitles.Timeline
	EnglishPath   string
	BilingualPath string
}

// Service generates caption files from audio.
type Service struct {
	transcriber Transcriber
	log         *slog.Logger
}

// NewService wires the caption generator to a transcriber.
func NewService(transcriber Transcriber, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{
		transcriber: transcriber,
		log:         logging.NewComponentLogger(logger, "captions"),
	}
}

// GenerateEnglishAndBilingual transcribes audioPath once and writes two SRT
// files under outDir: baseName.en.srt and baseName.bi.srt. When translator is
// nil the bilingual track is an English passthrough; when a single line fails
// to translate it stays English-only. Translation never fails a run.
func (s *Service) GenerateEnglishAndBilingual(ctx context.Context, audioPath, outDir, baseName string, translator translate.Translator) (Captions, error) {
	english, err := s.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return Captions{}, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Captions{}, services.Wrap(services.ErrTranscription, "captions", "write", "create output directory", err)
	}

	captions := Captions{
		English:       english,
		Bilingual:     s.buildBilingual(ctx, english, translator),
		EnglishPath:   filepath.Join(outDir, baseName+".en.srt"),
		BilingualPath: filepath.Join(outDir, baseName+".bi.srt"),
	}

	if err := captions.English.WriteFile(captions.EnglishPath); err != nil {
		return Captions{}, services.Wrap(services.ErrTranscription, "captions", "write", fmt.Sprintf("write %s", captions.EnglishPath), err)
	}
	if err := captions.Bilingual.WriteFile(captions.BilingualPath); err != nil {
		return Captions{}, services.Wrap(services.ErrTranscription, "captions", "write", fmt.Sprintf("write %s", captions.BilingualPath), err)
	}
	return captions, nil
}

// buildBilingual appends a translated line under each English cue. With no
// translator the English timeline passes through untouched.
func (s *Service) buildBilingual(ctx context.Context, english subtitles.Timeline, translator translate.Translator) subtitles.Timeline {
	if translator == nil {
		return english
	}

	entries := make([]subtitles.Entry, len(english.Entries))
	for i, entry := range english.Entries {
		bilingual := entry
		bilingual.Lines = append([]string(nil), entry.Lines...)

		translated, err := translator.Translate(ctx, entry.Text())
		if err != nil {
			s.log.DebugContext(ctx, "translation failed, keeping English line",
				logging.Int("entry", entry.Index),
				logging.Error(err))
		} else if translated != "" {
			bilingual.Lines = append(bilingual.Lines, translated)
		}
		entries[i] = bilingual
	}
	return subtitles.Timeline{Entries: entries}
}
