package config

const (
	defaultWorkDir           = "~/.local/share/lingoclip/work"
	defaultOutputDir         = "~/lingoclip"
	defaultLogDir            = "~/.local/share/lingoclip/logs"
	defaultFFmpegBinary      = "ffmpeg"
	defaultFFprobeBinary     = "ffprobe"
	defaultWhisperBinary     = "whisper"
	defaultWhisperModel      = "small"
	defaultWhisperLanguage   = "en"
	defaultWhisperTimeout    = 1800
	defaultLLMBaseURL        = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel          = "google/gemini-3-flash-preview"
	defaultLLMReferer        = "https://github.com/lingoclip/lingoclip"
	defaultLLMTitle          = "Lingoclip"
	defaultLLMTimeoutSeconds = 60
	defaultSelectionMin      = 8.0
	defaultSelectionMax      = 25.0
	defaultSelectionTarget   = 15.0
	defaultCandidateLimit    = 30
	defaultMinInputSeconds   = 10.0
	defaultTitleCardSeconds  = 2.0
	defaultMaxConcurrent     = 1
	defaultQueuePollInterval = 5
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:   defaultWorkDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Media: Media{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
		},
		Transcriber: Transcriber{
			WhisperBinary: defaultWhisperBinary,
			Model:         defaultWhisperModel,
			Language:      defaultWhisperLanguage,
			TimeoutSec:    defaultWhisperTimeout,
		},
		LLM: LLM{
			BaseURL:            defaultLLMBaseURL,
			Model:              defaultLLMModel,
			Referer:            defaultLLMReferer,
			Title:              defaultLLMTitle,
			TimeoutSeconds:     defaultLLMTimeoutSeconds,
			SelectionEnabled:   false,
			TranslationEnabled: false,
		},
		Selection: Selection{
			MinSeconds:     defaultSelectionMin,
			MaxSeconds:     defaultSelectionMax,
			TargetSeconds:  defaultSelectionTarget,
			CandidateLimit: defaultCandidateLimit,
		},
		Pipeline: Pipeline{
			MinInputSeconds:   defaultMinInputSeconds,
			TitleCards:        true,
			TitleCardSeconds:  defaultTitleCardSeconds,
			MaxConcurrent:     defaultMaxConcurrent,
			QueuePollInterval: defaultQueuePollInterval,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
