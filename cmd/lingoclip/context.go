package main

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"lingoclip/internal/config"
	"lingoclip/internal/logging"
	"lingoclip/internal/media/ffmpeg"
	"lingoclip/internal/pipeline"
	"lingoclip/internal/queue"
	"lingoclip/internal/selection"
	"lingoclip/internal/services/llm"
	"lingoclip/internal/transcribe"
	"lingoclip/internal/translate"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) buildLogger(cfg *config.Config, toFile bool) (*slog.Logger, error) {
	outputs := []string{"stderr"}
	if toFile {
		outputs = append(outputs, filepath.Join(cfg.Paths.LogDir, "lingoclip.log"))
	}
	return logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: outputs,
	})
}

func (c *commandContext) openStore(cfg *config.Config) (queue.TaskStore, error) {
	return queue.Open(cfg)
}

func (c *commandContext) buildCoordinator(cfg *config.Config, store queue.TaskStore, logger *slog.Logger) *pipeline.Coordinator {
	tool := ffmpeg.NewTool(cfg, logger)
	transcriber := transcribe.NewWhisperCLI(cfg, logger)
	captions := transcribe.NewService(transcriber, logger)

	var client *llm.Client
	if cfg.LLM.APIKey != "" {
		client = llm.NewClient(llm.Config{
			APIKey:         cfg.LLM.APIKey,
			BaseURL:        cfg.LLM.BaseURL,
			Model:          cfg.LLM.Model,
			Referer:        cfg.LLM.Referer,
			Title:          cfg.LLM.Title,
			TimeoutSeconds: cfg.LLM.TimeoutSeconds,
		})
	}

	var translator translate.Translator
	if client != nil && cfg.LLM.TranslationEnabled {
		translator = translate.NewLLMTranslator(client, logger)
	}

	return pipeline.NewCoordinator(cfg, store, tool, captions, translator, buildSelector(cfg, client, logger), logger)
}

func buildSelector(cfg *config.Config, client *llm.Client, logger *slog.Logger) selection.Selector {
	heuristic := selection.NewHeuristicSelector(selection.Params{
		MinDuration:    secondsToDuration(cfg.Selection.MinSeconds),
		MaxDuration:    secondsToDuration(cfg.Selection.MaxSeconds),
		TargetDuration: secondsToDuration(cfg.Selection.TargetSeconds),
	})
	if client != nil && cfg.LLM.SelectionEnabled {
		return selection.NewLLMSelector(client, heuristic, logger, cfg.Selection.CandidateLimit)
	}
	return heuristic
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
