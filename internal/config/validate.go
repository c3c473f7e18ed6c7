package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSelection(); err != nil {
		return err
	}
	if err := c.validatePipeline(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.WorkDir == "" {
		return errors.New("paths.work_dir must be set")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	return nil
}

func (c *Config) validateSelection() error {
	if c.Selection.MinSeconds <= 0 {
		return errors.New("selection.min_seconds must be positive")
	}
	if c.Selection.MaxSeconds < c.Selection.MinSeconds {
		return fmt.Errorf("selection.max_seconds (%g) must be at least selection.min_seconds (%g)",
			c.Selection.MaxSeconds, c.Selection.MinSeconds)
	}
	if c.Selection.TargetSeconds < c.Selection.MinSeconds || c.Selection.TargetSeconds > c.Selection.MaxSeconds {
		return fmt.Errorf("selection.target_seconds (%g) must lie within [min, max]", c.Selection.TargetSeconds)
	}
	if c.Selection.CandidateLimit <= 0 {
		return errors.New("selection.candidate_limit must be positive")
	}
	return nil
}

func (c *Config) validatePipeline() error {
	if c.Pipeline.MinInputSeconds < 0 {
		return errors.New("pipeline.min_input_seconds must not be negative")
	}
	if c.Pipeline.TitleCardSeconds <= 0 {
		return errors.New("pipeline.title_card_seconds must be positive")
	}
	if c.Pipeline.MaxConcurrent <= 0 {
		return errors.New("pipeline.max_concurrent must be positive")
	}
	if c.Pipeline.QueuePollInterval <= 0 {
		return errors.New("pipeline.queue_poll_interval must be positive")
	}
	return nil
}

func (c *Config) validateLLM() error {
	if (c.LLM.SelectionEnabled || c.LLM.TranslationEnabled) && c.LLM.APIKey == "" {
		return errors.New("llm.api_key is required when llm.selection_enabled or llm.translation_enabled is set (or export LINGOCLIP_LLM_API_KEY)")
	}
	return nil
}
