// Package config loads and validates the TOML configuration that drives the
// clip pipeline: work directories, external binary names, segment-selection
// tuning, LLM connection settings, and daemon timing.
//
// Configuration resolution order is an explicit --config path, then
// ~/.config/lingoclip/config.toml, then ./lingoclip.toml. Missing files fall
// back to defaults so the tool works out of the box; Validate rejects values
// the pipeline cannot run with.
package config
