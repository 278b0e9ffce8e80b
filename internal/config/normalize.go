package config

import (
	"strings"

	"graphgrade/internal/extract"
	"graphgrade/internal/spec"
	"graphgrade/internal/validate"
)

// Normalize fills defaults and canonicalizes names in place.
func Normalize(cfg *spec.Config) {
	cfg.Profile = strings.ToLower(strings.TrimSpace(cfg.Profile))
	if cfg.Profile == "" {
		cfg.Profile = extract.ProfileChatGPT
	}
	for i := range cfg.Segments {
		cfg.Segments[i] = strings.ToLower(strings.TrimSpace(cfg.Segments[i]))
	}
	if len(cfg.Segments) == 0 {
		cfg.Segments = []string{string(validate.Segment3)}
	}
	cfg.Schema.DifficultySource = strings.ToLower(strings.TrimSpace(cfg.Schema.DifficultySource))
	if cfg.Schema.DifficultySource == "" {
		cfg.Schema.DifficultySource = spec.DifficultyFromStandard
	}
	cfg.Locator.Type = strings.ToLower(strings.TrimSpace(cfg.Locator.Type))
	if cfg.Locator.Type == "" {
		cfg.Locator.Type = spec.LocatorDirect
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.Workers == 0 {
		cfg.Workers = 1
	}
}
