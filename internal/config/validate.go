package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"graphgrade/internal/extract"
	"graphgrade/internal/spec"
	"graphgrade/internal/validate"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// Validate checks a normalized config and the files it references. Every
// problem is collected before returning.
func Validate(cfg *spec.Config, baseDir string) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if cfg.Version == 0 {
		add("version", "is required")
	} else if cfg.Version != 1 {
		add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if baseDir == "" {
		baseDir = "."
	}
	checkFile := func(field, path string) {
		if strings.TrimSpace(path) == "" {
			add(field, "is required")
			return
		}
		info, err := os.Stat(ResolvePath(baseDir, path))
		if err != nil {
			add(field, fmt.Sprintf("file not found at %q", path))
		} else if info.IsDir() {
			add(field, fmt.Sprintf("path %q is a directory", path))
		}
	}
	checkFile("inputs.results", cfg.Inputs.Results)
	checkFile("inputs.standard", cfg.Inputs.Standard)

	if !slices.Contains(extract.ProfileNames(), cfg.Profile) {
		add("profile", fmt.Sprintf("unsupported profile %q (want one of %s)", cfg.Profile, strings.Join(extract.ProfileNames(), ", ")))
	}

	seen := map[string]struct{}{}
	for i, segment := range cfg.Segments {
		field := fmt.Sprintf("segments[%d]", i)
		if !validate.Segment(segment).Known() {
			add(field, fmt.Sprintf("unsupported segment %q", segment))
			continue
		}
		if _, dup := seen[segment]; dup {
			add(field, fmt.Sprintf("duplicate segment %q", segment))
		}
		seen[segment] = struct{}{}
	}

	if cfg.Schema.CategorySegment < 0 {
		add("schema.category_segment", "must be >= 0")
	}
	switch cfg.Schema.DifficultySource {
	case spec.DifficultyFromStandard, spec.DifficultyFromResult:
	default:
		add("schema.difficulty_source", fmt.Sprintf("unsupported source %q", cfg.Schema.DifficultySource))
	}
	for from, to := range cfg.Schema.CategoryAliases {
		if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
			add("schema.category_aliases", "aliases must map non-empty names")
			break
		}
	}

	switch cfg.Locator.Type {
	case spec.LocatorDirect:
		if len(cfg.Locator.Ranges) > 0 {
			add("locator.ranges", "only allowed with type offset")
		}
	case spec.LocatorOffset:
		for i, r := range cfg.Locator.Ranges {
			field := fmt.Sprintf("locator.ranges[%d]", i)
			if r.Min != nil && *r.Min < 0 {
				add(field+".min", "must be >= 0")
			}
			if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
				add(field, fmt.Sprintf("min %d exceeds max %d", *r.Min, *r.Max))
			}
		}
	default:
		add("locator.type", fmt.Sprintf("unsupported type %q", cfg.Locator.Type))
	}

	if strings.TrimSpace(cfg.OutputDir) == "" {
		add("output_dir", "is required")
	}
	if cfg.Workers < 1 {
		add("workers", "must be >= 1")
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
