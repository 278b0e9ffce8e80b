package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"graphgrade/internal/extract"
)

const chatGPTConfig = `version: 1
inputs:
  results: "results.json"
  standard: "standard.json"

# Phrasing profile of the model that produced the answers.
profile: chatgpt
segments: [segment3]

schema:
  category_segment: 6
  category_separator: "_"
  category_aliases:
    HamlitonPath: HamiltonPath
  difficulty_source: standard

# Result ids are numbered per category block.
locator:
  type: offset
  ranges:
    - {max: 561, offset: 0}
    - {min: 903, offset: 277}
    - {min: 562, max: 902, offset: 135}

output_dir: ".graphgrade/results"
workers: 1
store:
  duckdb: ""
`

const llavaConfig = `version: 1
inputs:
  results: "results.json"
  standard: "standard.json"

# Phrasing profile of the model that produced the answers.
profile: llava
segments: [segment1, segment2, segment3]

schema:
  category_segment: 5
  difficulty_source: result

locator:
  type: direct

output_dir: ".graphgrade/results"
workers: 1
store:
  duckdb: ""
`

// DefaultConfig returns the starter config for a phrasing profile.
func DefaultConfig(profile string) (string, error) {
	switch profile {
	case "", extract.ProfileChatGPT:
		return chatGPTConfig, nil
	case extract.ProfileLLaVA:
		return llavaConfig, nil
	default:
		return "", fmt.Errorf("%w: %q", extract.ErrUnknownProfile, profile)
	}
}

// Scaffold writes a starter config file, refusing to overwrite one. A
// non-empty storePath enables saving runs to that DuckDB file.
func Scaffold(configPath, profile, storePath string) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", configPath)
		}
		return fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	content, err := DefaultConfig(profile)
	if err != nil {
		return err
	}
	if storePath != "" {
		content = strings.Replace(content, `duckdb: ""`, fmt.Sprintf("duckdb: %q", filepath.ToSlash(storePath)), 1)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
