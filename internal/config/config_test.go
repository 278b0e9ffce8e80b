package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"graphgrade/internal/spec"
)

// writeInputs creates empty input files under dir.
func writeInputs(t *testing.T, dir string) {
	t.Helper()
	for _, name := range []string{"results.json", "standard.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("[]"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func validConfig() spec.Config {
	return spec.Config{
		Version: 1,
		Inputs: spec.InputsConfig{
			Results:  "results.json",
			Standard: "standard.json",
		},
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.Profile = " LLaVA "
	Normalize(&cfg)

	if cfg.Profile != "llava" {
		t.Fatalf("expected llava profile, got %q", cfg.Profile)
	}
	if len(cfg.Segments) != 1 || cfg.Segments[0] != "segment3" {
		t.Fatalf("expected default segment3, got %v", cfg.Segments)
	}
	if cfg.Locator.Type != spec.LocatorDirect || cfg.Schema.DifficultySource != spec.DifficultyFromStandard {
		t.Fatalf("unexpected defaults %+v %+v", cfg.Locator, cfg.Schema)
	}
	if cfg.OutputDir != DefaultOutputDir || cfg.Workers != 1 {
		t.Fatalf("unexpected defaults output=%q workers=%d", cfg.OutputDir, cfg.Workers)
	}
}

func TestValidateAcceptsNormalizedConfig(t *testing.T) {
	dir := t.TempDir()
	writeInputs(t, dir)
	cfg := validConfig()
	Normalize(&cfg)
	if err := Validate(&cfg, dir); err != nil {
		t.Fatalf("expected config to validate, got %v", err)
	}
}

// TestValidateCollectsEveryIssue verifies validation reports all problems at once.
func TestValidateCollectsEveryIssue(t *testing.T) {
	minBound, maxBound := 10, 5
	cfg := spec.Config{
		Version:  2,
		Profile:  "bard",
		Segments: []string{"segment3", "segment9", "segment3"},
		Schema:   spec.SchemaConfig{CategorySegment: -1, DifficultySource: "guess"},
		Locator: spec.LocatorConfig{
			Type:   spec.LocatorOffset,
			Ranges: []spec.RangeConfig{{Min: &minBound, Max: &maxBound}},
		},
		OutputDir: "out",
		Workers:   -2,
	}

	err := Validate(&cfg, t.TempDir())
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	fields := map[string]bool{}
	for _, issue := range validationErr.Issues {
		fields[issue.Field] = true
	}
	for _, field := range []string{
		"version", "inputs.results", "inputs.standard", "profile",
		"segments[1]", "segments[2]", "schema.category_segment",
		"schema.difficulty_source", "locator.ranges[0]", "workers",
	} {
		if !fields[field] {
			t.Fatalf("expected issue for %s, got %v", field, validationErr.Issues)
		}
	}
}

func TestValidateRejectsRangesOnDirectLocator(t *testing.T) {
	dir := t.TempDir()
	writeInputs(t, dir)
	cfg := validConfig()
	cfg.Locator.Ranges = []spec.RangeConfig{{Offset: 3}}
	Normalize(&cfg)
	err := Validate(&cfg, dir)
	if err == nil || !strings.Contains(err.Error(), "locator.ranges") {
		t.Fatalf("expected locator.ranges issue, got %v", err)
	}
}

func TestFindConfigPathWalksUp(t *testing.T) {
	root := t.TempDir()
	configPath := ConfigPath(root)
	if err := Scaffold(configPath, "chatgpt", ""); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err := FindConfigPath(nested)
	if err != nil {
		t.Fatalf("find config: %v", err)
	}
	if found != configPath {
		t.Fatalf("expected %q, got %q", configPath, found)
	}
	if RootFromConfigPath(found) != root {
		t.Fatalf("expected root %q, got %q", root, RootFromConfigPath(found))
	}
}

func TestFindConfigPathMissing(t *testing.T) {
	if _, err := FindConfigPath(t.TempDir()); err == nil {
		t.Fatalf("expected missing config error")
	}
}

// TestScaffoldLoadsForEveryProfile verifies starter configs pass validation.
func TestScaffoldLoadsForEveryProfile(t *testing.T) {
	for _, profile := range []string{"chatgpt", "llava"} {
		t.Run(profile, func(t *testing.T) {
			root := t.TempDir()
			writeInputs(t, root)
			configPath := ConfigPath(root)
			if err := Scaffold(configPath, profile, ""); err != nil {
				t.Fatalf("scaffold: %v", err)
			}
			cfg, err := Load(configPath)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if cfg.Profile != profile {
				t.Fatalf("expected profile %q, got %q", profile, cfg.Profile)
			}
			if err := Scaffold(configPath, profile, ""); err == nil {
				t.Fatalf("expected scaffold to refuse overwrite")
			}
		})
	}
}

func TestScaffoldWithStore(t *testing.T) {
	root := t.TempDir()
	writeInputs(t, root)
	configPath := ConfigPath(root)
	if err := Scaffold(configPath, "llava", DefaultStorePath); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	project, err := LoadProject(configPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if project.Root != root || project.Config.Store.DuckDB != DefaultStorePath {
		t.Fatalf("unexpected project %+v", project)
	}
	for _, check := range []struct{ got, want string }{
		{project.ResultsPath(), filepath.Join(root, "results.json")},
		{project.StandardPath(), filepath.Join(root, "standard.json")},
		{project.OutputDir(), filepath.Join(root, ".graphgrade", "results")},
		{project.StorePath(), filepath.Join(root, ".graphgrade", "runs.duckdb")},
	} {
		if check.got != check.want {
			t.Fatalf("expected %q, got %q", check.want, check.got)
		}
	}
}

func TestProjectWithoutStore(t *testing.T) {
	project := Project{Root: "/proj"}
	if project.StorePath() != "" {
		t.Fatalf("expected no store path, got %q", project.StorePath())
	}
}

func TestScaffoldUnknownProfile(t *testing.T) {
	if err := Scaffold(filepath.Join(t.TempDir(), "config.yml"), "bard", ""); err == nil {
		t.Fatalf("expected unknown profile error")
	}
}
