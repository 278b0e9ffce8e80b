package config

import (
	"fmt"
	"os"

	"graphgrade/internal/spec"
)

// Project is a loaded config together with the root its relative paths
// resolve against.
type Project struct {
	Config     spec.Config
	ConfigPath string
	Root       string
}

// LoadProject reads, parses, normalizes and validates the config at path.
func LoadProject(path string) (Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := spec.ParseConfig(data)
	if err != nil {
		return Project{}, err
	}
	Normalize(&cfg)
	root := RootFromConfigPath(path)
	if err := Validate(&cfg, root); err != nil {
		return Project{}, err
	}
	return Project{Config: cfg, ConfigPath: path, Root: root}, nil
}

// Load returns only the validated config of LoadProject.
func Load(path string) (spec.Config, error) {
	project, err := LoadProject(path)
	return project.Config, err
}

// ResultsPath is the model results file.
func (p Project) ResultsPath() string {
	return ResolvePath(p.Root, p.Config.Inputs.Results)
}

// StandardPath is the standard benchmark file.
func (p Project) StandardPath() string {
	return ResolvePath(p.Root, p.Config.Inputs.Standard)
}

// OutputDir is where run directories are written.
func (p Project) OutputDir() string {
	return ResolvePath(p.Root, p.Config.OutputDir)
}

// StorePath is the DuckDB run store, or "" when runs are not stored.
func (p Project) StorePath() string {
	return ResolvePath(p.Root, p.Config.Store.DuckDB)
}
