// Package spec defines the YAML configuration schema of a grading project.
package spec

// Config is the root of .graphgrade/config.yml.
type Config struct {
	Version   int           `yaml:"version"`
	Inputs    InputsConfig  `yaml:"inputs"`
	Profile   string        `yaml:"profile"`
	Segments  []string      `yaml:"segments"`
	Schema    SchemaConfig  `yaml:"schema"`
	Locator   LocatorConfig `yaml:"locator"`
	OutputDir string        `yaml:"output_dir"`
	Workers   int           `yaml:"workers"`
	Store     StoreConfig   `yaml:"store"`
}

// InputsConfig names the model results file and the standard dataset file.
type InputsConfig struct {
	Results  string `yaml:"results"`
	Standard string `yaml:"standard"`
}

// SchemaConfig describes how category and difficulty are read from result
// records.
type SchemaConfig struct {
	// CategorySegment is the index of the image_url path segment holding the
	// category, counted after splitting on "/".
	CategorySegment   int               `yaml:"category_segment"`
	CategorySeparator string            `yaml:"category_separator"`
	CategoryAliases   map[string]string `yaml:"category_aliases"`
	// DifficultySource is "standard" or "result".
	DifficultySource string `yaml:"difficulty_source"`
}

// LocatorConfig selects how result ids map to standard records.
type LocatorConfig struct {
	Type   string        `yaml:"type"`
	Ranges []RangeConfig `yaml:"ranges"`
}

// RangeConfig is one id block of an offset locator. Missing bounds are open.
type RangeConfig struct {
	Min    *int `yaml:"min"`
	Max    *int `yaml:"max"`
	Offset int  `yaml:"offset"`
}

// StoreConfig configures optional persistence.
type StoreConfig struct {
	DuckDB string `yaml:"duckdb"`
}

const (
	LocatorDirect = "direct"
	LocatorOffset = "offset"

	DifficultyFromStandard = "standard"
	DifficultyFromResult   = "result"
)
