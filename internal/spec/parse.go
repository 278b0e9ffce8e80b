package spec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrMultipleDocuments rejects config files holding more than one YAML
// document.
var ErrMultipleDocuments = errors.New("multiple YAML documents are not supported")

// ParseConfig decodes a config strictly: unknown fields are errors.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("parse config: empty document")
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	var extra yaml.Node
	if err := decoder.Decode(&extra); err != io.EOF {
		if err == nil {
			return Config{}, fmt.Errorf("parse config: %w", ErrMultipleDocuments)
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
