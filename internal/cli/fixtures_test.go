package cli

import (
	"os"
	"path/filepath"
	"testing"
)

const cliStandard = `[
  {"id": "0", "difficulty": "easy", "category": "Connectivity", "conversations": [
    {"from": "human", "value": "How many nodes and edges?"},
    {"from": "gpt", "value": "There are 10 nodes and 2 edges."},
    {"from": "human", "value": "List the edges."},
    {"from": "gpt", "value": "The edges are represented by the tuples:\n(5, 7), (7, 9)."},
    {"from": "human", "value": "Is there a path between node 5 and node 9?"},
    {"from": "gpt", "value": "Yes, there is a path between node 5 and node 9."}
  ]},
  {"id": "2", "difficulty": "easy", "category": "Connectivity", "conversations": [
    {"from": "human", "value": "How many nodes and edges?"},
    {"from": "gpt", "value": "There are 10 nodes and 2 edges."},
    {"from": "human", "value": "List the edges."},
    {"from": "gpt", "value": "The edges are represented by the tuples:\n(5, 7), (7, 9)."},
    {"from": "human", "value": "Is there a path between node 5 and node 9?"},
    {"from": "gpt", "value": "Yes, there is a path between node 5 and node 9."}
  ]}
]`

const cliResults = `[
  {"id": 0, "image_url": "/img/Connectivity_easy/0.png", "segment3": "Yes, the path is 5-7-9."},
  {"id": 1, "image_url": "/short", "segment3": "Yes."},
  {"id": 2, "image_url": "/img/Connectivity_easy/2.png", "segment3": "Yes, the path is 5-9"},
  {"id": 3, "image_url": "/img/Connectivity_easy/3.png", "segment3": "Yes, the path is 5-7-9."}
]`

const cliConfig = `version: 1
inputs:
  results: "results.json"
  standard: "standard.json"
profile: chatgpt
segments: [segment3]
schema:
  category_segment: 2
  category_separator: "_"
  difficulty_source: standard
locator:
  type: direct
output_dir: "out"
workers: 2
`

// writeProject lays out a project root with a config and both inputs, and
// returns the root and the config path.
func writeProject(t *testing.T, configBody string) (string, string) {
	t.Helper()
	root := t.TempDir()
	configPath := filepath.Join(root, ".graphgrade", "config.yml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("create config dir: %v", err)
	}
	files := map[string]string{
		configPath:                            configBody,
		filepath.Join(root, "standard.json"): cliStandard,
		filepath.Join(root, "results.json"):  cliResults,
	}
	for path, body := range files {
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return root, configPath
}

// chdir switches the working directory for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
