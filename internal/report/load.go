package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"graphgrade/internal/runner"
)

// LatestRun selects the most recent run in ResolveRun.
const LatestRun = "latest"

// LoadResults reads a results.json file.
func LoadResults(path string) (runner.Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return runner.Results{}, err
	}
	var results runner.Results
	if err := json.Unmarshal(data, &results); err != nil {
		return runner.Results{}, fmt.Errorf("%s: %w", path, err)
	}
	return results, nil
}

// ResolveRun loads the run named ref from outputDir. Ref is a run id, a
// path to a results.json file or run directory, or "latest".
func ResolveRun(outputDir, ref string) (runner.Results, string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return runner.Results{}, "", fmt.Errorf("run ref is required")
	}
	if info, err := os.Stat(ref); err == nil {
		runDir := ref
		resultsPath := filepath.Join(ref, "results.json")
		if !info.IsDir() {
			runDir = filepath.Dir(ref)
			resultsPath = ref
		}
		results, err := LoadResults(resultsPath)
		return results, runDir, err
	}
	var runDir string
	var err error
	if ref == LatestRun {
		runDir, err = findLatestRunDir(outputDir)
	} else {
		runDir, err = findRunByID(outputDir, ref)
	}
	if err != nil {
		return runner.Results{}, "", err
	}
	results, err := LoadResults(filepath.Join(runDir, "results.json"))
	return results, runDir, err
}

// RunEntry is one stored run.
type RunEntry struct {
	ID      string
	Dir     string
	Results runner.Results
}

// ListRuns loads every run stored in outputDir, newest first. A missing
// output directory holds no runs.
func ListRuns(outputDir string) ([]RunEntry, error) {
	runIDs, err := storedRunIDs(outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	entries := make([]RunEntry, 0, len(runIDs))
	for i := len(runIDs) - 1; i >= 0; i-- {
		dir := filepath.Join(outputDir, runIDs[i])
		results, err := LoadResults(filepath.Join(dir, "results.json"))
		if err != nil {
			return nil, err
		}
		entries = append(entries, RunEntry{ID: runIDs[i], Dir: dir, Results: results})
	}
	return entries, nil
}

// findLatestRunDir returns the newest run directory. Run ids start with a
// UTC timestamp, so lexical order is chronological.
func findLatestRunDir(outputDir string) (string, error) {
	runIDs, err := storedRunIDs(outputDir)
	if err != nil {
		return "", err
	}
	if len(runIDs) == 0 {
		return "", fmt.Errorf("no runs found in %s", outputDir)
	}
	return filepath.Join(outputDir, runIDs[len(runIDs)-1]), nil
}

// storedRunIDs returns the sorted names of run directories holding a
// results.json.
func storedRunIDs(outputDir string) ([]string, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, err
	}
	runIDs := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() && hasResults(filepath.Join(outputDir, entry.Name())) {
			runIDs = append(runIDs, entry.Name())
		}
	}
	sort.Strings(runIDs)
	return runIDs, nil
}

// FindRun returns the directory of the run with the given id.
func FindRun(outputDir, runID string) (string, error) {
	if runID == LatestRun {
		return findLatestRunDir(outputDir)
	}
	if runID == "" || strings.ContainsAny(runID, `/\`) || runID == "." || runID == ".." {
		return "", fmt.Errorf("invalid run id %q", runID)
	}
	return findRunByID(outputDir, runID)
}

func findRunByID(outputDir, runID string) (string, error) {
	runDir := filepath.Join(outputDir, runID)
	if !hasResults(runDir) {
		return "", fmt.Errorf("run %s not found in %s", runID, outputDir)
	}
	return runDir, nil
}

func hasResults(runDir string) bool {
	info, err := os.Stat(filepath.Join(runDir, "results.json"))
	return err == nil && !info.IsDir()
}
