package runner

import (
	"bufio"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
)

// ReportRenderer writes the HTML report of a run.
type ReportRenderer func(w io.Writer, results Results) error

// WriteRunOutputs writes results.json, report.html and match.log under
// outputDir/<run id>. A nil render writes a minimal report page.
func WriteRunOutputs(results Results, outputDir string, render ReportRenderer) (OutputPaths, error) {
	if outputDir == "" {
		return OutputPaths{}, fmt.Errorf("output directory is required")
	}
	paths, err := NewOutputPaths(outputDir, results.RunID)
	if err != nil {
		return OutputPaths{}, err
	}
	if err := os.MkdirAll(paths.RunDir(), 0o755); err != nil {
		return OutputPaths{}, fmt.Errorf("create output dir: %w", err)
	}
	if err := writeJSON(paths.ResultsPath(), results); err != nil {
		return OutputPaths{}, err
	}
	if render == nil {
		render = placeholderReport
	}
	if err := writeFile(paths.ReportPath(), func(w io.Writer) error { return render(w, results) }); err != nil {
		return OutputPaths{}, fmt.Errorf("write report: %w", err)
	}
	if err := writeFile(paths.LogPath(), func(w io.Writer) error {
		logger := verboseLogger{log: w}
		for _, outcome := range results.Outcomes {
			logOutcome(logger, outcome)
		}
		return nil
	}); err != nil {
		return OutputPaths{}, fmt.Errorf("write match log: %w", err)
	}
	return paths, nil
}

// writeJSON writes a Results payload as pretty JSON.
func writeJSON(path string, results Results) error {
	payload, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeFile(path string, fill func(w io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	buffered := bufio.NewWriter(file)
	if err := fill(buffered); err != nil {
		_ = file.Close()
		return err
	}
	if err := buffered.Flush(); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func placeholderReport(w io.Writer, results Results) error {
	_, err := fmt.Fprintf(w, "<!doctype html>\n<html><head><meta charset=\"utf-8\"><title>graphgrade report</title></head><body><h1>graphgrade report</h1><p>Run %s (%s): %d of %d counted answers correct</p></body></html>\n",
		html.EscapeString(results.RunID), html.EscapeString(results.Profile), results.Summary.Correct, results.Summary.Counted)
	return err
}
