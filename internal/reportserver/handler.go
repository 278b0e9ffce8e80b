package reportserver

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"graphgrade/internal/report"
)

// NewHandler builds the HTTP handler for the run index, per-run reports and
// the optional DuckDB download.
func NewHandler(cfg Config) (http.Handler, error) {
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return nil, errors.New("reportserver: output dir is required")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", serveIndex(cfg.OutputDir))
	mux.HandleFunc("GET /runs/{id}", serveRunReport(cfg.OutputDir))
	mux.HandleFunc("GET /runs/{id}/results.json", serveRunResults(cfg.OutputDir))
	if cfg.DBPath != "" {
		mux.Handle("GET /data/store.duckdb", serveDatabase(cfg.DBPath))
	}
	return mux, nil
}

// serveIndex lists the stored runs, newest first.
func serveIndex(outputDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := report.ListRuns(outputDir)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = IndexPage(entries).Render(r.Context(), w)
	}
}

// serveRunReport renders the HTML report of one run.
func serveRunReport(outputDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runDir, ok := findRun(w, outputDir, r.PathValue("id"))
		if !ok {
			return
		}
		results, err := report.LoadResults(filepath.Join(runDir, "results.json"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = report.ReportPage(results).Render(r.Context(), w)
	}
}

// serveRunResults returns the raw results.json of one run.
func serveRunResults(outputDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runDir, ok := findRun(w, outputDir, r.PathValue("id"))
		if !ok {
			return
		}
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, filepath.Join(runDir, "results.json"))
	}
}

// serveDatabase serves the DuckDB file from disk.
func serveDatabase(dbPath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		http.ServeFile(w, r, dbPath)
	})
}

func findRun(w http.ResponseWriter, outputDir, runID string) (string, bool) {
	runDir, err := report.FindRun(outputDir, runID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return "", false
	}
	return runDir, true
}
