package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"graphgrade/internal/duckdb"
	"graphgrade/internal/report"
	"graphgrade/internal/runner"
	"graphgrade/internal/ui/live"
)

var runAndWrite = runner.RunAndWrite

// startLiveUI is swapped in tests to avoid starting a terminal program.
var startLiveUI = func(stdout io.Writer, noColor bool) liveUI {
	return live.Start(stdout, live.Options{NoColor: noColor})
}

// liveUI is the part of the live controller the score command drives.
type liveUI interface {
	runner.RunObserver
	Close()
	Wait()
}

func runScore(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		specPath := fs.String("spec", "", "Path to config file (default: search for .graphgrade/config.yml)")
		outputDir := fs.String("output-dir", "", "Override output directory")
		workers := fs.Int("workers", 0, "Override the number of scoring workers")
		verbose := fs.Bool("verbose", false, "Log every graded answer")
		logPath := fs.String("log", "", "Also write verbose output to this file")
		noColor := fs.Bool("no-color", false, "Disable colored output")
		uiMode := fs.String("ui", "auto", "Console UI mode: auto|live|plain")
		dbPath := fs.String("db", "", "Save the run to this DuckDB file (default: store.duckdb from config)")
		showFailures := fs.Bool("failures", false, "List answers excluded from accuracy")
		if err := fs.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if *workers < 0 {
			fmt.Fprintln(stderr, "--workers must not be negative")
			return ExitUsage
		}

		decision, err := resolveUIMode(*uiMode, *verbose, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		project, err := loadProject(*specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
			return ExitError
		}

		var logFile *os.File
		if strings.TrimSpace(*logPath) != "" {
			logFile, err = os.Create(*logPath)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to open log file: %v\n", err)
				return ExitError
			}
			defer logFile.Close()
		}

		params := runner.RunParams{
			Root:          project.Root,
			OutputDir:     *outputDir,
			Workers:       *workers,
			Verbose:       *verbose,
			VerboseWriter: stdout,
			NoColor:       *noColor,
			Render:        report.WriteHTML,
		}
		if logFile != nil {
			params.VerboseLog = logFile
		}

		var ui liveUI
		if decision.useLive {
			ui = startLiveUI(stdout, *noColor)
			params.Observer = ui
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		results, paths, err := runAndWrite(ctx, project.Config, params)
		if ui != nil {
			ui.Close()
			ui.Wait()
		}
		if err != nil {
			fmt.Fprintf(stderr, "Run failed: %v\n", err)
			return ExitError
		}

		if err := report.RenderText(stdout, results, report.TextOptions{NoColor: *noColor || !runner.ShouldUseStyling(stdout), Failures: *showFailures}); err != nil {
			fmt.Fprintf(stderr, "Failed to render summary: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "\nRun %s completed\n", results.RunID)
		fmt.Fprintf(stdout, "Results: %s\n", paths.ResultsPath())
		fmt.Fprintf(stdout, "Report: %s\n", paths.ReportPath())

		storePath := strings.TrimSpace(*dbPath)
		if storePath == "" {
			storePath = project.StorePath()
		}
		if storePath != "" {
			if err := saveToStore(ctx, storePath, results); err != nil {
				fmt.Fprintf(stderr, "Failed to save run to %s: %v\n", storePath, err)
				return ExitError
			}
			fmt.Fprintf(stdout, "Saved to %s\n", storePath)
		}
		return ExitOK
	}
}

func saveToStore(ctx context.Context, path string, results runner.Results) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store dir: %w", err)
		}
	}
	db, err := duckdb.Open(ctx, path)
	if err != nil {
		return err
	}
	saveErr := duckdb.SaveRun(ctx, db, results)
	closeErr := db.Close()
	return errors.Join(saveErr, closeErr)
}
