package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"graphgrade/internal/report"
	"graphgrade/internal/runner"
)

var resolveRun = report.ResolveRun

func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		inputDir := fs.String("input", "", "Directory containing runs (default: output_dir from config)")
		specPath := fs.String("spec", "", "Path to config file (default: search for .graphgrade/config.yml)")
		runRef := fs.String("run", report.LatestRun, "Run id, results.json path, or latest")
		htmlPath := fs.String("html", "", "Write an HTML report to this path")
		showFailures := fs.Bool("failures", false, "List answers excluded from accuracy")
		noColor := fs.Bool("no-color", false, "Disable colored output")
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

		outputDir, err := resolveInputDir(*inputDir, *specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to resolve input: %v\n", err)
			return ExitError
		}
		results, runDir, err := resolveRun(outputDir, *runRef)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load run: %v\n", err)
			return ExitError
		}

		opts := report.TextOptions{NoColor: *noColor || !runner.ShouldUseStyling(stdout), Failures: *showFailures}
		if err := report.RenderText(stdout, results, opts); err != nil {
			fmt.Fprintf(stderr, "Failed to render report: %v\n", err)
			return ExitError
		}

		if strings.TrimSpace(*htmlPath) != "" {
			if err := writeHTMLReport(*htmlPath, results); err != nil {
				fmt.Fprintf(stderr, "Failed to write report: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(stdout, "\nReport written to %s\n", *htmlPath)
		} else {
			fmt.Fprintf(stdout, "\nRun directory: %s\n", runDir)
		}
		return ExitOK
	}
}

// resolveInputDir returns the explicit input dir or the configured output
// dir.
func resolveInputDir(inputDir, specPath string) (string, error) {
	if strings.TrimSpace(inputDir) != "" {
		return filepath.Abs(inputDir)
	}
	project, err := loadProject(specPath)
	if err != nil {
		return "", err
	}
	return project.OutputDir(), nil
}

func writeHTMLReport(path string, results runner.Results) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteHTML(file, results); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
