package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"graphgrade/internal/reportserver"
)

var serveReports = reportserver.Serve

func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		specPath := fs.String("spec", "", "Path to config file (default: search for .graphgrade/config.yml)")
		inputDir := fs.String("input", "", "Directory containing runs (default: output_dir from config)")
		addr := fs.String("addr", "127.0.0.1:8080", "Listen address")
		dbPath := fs.String("db", "", "DuckDB store to offer for download (default: store.duckdb from config)")
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
		store := strings.TrimSpace(*dbPath)
		if store == "" && strings.TrimSpace(*inputDir) == "" {
			if project, err := loadProject(*specPath); err == nil {
				store = project.StorePath()
			}
		}
		if store != "" {
			if _, err := os.Stat(store); err != nil {
				fmt.Fprintf(stderr, "DuckDB store not available: %v\n", err)
				return ExitError
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = serveReports(ctx, reportserver.Config{
			Addr:      *addr,
			OutputDir: outputDir,
			DBPath:    store,
			Ready: func(bound string) {
				fmt.Fprintf(stdout, "Serving runs from %s at http://%s/\n", outputDir, bound)
			},
		})
		if err != nil {
			fmt.Fprintf(stderr, "Serve failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
