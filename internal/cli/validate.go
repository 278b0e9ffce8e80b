package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// runValidate loads the config with every check the score command applies
// and prints what a run would grade.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		specPath := flags.String("spec", "", "Path to config file (default: search for .graphgrade/config.yml)")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		project, err := loadProject(*specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}

		cfg := project.Config
		fmt.Fprintf(stdout, "Config OK: %s\n", project.ConfigPath)
		fmt.Fprintf(stdout, "  profile:  %s (%s)\n", cfg.Profile, strings.Join(cfg.Segments, ", "))
		fmt.Fprintf(stdout, "  results:  %s\n", project.ResultsPath())
		fmt.Fprintf(stdout, "  standard: %s\n", project.StandardPath())
		fmt.Fprintf(stdout, "  locator:  %s\n", cfg.Locator.Type)
		if store := project.StorePath(); store != "" {
			fmt.Fprintf(stdout, "  store:    %s\n", store)
		}
		return ExitOK
	}
}
