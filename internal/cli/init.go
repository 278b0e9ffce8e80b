package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"graphgrade/internal/config"
	"graphgrade/internal/extract"
)

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		specPath := flags.String("spec", "", "Path to config file (default: .graphgrade/config.yml in the working directory)")
		profileFlag := flags.String("profile", "", "Phrasing profile (chatgpt|llava); prompts when empty")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		profile := strings.ToLower(strings.TrimSpace(*profileFlag))
		if profile != "" && !slices.Contains(extract.ProfileNames(), profile) {
			fmt.Fprintf(stderr, "Init failed: unknown profile %q (expected %s)\n", *profileFlag, strings.Join(extract.ProfileNames(), "|"))
			return ExitError
		}

		in := initInput
		if in == nil {
			in = os.Stdin
		}
		ask := newPrompter(in, stdout)

		var targetSpecPath string
		specPathValue := strings.TrimSpace(*specPath)
		if specPathValue == "" {
			wd, err := os.Getwd()
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			targetSpecPath = config.ConfigPath(wd)
		} else {
			absSpec, err := filepath.Abs(specPathValue)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			targetSpecPath = absSpec
		}
		configDir := filepath.Dir(targetSpecPath)
		projectRoot := config.RootFromConfigPath(targetSpecPath)

		if info, err := os.Stat(configDir); err == nil && !info.IsDir() {
			fmt.Fprintf(stderr, "Init failed: config directory %q is not a directory\n", configDir)
			return ExitError
		}
		if info, err := os.Stat(targetSpecPath); err == nil {
			if info.IsDir() {
				fmt.Fprintf(stderr, "Init failed: spec path %q is a directory\n", targetSpecPath)
				return ExitError
			}
			fmt.Fprintf(stderr, "Init failed: spec file already exists at %q\n", targetSpecPath)
			return ExitError
		} else if !os.IsNotExist(err) {
			fmt.Fprintf(stderr, "Init failed: stat spec file: %v\n", err)
			return ExitError
		}

		confirm, err := ask.confirm(fmt.Sprintf("Initialize graphgrade config in %s?", configDir), true)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		if !confirm {
			fmt.Fprintln(stderr, "Init cancelled.")
			return ExitError
		}

		if profile == "" {
			profile, err = ask.choose("Phrasing profile", extract.ProfileNames(), extract.ProfileChatGPT)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
		}

		storePath := ""
		useStore, err := ask.confirm(fmt.Sprintf("Save runs to a DuckDB store at %s?", config.DefaultStorePath), false)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		if useStore {
			storePath = config.DefaultStorePath
		}

		ignore := false
		if hasVCSMarker(projectRoot) {
			ignore, err = ask.confirm("Add run outputs to .gitignore?", true)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
		}

		if err := config.Scaffold(targetSpecPath, profile, storePath); err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s\n", targetSpecPath)
		if ignore {
			generated := []string{config.DefaultOutputDir}
			if storePath != "" {
				generated = append(generated, storePath)
			}
			added, err := ignoreGeneratedPaths(projectRoot, generated...)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: update .gitignore: %v\n", err)
				return ExitError
			}
			if len(added) > 0 {
				fmt.Fprintf(stdout, "Added %s to %s\n", strings.Join(added, ", "), filepath.Join(projectRoot, ".gitignore"))
			}
		}
		fmt.Fprintln(stdout, "Edit inputs.results and inputs.standard, then run \"graphgrade validate\".")
		return ExitOK
	}
}

// initInput allows tests to override stdin for init prompts.
var initInput io.Reader = os.Stdin

// hasVCSMarker reports whether root holds a .git entry or a .gitignore.
func hasVCSMarker(root string) bool {
	for _, name := range []string{".git", ".gitignore"} {
		if _, err := os.Stat(filepath.Join(root, name)); err == nil {
			return true
		}
	}
	return false
}
