package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  graphgrade <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"graphgrade <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold .graphgrade/config.yml", []string{
		"graphgrade init [--spec <path>] [--profile chatgpt|llava]",
	}, runInit),
	command("validate", "Validate .graphgrade/config.yml and its inputs", []string{
		"graphgrade validate [--spec <path>]",
	}, runValidate),
	command("score", "Grade model answers against the standard set", []string{
		"graphgrade score [--spec <path>] [--workers <n>] [--ui auto|live|plain] [--verbose] [--log <path>]",
		"graphgrade score [--output-dir <dir>] [--db <path>] [--failures] [--no-color]",
	}, runScore),
	command("report", "Show or export a stored run", []string{
		"graphgrade report [--spec <path>] [--input <dir>] [--run <run-id|latest|path>]",
		"graphgrade report [--html <path>] [--failures] [--no-color]",
	}, runReport),
	command("serve", "Serve stored runs over HTTP", []string{
		"graphgrade serve [--spec <path>] [--input <dir>] [--addr <host:port>] [--db <path>]",
	}, runServe),
}
