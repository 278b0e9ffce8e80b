package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// prompter asks the init questions on one input stream.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// answer reads one trimmed line. eof reports that input ended after it.
func (p *prompter) answer() (line string, eof bool, err error) {
	raw, err := p.in.ReadString('\n')
	if errors.Is(err, io.EOF) {
		return strings.TrimSpace(raw), true, nil
	}
	if err != nil {
		return "", false, err
	}
	return strings.TrimSpace(raw), false, nil
}

// confirm asks a yes/no question. An empty answer takes the default.
func (p *prompter) confirm(question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(p.out, "%s [%s]: ", question, hint)
		line, eof, err := p.answer()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if eof {
			return false, fmt.Errorf("invalid answer %q to %q", line, question)
		}
		fmt.Fprintln(p.out, "Please answer yes or no.")
	}
}

// choose asks for one of options, case-insensitively. An empty answer takes
// def; anything else outside options is asked again.
func (p *prompter) choose(question string, options []string, def string) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s (%s) [%s]: ", question, strings.Join(options, "|"), def)
		line, eof, err := p.answer()
		if err != nil {
			return "", err
		}
		choice := strings.ToLower(line)
		if choice == "" {
			return def, nil
		}
		if slices.Contains(options, choice) {
			return choice, nil
		}
		if eof {
			return "", fmt.Errorf("unknown %s %q", strings.ToLower(question), line)
		}
		fmt.Fprintf(p.out, "Choose one of: %s.\n", strings.Join(options, ", "))
	}
}
