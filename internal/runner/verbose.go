package runner

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"graphgrade/internal/score"
)

const verbosePrefix = "[verbose]"

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiDim    = "\x1b[2m"
	ansiGray   = "\x1b[90m"
	ansiGreen  = "\x1b[32m"
	ansiRed    = "\x1b[31m"
	ansiBlue   = "\x1b[34m"
	ansiYellow = "\x1b[33m"
)

type verboseStyle int

const (
	styleDefault verboseStyle = iota
	styleTask
	styleMetrics
	styleError
	styleWarn
)

// verboseLogger writes verbose lines to the console when enabled and to the
// log file whenever one is set. The log file is never styled.
type verboseLogger struct {
	enabled bool
	stdout  io.Writer
	log     io.Writer
	noColor bool
}

func (l verboseLogger) printf(style verboseStyle, format string, args ...any) {
	logVerbose(l.enabled, l.stdout, l.noColor, style, format, args...)
	logVerbose(l.log != nil, l.log, true, style, format, args...)
}

func logVerbose(enabled bool, writer io.Writer, noColor bool, style verboseStyle, format string, args ...any) {
	if !enabled || writer == nil {
		return
	}
	palette := paletteFor(writer, noColor)
	line := fmt.Sprintf(format, args...)
	fmt.Fprintf(writer, "%s %s\n", palette.prefix(verbosePrefix), palette.apply(style, line))
}

// logOutcome writes the match log line of one graded answer.
func logOutcome(logger verboseLogger, outcome score.Outcome) {
	style := styleDefault
	switch {
	case !outcome.Kind.Counted():
		style = styleError
	case outcome.Kind == score.KindCorrect:
		style = styleMetrics
	case outcome.Kind == score.KindRough || outcome.Kind == score.KindUnparseable:
		style = styleWarn
	}
	line := fmt.Sprintf("#%d id=%s", outcome.Index, outcome.ID)
	if outcome.RecordID != "" && outcome.RecordID != outcome.ID {
		line += " record=" + outcome.RecordID
	}
	if outcome.Category != "" {
		line += fmt.Sprintf(" %s/%s", outcome.Category, orDash(string(outcome.Difficulty)))
	}
	if outcome.Segment != "" {
		line += " " + string(outcome.Segment)
	}
	line += " -> " + string(outcome.Kind)
	if outcome.Rates != nil {
		line += fmt.Sprintf(" correct_rate=%.2f error_rate=%.2f", outcome.Rates.Correct, outcome.Rates.Error)
	}
	if outcome.Detail != "" {
		line += " (" + outcome.Detail + ")"
	}
	logger.printf(style, "%s", line)
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

type verbosePalette struct {
	enabled bool
}

func paletteFor(writer io.Writer, noColor bool) verbosePalette {
	if noColor {
		return verbosePalette{enabled: false}
	}
	return verbosePalette{enabled: ShouldUseStyling(writer)}
}

// ShouldUseStyling reports whether ANSI styling suits the writer.
func ShouldUseStyling(writer io.Writer) bool {
	if writer == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	return IsTerminal(writer)
}

// IsTerminal reports whether writer is a TTY.
func IsTerminal(writer io.Writer) bool {
	switch w := writer.(type) {
	case *os.File:
		return w != nil && term.IsTerminal(int(w.Fd()))
	case interface{ Fd() uintptr }:
		return term.IsTerminal(int(w.Fd()))
	default:
		return false
	}
}

func (p verbosePalette) prefix(text string) string {
	if !p.enabled {
		return text
	}
	return ansiDim + ansiGray + text + ansiReset
}

func (p verbosePalette) apply(style verboseStyle, text string) string {
	if !p.enabled {
		return text
	}
	switch style {
	case styleTask:
		return ansiBold + ansiBlue + text + ansiReset
	case styleMetrics:
		return ansiBold + ansiGreen + text + ansiReset
	case styleError:
		return ansiBold + ansiRed + text + ansiReset
	case styleWarn:
		return ansiYellow + text + ansiReset
	default:
		return text
	}
}
