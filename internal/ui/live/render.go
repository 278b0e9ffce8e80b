package live

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the run header line.
func renderHeader(state State, now time.Time, noColor bool) string {
	elapsed := ""
	if !state.StartedAt.IsZero() {
		elapsed = now.Sub(state.StartedAt).Round(100 * time.Millisecond).String()
	}
	line := "Run " + state.RunID
	if state.Records > 0 {
		line += " | Records: " + fmtInt(len(state.Seen)) + "/" + fmtInt(state.Records)
	}
	if elapsed != "" {
		line += " | Elapsed: " + elapsed
	}
	if state.Finished {
		line += " | done"
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderSummary renders the outcome counts line.
func renderSummary(state State, noColor bool) string {
	counts := state.Counts
	line := "Correct: " + fmtInt(counts.Correct) +
		" Rough: " + fmtInt(counts.Rough) +
		" Incorrect: " + fmtInt(counts.Incorrect) +
		" Unparseable: " + fmtInt(counts.Unparseable) +
		" Mismatch: " + fmtInt(counts.Mismatch) +
		" Excluded: " + fmtInt(counts.Excluded) +
		" Accuracy: " + formatPercent(counts.Correct, counts.Counted())
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderFooter renders the last event line.
func renderFooter(state State, noColor bool) string {
	if state.LastEvent == "" {
		return ""
	}
	return stylize("Last: "+state.LastEvent, noColor, lipgloss.Color("244"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
