package live

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"graphgrade/internal/score"
)

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatPercent renders a ratio as a percentage, or "n/a" without data.
func formatPercent(part, total int) string {
	if total <= 0 {
		return "n/a"
	}
	return strconv.FormatFloat(float64(part)*100/float64(total), 'f', 1, 64) + "%"
}

// formatDetail truncates outcome details for display.
func formatDetail(text string) string {
	normalized := strings.Join(strings.Fields(text), " ")
	const limit = 60
	if len(normalized) <= limit {
		return normalized
	}
	return normalized[:limit-3] + "..."
}

// kindLabel maps outcome kinds to display labels.
func kindLabel(kind score.Kind) string {
	switch kind {
	case score.KindCategoryMismatch:
		return "category mismatch"
	case score.KindLookupFailed:
		return "lookup failed"
	default:
		return string(kind)
	}
}

// stylizeKind applies kind coloring when enabled.
func stylizeKind(text string, kind score.Kind, noColor bool) string {
	if noColor {
		return text
	}
	return kindStyle(kind).Render(text)
}

// kindStyle selects a style for a given outcome kind.
func kindStyle(kind score.Kind) lipgloss.Style {
	color := lipgloss.Color("244")
	switch kind {
	case score.KindCorrect:
		color = lipgloss.Color("42")
	case score.KindRough:
		color = lipgloss.Color("39")
	case score.KindIncorrect, score.KindCategoryMismatch:
		color = lipgloss.Color("220")
	case score.KindUnparseable:
		color = lipgloss.Color("201")
	case score.KindLookupFailed, score.KindMalformed:
		color = lipgloss.Color("196")
	}
	return lipgloss.NewStyle().Foreground(color)
}
