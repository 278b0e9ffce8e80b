package report

import (
	"fmt"

	"graphgrade/internal/score"
)

// formatPercent returns a percentage string for report output.
func formatPercent(rate float64) string {
	return fmt.Sprintf("%.2f", rate*100)
}

func formatTally(row score.Row) string {
	return fmt.Sprintf("%d/%d", row.Correct, row.Total)
}

func formatDifficulty(row score.Row) string {
	if row.Difficulty == "" {
		return "all"
	}
	return string(row.Difficulty)
}
