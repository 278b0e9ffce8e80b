package live

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// defaultColumns returns the table columns for a standard terminal.
func defaultColumns() []table.Column {
	return columnsForWidth(100)
}

// columnsForWidth sizes the detail column to the terminal width.
func columnsForWidth(width int) []table.Column {
	fixed := []table.Column{
		{Title: "#", Width: 6},
		{Title: "ID", Width: 8},
		{Title: "Category", Width: 22},
		{Title: "Level", Width: 7},
		{Title: "Segment", Width: 9},
		{Title: "Outcome", Width: 18},
	}
	used := 0
	for _, column := range fixed {
		used += column.Width + 2
	}
	return append(fixed, table.Column{Title: "Detail", Width: max(width-used, 10)})
}

// rowsForState converts UI state into table rows, newest first.
func rowsForState(state State, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for i := len(state.Rows) - 1; i >= 0; i-- {
		outcome := state.Rows[i].Outcome
		rows = append(rows, table.Row{
			fmtInt(outcome.Index),
			outcome.ID,
			string(outcome.Category),
			string(outcome.Difficulty),
			string(outcome.Segment),
			stylizeKind(kindLabel(outcome.Kind), outcome.Kind, noColor),
			formatDetail(outcome.Detail),
		})
	}
	return rows
}
