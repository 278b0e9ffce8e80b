package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"graphgrade/internal/runner"
	"graphgrade/internal/score"
)

// TextOptions controls terminal rendering.
type TextOptions struct {
	NoColor bool
	// Failures lists the excluded outcomes below the tables.
	Failures bool
}

// RenderText writes the accuracy tables of a run.
func RenderText(w io.Writer, results runner.Results, opts TextOptions) error {
	styles := newTextStyles(opts.NoColor)
	summary := results.Summary
	header := fmt.Sprintf("Run %s | profile %s | %d records | %d counted | accuracy %s%%",
		results.RunID, results.Profile, summary.Records, summary.Counted, formatPercent(summary.Accuracy))
	if _, err := fmt.Fprintln(w, styles.title.Render(header)); err != nil {
		return err
	}

	sections := []struct {
		title string
		table *table.Table
	}{
		{"Accuracy by difficulty", accuracyTable(results.Accuracy, styles)},
		{"Category totals", accuracyTable(results.Totals, styles)},
	}
	if len(results.EdgeRates) > 0 {
		sections = append(sections, struct {
			title string
			table *table.Table
		}{"Edge listing rates", rateTable(results.EdgeRates, styles)})
	}
	for _, section := range sections {
		if _, err := fmt.Fprintf(w, "\n%s\n%s\n", styles.section.Render(section.title), section.table.Render()); err != nil {
			return err
		}
	}

	if opts.Failures && len(results.Failures) > 0 {
		if _, err := fmt.Fprintf(w, "\n%s\n", styles.section.Render("Excluded answers")); err != nil {
			return err
		}
		for _, failure := range results.Failures {
			line := fmt.Sprintf("#%d id=%s %s %s", failure.Index, failure.ID, failure.Segment, failure.Kind)
			if failure.Detail != "" {
				line += ": " + failure.Detail
			}
			if _, err := fmt.Fprintln(w, styles.failure.Render(line)); err != nil {
				return err
			}
		}
	}
	return nil
}

type textStyles struct {
	title   lipgloss.Style
	section lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	failure lipgloss.Style
}

func newTextStyles(noColor bool) textStyles {
	if noColor {
		plain := lipgloss.NewStyle()
		return textStyles{
			title:   plain,
			section: plain,
			header:  plain,
			cell:    plain.Padding(0, 1),
			failure: plain,
		}
	}
	return textStyles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		section: lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).Padding(0, 1),
		cell:    lipgloss.NewStyle().Padding(0, 1),
		failure: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}

func (s textStyles) styleFunc(row, _ int) lipgloss.Style {
	if row == table.HeaderRow {
		return s.header.Padding(0, 1)
	}
	return s.cell
}

func accuracyTable(rows []score.Row, styles textStyles) *table.Table {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Category", "Difficulty", "Metric", "Correct", "Accuracy %").
		StyleFunc(styles.styleFunc)
	for _, row := range rows {
		t.Row(string(row.Category), formatDifficulty(row), string(row.Metric), formatTally(row), formatPercent(row.Ratio))
	}
	return t
}

func rateTable(rows []score.RateRow, styles textStyles) *table.Table {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Category", "Difficulty", "Answers", "Correct rate %", "Error rate %", "Half correct %").
		StyleFunc(styles.styleFunc)
	for _, row := range rows {
		t.Row(string(row.Category), string(row.Difficulty), strconv.Itoa(row.Count),
			formatPercent(row.CorrectRate), formatPercent(row.ErrorRate), formatPercent(row.HalfRate))
	}
	return t
}
