package report

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"graphgrade/internal/runner"
	"graphgrade/internal/score"
)

const pageStyle = `body{font-family:system-ui,sans-serif;margin:2rem;color:#222}
table{border-collapse:collapse;margin:1rem 0}
th,td{border:1px solid #ccc;padding:.3rem .6rem;text-align:left}
th{background:#f3f3f3}
td.num{text-align:right}
tr.excluded td{color:#a33}`

// ReportPage renders a full HTML page for a run.
func ReportPage(results runner.Results) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &htmlWriter{w: w}
		p.raw("<!doctype html>\n<html><head><meta charset=\"utf-8\"><title>graphgrade ")
		p.text(results.RunID)
		p.raw("</title><style>" + pageStyle + "</style></head><body>")
		p.raw("<h1>graphgrade report</h1>")
		if p.err != nil {
			return p.err
		}
		for _, section := range []templ.Component{
			summarySection(results),
			accuracySection("Accuracy by difficulty", results.Accuracy),
			accuracySection("Category totals", results.Totals),
			rateSection(results.EdgeRates),
			outcomeSection(results.Outcomes),
		} {
			if err := section.Render(ctx, w); err != nil {
				return err
			}
		}
		p.raw("</body></html>\n")
		return p.err
	})
}

func summarySection(results runner.Results) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &htmlWriter{w: w}
		summary := results.Summary
		p.raw("<dl>")
		p.term("Run", results.RunID)
		p.term("Profile", results.Profile)
		p.term("Results file", results.Inputs.Results)
		p.term("Standard file", results.Inputs.Standard)
		if repo := results.Repo; repo != nil {
			commit := repo.Commit
			if repo.Dirty {
				commit += " (dirty)"
			}
			if repo.Branch != "" {
				commit += " on " + repo.Branch
			}
			p.term("Commit", commit)
		}
		segments := make([]string, 0, len(results.Segments))
		for _, segment := range results.Segments {
			segments = append(segments, string(segment))
		}
		p.term("Segments", strings.Join(segments, ", "))
		p.term("Records", strconv.Itoa(summary.Records))
		p.term("Counted answers", strconv.Itoa(summary.Counted))
		p.term("Exact accuracy", formatPercent(summary.Accuracy)+"%")
		p.term("Excluded answers", strconv.Itoa(len(results.Failures)))
		p.raw("</dl>")
		return p.err
	})
}

func accuracySection(title string, rows []score.Row) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &htmlWriter{w: w}
		p.raw("<h2>")
		p.text(title)
		p.raw("</h2><table><thead><tr><th>Category</th><th>Difficulty</th><th>Metric</th><th>Correct</th><th>Accuracy %</th></tr></thead><tbody>")
		for _, row := range rows {
			p.raw("<tr>")
			p.cell(string(row.Category), false)
			p.cell(formatDifficulty(row), false)
			p.cell(string(row.Metric), false)
			p.cell(formatTally(row), true)
			p.cell(formatPercent(row.Ratio), true)
			p.raw("</tr>")
		}
		p.raw("</tbody></table>")
		return p.err
	})
}

func rateSection(rows []score.RateRow) templ.Component {
	if len(rows) == 0 {
		return templ.NopComponent
	}
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &htmlWriter{w: w}
		p.raw("<h2>Edge listing rates</h2><table><thead><tr><th>Category</th><th>Difficulty</th><th>Answers</th><th>Correct rate %</th><th>Error rate %</th><th>Half correct %</th></tr></thead><tbody>")
		for _, row := range rows {
			p.raw("<tr>")
			p.cell(string(row.Category), false)
			p.cell(string(row.Difficulty), false)
			p.cell(strconv.Itoa(row.Count), true)
			p.cell(formatPercent(row.CorrectRate), true)
			p.cell(formatPercent(row.ErrorRate), true)
			p.cell(formatPercent(row.HalfRate), true)
			p.raw("</tr>")
		}
		p.raw("</tbody></table>")
		return p.err
	})
}

func outcomeSection(outcomes []score.Outcome) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &htmlWriter{w: w}
		p.raw("<h2>Answers</h2><table><thead><tr><th>#</th><th>Result id</th><th>Record id</th><th>Category</th><th>Difficulty</th><th>Segment</th><th>Outcome</th><th>Detail</th></tr></thead><tbody>")
		for _, outcome := range outcomes {
			if outcome.Kind.Counted() {
				p.raw("<tr>")
			} else {
				p.raw(`<tr class="excluded">`)
			}
			p.cell(strconv.Itoa(outcome.Index), true)
			p.cell(outcome.ID, false)
			p.cell(outcome.RecordID, false)
			p.cell(string(outcome.Category), false)
			p.cell(string(outcome.Difficulty), false)
			p.cell(string(outcome.Segment), false)
			p.cell(string(outcome.Kind), false)
			p.cell(outcomeDetail(outcome), false)
			p.raw("</tr>")
		}
		p.raw("</tbody></table>")
		return p.err
	})
}

func outcomeDetail(outcome score.Outcome) string {
	if outcome.Rates == nil {
		return outcome.Detail
	}
	rates := fmt.Sprintf("correct rate %s%%, error rate %s%%", formatPercent(outcome.Rates.Correct), formatPercent(outcome.Rates.Error))
	if outcome.Detail == "" {
		return rates
	}
	return outcome.Detail + "; " + rates
}

// htmlWriter keeps the first write error so components can emit markup
// without checking every call.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (p *htmlWriter) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *htmlWriter) text(s string) {
	p.raw(templ.EscapeString(s))
}

func (p *htmlWriter) cell(s string, numeric bool) {
	if numeric {
		p.raw(`<td class="num">`)
	} else {
		p.raw("<td>")
	}
	p.text(s)
	p.raw("</td>")
}

func (p *htmlWriter) term(name, value string) {
	p.raw("<dt>")
	p.text(name)
	p.raw("</dt><dd>")
	p.text(value)
	p.raw("</dd>")
}

// RenderReportHTML renders the report page into a string.
func RenderReportHTML(ctx context.Context, results runner.Results) (string, error) {
	var builder strings.Builder
	if err := ReportPage(results).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// BuildReportHTML renders the report page, returning "" on failure.
func BuildReportHTML(results runner.Results) string {
	html, err := RenderReportHTML(context.Background(), results)
	if err != nil {
		return ""
	}
	return html
}

// WriteHTML renders the report page to w. It satisfies
// runner.ReportRenderer.
func WriteHTML(w io.Writer, results runner.Results) error {
	return ReportPage(results).Render(context.Background(), w)
}
