package reportserver

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"graphgrade/internal/report"
)

// IndexPage lists stored runs with their headline accuracy.
func IndexPage(entries []report.RunEntry) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<!doctype html>\n<html lang=\"en\"><head><meta charset=\"utf-8\"><title>graphgrade runs</title></head><body>")
		b.WriteString("<h1>graphgrade runs</h1>")
		if len(entries) == 0 {
			b.WriteString("<p>No runs yet. Run <code>graphgrade score</code> first.</p>")
		} else {
			b.WriteString("<table><thead><tr><th>Run</th><th>Profile</th><th>Records</th><th>Counted</th><th>Accuracy</th><th></th></tr></thead><tbody>")
			for _, entry := range entries {
				summary := entry.Results.Summary
				link := "/runs/" + url.PathEscape(entry.ID)
				fmt.Fprintf(&b, `<tr><td><a href="%s">%s</a></td><td>%s</td><td>%d</td><td>%d</td><td>%.2f%%</td><td><a href="%s/results.json">json</a></td></tr>`,
					templ.EscapeString(link), templ.EscapeString(entry.ID), templ.EscapeString(entry.Results.Profile),
					summary.Records, summary.Counted, summary.Accuracy*100, templ.EscapeString(link))
			}
			b.WriteString("</tbody></table>")
		}
		b.WriteString("</body></html>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
}
