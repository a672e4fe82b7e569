package reports

import (
	"io"
	"time"

	"github.com/cityreport/api-go/models"
	"github.com/nao1215/markdown"
)

// WriteMarkdown renders reports as a Markdown document: one overview table
// followed by a section per report with its progress timeline.
func WriteMarkdown(w io.Writer, rs []models.Report, now time.Time) error {
	md := markdown.NewMarkdown(w)
	md.H1("My Reports")
	md.PlainText("")

	if len(rs) == 0 {
		md.PlainText("No reports yet. Start by reporting your first city issue.")
		return md.Build()
	}

	rows := make([][]string, 0, len(rs))
	for _, r := range rs {
		rows = append(rows, []string{
			r.Title,
			string(r.Category),
			r.Location,
			StatusLabel(r.Status),
			RelativeTime(r.Date, now),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Title", "Category", "Location", "Status", "Reported"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, r := range rs {
		md.H2(r.Title)
		md.PlainText("")
		md.PlainText(r.Description)
		md.PlainText("")
		md.PlainText("Submitted " + FormatDate(r.Date) + " at " + r.Location)
		md.PlainText("")

		progress := make([]string, 0, len(r.Timeline))
		for _, t := range r.Timeline {
			item := t.Status
			switch {
			case t.Completed && t.Date != nil:
				item = "[x] " + item + " (" + FormatDate(*t.Date) + ")"
			case t.Completed:
				item = "[x] " + item
			default:
				item = "[ ] " + item
			}
			progress = append(progress, item)
		}
		md.BulletList(progress...)
		md.PlainText("")
	}
	return md.Build()
}
