package reports

import (
	"fmt"
	"math"
	"time"

	"github.com/cityreport/api-go/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DateLayout renders dates as "Jan 15, 2024".
const DateLayout = "Jan 2, 2006"

// RelativeTime describes how long ago date was, in whole days rounded up.
func RelativeTime(date, now time.Time) string {
	diff := now.Sub(date)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24))

	switch {
	case days == 1:
		return "1 day ago"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return ago(ceilDiv(days, 7), "week")
	default:
		return ago(ceilDiv(days, 30), "month")
	}
}

func ago(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// StatusLabel is the badge text for a status, e.g. "Acknowledged".
func StatusLabel(s models.ReportStatus) string {
	return cases.Title(language.English).String(string(s))
}

// Summary is a report as listed on the dashboard and in "My Reports".
type Summary struct {
	ID           uint                `json:"id"`
	Title        string              `json:"title"`
	Category     models.Category     `json:"category"`
	Location     string              `json:"location"`
	Status       models.ReportStatus `json:"status"`
	StatusLabel  string              `json:"statusLabel"`
	RelativeTime string              `json:"relativeTime"`
	Photo        string              `json:"photo,omitempty"`
}

type TimelineStep struct {
	Status    string `json:"status"`
	Date      string `json:"date,omitempty"`
	Completed bool   `json:"completed"`
}

// Detail is the report dialog: the summary plus description and progress.
type Detail struct {
	Summary
	Description string         `json:"description"`
	Submitted   string         `json:"submitted"`
	Photos      []string       `json:"photos"`
	Timeline    []TimelineStep `json:"timeline"`
}

func NewSummary(r models.Report, now time.Time) Summary {
	s := Summary{
		ID:           r.ID,
		Title:        r.Title,
		Category:     r.Category,
		Location:     r.Location,
		Status:       r.Status,
		StatusLabel:  StatusLabel(r.Status),
		RelativeTime: RelativeTime(r.Date, now),
	}
	if len(r.Photos) > 0 {
		s.Photo = r.Photos[0]
	}
	return s
}

func NewSummaries(rs []models.Report, now time.Time) []Summary {
	out := make([]Summary, 0, len(rs))
	for _, r := range rs {
		out = append(out, NewSummary(r, now))
	}
	return out
}

func NewDetail(r models.Report, now time.Time) Detail {
	timeline := make([]TimelineStep, 0, len(r.Timeline))
	for _, t := range r.Timeline {
		step := TimelineStep{Status: t.Status, Completed: t.Completed}
		if t.Date != nil {
			step.Date = FormatDate(*t.Date)
		}
		timeline = append(timeline, step)
	}
	photos := r.Photos
	if photos == nil {
		photos = []string{}
	}
	return Detail{
		Summary:     NewSummary(r, now),
		Description: r.Description,
		Submitted:   FormatDate(r.Date),
		Photos:      photos,
		Timeline:    timeline,
	}
}
