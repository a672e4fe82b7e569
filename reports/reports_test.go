package reports

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cityreport/api-go/models"
)

func TestRelativeTime(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"under a day rounds up to one", 3 * time.Hour, "1 day ago"},
		{"exactly one day", 24 * time.Hour, "1 day ago"},
		{"a day and a minute", 24*time.Hour + time.Minute, "2 days ago"},
		{"six days", 6 * 24 * time.Hour, "6 days ago"},
		{"seven days is one week", 7 * 24 * time.Hour, "1 week ago"},
		{"eight days rounds up to two weeks", 8 * 24 * time.Hour, "2 weeks ago"},
		{"twenty nine days", 29 * 24 * time.Hour, "5 weeks ago"},
		{"thirty days is one month", 30 * 24 * time.Hour, "1 month ago"},
		{"forty five days", 45 * 24 * time.Hour, "2 months ago"},
		{"future dates count the same", -3 * 24 * time.Hour, "3 days ago"},
		{"same instant", 0, "0 days ago"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RelativeTime(now.Add(-tt.ago), now); got != tt.want {
				t.Errorf("RelativeTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatting(t *testing.T) {
	t.Parallel()

	if got := FormatDate(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)); got != "Jan 5, 2024" {
		t.Errorf("FormatDate() = %q", got)
	}

	labels := map[models.ReportStatus]string{
		models.StatusNew:          "New",
		models.StatusAcknowledged: "Acknowledged",
		models.StatusResolved:     "Resolved",
	}
	for status, want := range labels {
		if got := StatusLabel(status); got != want {
			t.Errorf("StatusLabel(%q) = %q, want %q", status, got, want)
		}
	}
}

func TestMemoryRepository(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewMemoryRepository(SampleReports())

	t.Run("lists the most recent first", func(t *testing.T) {
		t.Parallel()
		all, err := repo.List(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(all) != 3 {
			t.Fatalf("expected 3 reports, got %d", len(all))
		}
		for i := 1; i < len(all); i++ {
			if all[i].Date.After(all[i-1].Date) {
				t.Errorf("report %d is newer than report %d", all[i].ID, all[i-1].ID)
			}
		}
	})

	t.Run("recent keeps the first two", func(t *testing.T) {
		t.Parallel()
		recent, err := Recent(ctx, repo, 2)
		if err != nil {
			t.Fatal(err)
		}
		if len(recent) != 2 || recent[0].ID != 1 || recent[1].ID != 2 {
			t.Errorf("unexpected recent reports: %+v", recent)
		}
	})

	t.Run("get by id", func(t *testing.T) {
		t.Parallel()
		rep, err := repo.Get(ctx, 3)
		if err != nil {
			t.Fatal(err)
		}
		if rep.Title != "Overflowing garbage bin" || len(rep.Timeline) != 3 {
			t.Errorf("unexpected report: %+v", rep)
		}
		if _, err := repo.Get(ctx, 42); !errors.Is(err, ErrReportNotFound) {
			t.Errorf("expected ErrReportNotFound, got %v", err)
		}
	})

	t.Run("empty repository lists nothing", func(t *testing.T) {
		t.Parallel()
		all, err := NewMemoryRepository(nil).List(ctx)
		if err != nil || len(all) != 0 {
			t.Errorf("expected no reports, got %v (%v)", all, err)
		}
	})
}

func TestSampleReportsAreConsistent(t *testing.T) {
	t.Parallel()

	for _, r := range SampleReports() {
		if !r.Category.Valid() {
			t.Errorf("report %d has unknown category %q", r.ID, r.Category)
		}
		if !r.Status.Valid() {
			t.Errorf("report %d has unknown status %q", r.ID, r.Status)
		}
		if len(r.Timeline) == 0 || !r.Timeline[0].Completed {
			t.Errorf("report %d must start with a completed submission", r.ID)
		}
	}
}

func TestNewDetail(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)
	rep, _ := NewMemoryRepository(SampleReports()).Get(context.Background(), 1)
	d := NewDetail(rep, now)

	if d.Submitted != "Jan 15, 2024" || d.StatusLabel != "Acknowledged" || d.RelativeTime != "2 days ago" {
		t.Errorf("unexpected detail header: %+v", d.Summary)
	}
	if d.Photo != "streetlight.jpg" {
		t.Errorf("expected first photo as thumbnail, got %q", d.Photo)
	}
	want := []TimelineStep{
		{Status: "Submitted", Date: "Jan 15, 2024", Completed: true},
		{Status: "Acknowledged", Date: "Jan 16, 2024", Completed: true},
		{Status: "Resolved"},
	}
	for i := range want {
		if d.Timeline[i] != want[i] {
			t.Errorf("timeline[%d] = %+v, want %+v", i, d.Timeline[i], want[i])
		}
	}
}

func TestWriteMarkdown(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)

	t.Run("lists every report with its progress", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := WriteMarkdown(&buf, SampleReports(), now); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		for _, want := range []string{"# My Reports", "Broken streetlight", "Pothole on main road", "[x] Resolved (Jan 8, 2024)", "[ ] Acknowledged"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("empty state", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := WriteMarkdown(&buf, nil, now); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "No reports yet") {
			t.Errorf("expected empty state, got %q", buf.String())
		}
	})
}
