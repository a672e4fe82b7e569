package models

import (
	"testing"
	"time"
)

func TestCategoryValid(t *testing.T) {
	t.Parallel()

	t.Run("every listed category is valid", func(t *testing.T) {
		t.Parallel()
		cats := Categories()
		if len(cats) != 7 {
			t.Fatalf("expected 7 categories, got %d", len(cats))
		}
		for _, c := range cats {
			if !c.Valid() {
				t.Errorf("expected %q to be valid", c)
			}
		}
	})

	t.Run("unknown and empty categories are invalid", func(t *testing.T) {
		t.Parallel()
		for _, c := range []Category{"", "Potholes", "other"} {
			if c.Valid() {
				t.Errorf("expected %q to be invalid", c)
			}
		}
	})
}

func TestReportStatusValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status ReportStatus
		want   bool
	}{
		{StatusNew, true},
		{StatusAcknowledged, true},
		{StatusResolved, true},
		{"pending", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := tt.status.Valid(); got != tt.want {
			t.Errorf("ReportStatus(%q).Valid() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestReportRecordConversion(t *testing.T) {
	t.Parallel()

	submitted := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	rep := Report{
		ID:          7,
		Title:       "Broken streetlight",
		Category:    CategoryStreetLighting,
		Location:    "Main Street & 5th Ave",
		Status:      StatusAcknowledged,
		Date:        submitted,
		Description: "Flickering",
		Photos:      []string{"streetlight.jpg"},
		Timeline: []TimelineEntry{
			{Status: "Submitted", Date: &submitted, Completed: true},
			{Status: "Resolved"},
		},
	}

	rec := NewReportRecord(rep)
	if rec.Timeline[1].OrderIndex != 1 {
		t.Errorf("expected timeline order index 1, got %d", rec.Timeline[1].OrderIndex)
	}

	back := rec.ToReport()
	if back.Title != rep.Title || back.Category != rep.Category || back.Status != rep.Status {
		t.Errorf("round trip changed fields: %+v", back)
	}
	if len(back.Timeline) != 2 || back.Timeline[1].Date != nil || back.Timeline[1].Completed {
		t.Errorf("unexpected timeline after conversion: %+v", back.Timeline)
	}
}
