// Package reports serves the submitted issues shown on the dashboard and
// in "My Reports".
package reports

import (
	"context"
	"errors"
	"time"

	"github.com/cityreport/api-go/models"
)

// ErrReportNotFound is returned for an id no report carries.
var ErrReportNotFound = errors.New("report not found")

// Repository is read-only; reports are never created from the app.
type Repository interface {
	// List returns every report, most recent first.
	List(ctx context.Context) ([]models.Report, error)
	Get(ctx context.Context, id uint) (models.Report, error)
}

// Recent returns the n most recent reports.
func Recent(ctx context.Context, repo Repository, n int) ([]models.Report, error) {
	all, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(year int, month time.Month, d int) *time.Time {
	t := day(year, month, d)
	return &t
}

// SampleReports is the fixed data set the app ships with.
func SampleReports() []models.Report {
	return []models.Report{
		{
			ID:          1,
			Title:       "Broken streetlight",
			Category:    models.CategoryStreetLighting,
			Location:    "Main Street & 5th Ave",
			Status:      models.StatusAcknowledged,
			Date:        day(2024, time.January, 15),
			Description: "The streetlight has been flickering and finally went out completely yesterday evening.",
			Photos:      []string{"streetlight.jpg"},
			Timeline: []models.TimelineEntry{
				{Status: "Submitted", Date: dayPtr(2024, time.January, 15), Completed: true},
				{Status: "Acknowledged", Date: dayPtr(2024, time.January, 16), Completed: true},
				{Status: "Resolved"},
			},
		},
		{
			ID:          2,
			Title:       "Pothole on main road",
			Category:    models.CategoryInfrastructure,
			Location:    "Park Avenue",
			Status:      models.StatusNew,
			Date:        day(2024, time.January, 10),
			Description: "Large pothole causing damage to vehicles and creating safety hazards.",
			Photos:      []string{"pothole.jpg"},
			Timeline: []models.TimelineEntry{
				{Status: "Submitted", Date: dayPtr(2024, time.January, 10), Completed: true},
				{Status: "Acknowledged"},
				{Status: "Resolved"},
			},
		},
		{
			ID:          3,
			Title:       "Overflowing garbage bin",
			Category:    models.CategorySanitation,
			Location:    "City Park Entrance",
			Status:      models.StatusResolved,
			Date:        day(2024, time.January, 5),
			Description: "Garbage bin near park entrance is overflowing and attracting pests.",
			Timeline: []models.TimelineEntry{
				{Status: "Submitted", Date: dayPtr(2024, time.January, 5), Completed: true},
				{Status: "Acknowledged", Date: dayPtr(2024, time.January, 6), Completed: true},
				{Status: "Resolved", Date: dayPtr(2024, time.January, 8), Completed: true},
			},
		},
	}
}
