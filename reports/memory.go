package reports

import (
	"context"
	"sort"

	"github.com/cityreport/api-go/models"
)

// MemoryRepository serves a fixed slice of reports.
type MemoryRepository struct {
	reports []models.Report
}

// NewMemoryRepository copies reports and orders them most recent first.
func NewMemoryRepository(reports []models.Report) *MemoryRepository {
	sorted := make([]models.Report, len(reports))
	copy(sorted, reports)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return &MemoryRepository{reports: sorted}
}

func (m *MemoryRepository) List(_ context.Context) ([]models.Report, error) {
	out := make([]models.Report, len(m.reports))
	copy(out, m.reports)
	return out, nil
}

func (m *MemoryRepository) Get(_ context.Context, id uint) (models.Report, error) {
	for _, r := range m.reports {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Report{}, ErrReportNotFound
}
