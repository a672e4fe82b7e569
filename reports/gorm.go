package reports

import (
	"context"
	"errors"
	"fmt"

	"github.com/cityreport/api-go/models"
	"gorm.io/gorm"
)

// GormRepository reads reports from postgres.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func orderedTimeline(db *gorm.DB) *gorm.DB {
	return db.Order("order_index ASC")
}

func (r *GormRepository) List(ctx context.Context) ([]models.Report, error) {
	var records []models.ReportRecord
	if err := r.db.WithContext(ctx).
		Preload("Timeline", orderedTimeline).
		Order("reported_on DESC, id ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	out := make([]models.Report, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.ToReport())
	}
	return out, nil
}

func (r *GormRepository) Get(ctx context.Context, id uint) (models.Report, error) {
	var rec models.ReportRecord
	err := r.db.WithContext(ctx).
		Preload("Timeline", orderedTimeline).
		First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Report{}, ErrReportNotFound
	}
	if err != nil {
		return models.Report{}, fmt.Errorf("get report %d: %w", id, err)
	}
	return rec.ToReport(), nil
}

// Seed inserts reports when the table is empty and reports how many were written.
func (r *GormRepository) Seed(ctx context.Context, reports []models.Report) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ReportRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, rep := range reports {
			rec := models.NewReportRecord(rep)
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("seed reports: %w", err)
	}
	return len(reports), nil
}
