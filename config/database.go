package config

import (
	"fmt"

	"github.com/cityreport/api-go/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the postgres database and migrates the report tables.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.ReportRecord{}, &models.TimelineRecord{}); err != nil {
		return nil, fmt.Errorf("migrate report tables: %w", err)
	}
	return db, nil
}
