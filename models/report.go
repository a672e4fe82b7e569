package models

import (
	"time"

	"github.com/lib/pq"
)

// ReportStatus is the lifecycle state of a submitted issue.
type ReportStatus string

const (
	StatusNew          ReportStatus = "new"
	StatusAcknowledged ReportStatus = "acknowledged"
	StatusResolved     ReportStatus = "resolved"
)

// Valid reports whether s is one of the known statuses.
func (s ReportStatus) Valid() bool {
	switch s {
	case StatusNew, StatusAcknowledged, StatusResolved:
		return true
	}
	return false
}

type TimelineEntry struct {
	Status    string     `json:"status"`
	Date      *time.Time `json:"date,omitempty"`
	Completed bool       `json:"completed"`
}

// Report is an issue as shown on the dashboard and in "My Reports".
type Report struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Category    Category        `json:"category"`
	Location    string          `json:"location"`
	Status      ReportStatus    `json:"status"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Photos      []string        `json:"photos,omitempty"`
	Timeline    []TimelineEntry `json:"timeline"`
}

// ReportRecord is the persisted form of a Report.
type ReportRecord struct {
	ID          uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Title       string           `gorm:"not null" json:"title"`
	Category    string           `gorm:"not null;type:varchar(50)" json:"category"`
	Location    string           `gorm:"not null" json:"location"`
	Status      string           `gorm:"not null;default:'new';type:varchar(20)" json:"status"` // new, acknowledged, resolved
	ReportedOn  time.Time        `gorm:"not null" json:"reported_on"`
	Description string           `gorm:"type:text" json:"description"`
	Photos      pq.StringArray   `gorm:"type:text[]" json:"photos"`
	Timeline    []TimelineRecord `gorm:"foreignKey:ReportID" json:"timeline"`
}

func (ReportRecord) TableName() string { return "reports" }

type TimelineRecord struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	ReportID   uint       `gorm:"not null;index" json:"report_id"`
	OrderIndex int        `gorm:"default:0" json:"order_index"`
	Status     string     `gorm:"not null;type:varchar(50)" json:"status"`
	Date       *time.Time `json:"date"`
	Completed  bool       `gorm:"default:false" json:"completed"`
}

func (TimelineRecord) TableName() string { return "report_timeline" }

// ToReport converts the record into its display form. Timeline rows are
// expected to be preloaded.
func (r ReportRecord) ToReport() Report {
	timeline := make([]TimelineEntry, 0, len(r.Timeline))
	for _, t := range r.Timeline {
		timeline = append(timeline, TimelineEntry{Status: t.Status, Date: t.Date, Completed: t.Completed})
	}
	return Report{
		ID:          r.ID,
		Title:       r.Title,
		Category:    Category(r.Category),
		Location:    r.Location,
		Status:      ReportStatus(r.Status),
		Date:        r.ReportedOn,
		Description: r.Description,
		Photos:      []string(r.Photos),
		Timeline:    timeline,
	}
}

// NewReportRecord builds the persisted form of rep.
func NewReportRecord(rep Report) ReportRecord {
	timeline := make([]TimelineRecord, 0, len(rep.Timeline))
	for i, t := range rep.Timeline {
		timeline = append(timeline, TimelineRecord{OrderIndex: i, Status: t.Status, Date: t.Date, Completed: t.Completed})
	}
	return ReportRecord{
		ID:          rep.ID,
		Title:       rep.Title,
		Category:    string(rep.Category),
		Location:    rep.Location,
		Status:      string(rep.Status),
		ReportedOn:  rep.Date,
		Description: rep.Description,
		Photos:      pq.StringArray(rep.Photos),
		Timeline:    timeline,
	}
}
