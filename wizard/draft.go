package wizard

import "github.com/cityreport/api-go/models"

// Defaults prefilled on the location step.
const (
	DefaultLocation = "Current Location"
	DefaultAddress  = "123 Main Street, City"
)

// Photo is the opaque handle to an uploaded image. Content is never inspected
// beyond reading an optional GPS position.
type Photo struct {
	Key         string       `json:"key"`
	FileName    string       `json:"fileName"`
	ContentType string       `json:"contentType"`
	Size        int          `json:"size"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Draft is the in-progress report. It is never turned into a Report.
type Draft struct {
	Photo       *Photo          `json:"photo"`
	Category    models.Category `json:"category"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	Address     string          `json:"address"`
}

func NewDraft() Draft {
	return Draft{
		Location: DefaultLocation,
		Address:  DefaultAddress,
	}
}

// DetailsComplete is the guard for leaving the details step and for submitting.
func (d Draft) DetailsComplete() bool {
	return d.Category.Valid() && d.Description != ""
}
