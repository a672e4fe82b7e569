// Package wizard is the four-step report form: photo, details, location,
// review, plus the submitting substate entered from review.
package wizard

import (
	"time"

	"github.com/cityreport/api-go/models"
)

// Wizard is one user's pass through the report form.
type Wizard struct {
	ID         string
	Owner      string
	Step       Step
	Submitting bool
	Draft      Draft
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func New(id, owner string, now time.Time) *Wizard {
	return &Wizard{
		ID:        id,
		Owner:     owner,
		Step:      StepPhoto,
		Draft:     NewDraft(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// State names the current step, or "submitting".
func (w *Wizard) State() string {
	if w.Submitting {
		return "submitting"
	}
	return w.Step.String()
}

// AttachPhoto stores the photo handle and moves on to the details step. Any
// file is accepted. The replaced photo, if any, is returned so its blob can
// be dropped.
func (w *Wizard) AttachPhoto(p Photo) (*Photo, error) {
	if w.Submitting {
		return nil, ErrSubmitting
	}
	if w.Step != StepPhoto {
		return nil, ErrWrongStep
	}

	previous := w.Draft.Photo
	w.Draft.Photo = &p
	if p.Coordinates != nil {
		w.Draft.Location = p.Coordinates.Label()
	} else if previous != nil && previous.Coordinates != nil {
		w.Draft.Location = DefaultLocation
	}
	w.Step = StepDetails
	return previous, nil
}

// UpdateDetails sets category and description. An empty category means
// "not selected yet"; anything else must come from the fixed set.
func (w *Wizard) UpdateDetails(category models.Category, description string) error {
	if w.Submitting {
		return ErrSubmitting
	}
	if w.Step != StepDetails {
		return ErrWrongStep
	}
	if category != "" && !category.Valid() {
		return ErrUnknownCategory
	}
	w.Draft.Category = category
	w.Draft.Description = description
	return nil
}

// UpdateLocation sets the free-text address.
func (w *Wizard) UpdateLocation(address string) error {
	if w.Submitting {
		return ErrSubmitting
	}
	if w.Step != StepLocation {
		return ErrWrongStep
	}
	w.Draft.Address = address
	return nil
}

func (w *Wizard) CanBack() bool {
	return !w.Submitting && w.Step > StepPhoto
}

// CanNext reports whether the Next button is enabled. The photo step
// advances by attaching a photo and the review step by submitting.
func (w *Wizard) CanNext() bool {
	if w.Submitting {
		return false
	}
	switch w.Step {
	case StepDetails:
		return w.Draft.DetailsComplete()
	case StepLocation:
		return true
	}
	return false
}

func (w *Wizard) CanSubmit() bool {
	return !w.Submitting && w.Step == StepReview
}

func (w *Wizard) Next() error {
	if w.Submitting {
		return ErrSubmitting
	}
	switch w.Step {
	case StepDetails:
		if !w.Draft.DetailsComplete() {
			return ErrMissingDetails
		}
		w.Step = StepLocation
	case StepLocation:
		w.Step = StepReview
	default:
		return ErrWrongStep
	}
	return nil
}

func (w *Wizard) Back() error {
	if w.Submitting {
		return ErrSubmitting
	}
	if w.Step <= StepPhoto {
		return ErrBackUnavailable
	}
	w.Step--
	return nil
}

// BeginSubmit enters the submitting substate from the review step.
func (w *Wizard) BeginSubmit() error {
	if w.Submitting {
		return ErrSubmitting
	}
	if w.Step != StepReview {
		return ErrWrongStep
	}
	if !w.Draft.DetailsComplete() {
		return ErrMissingDetails
	}
	w.Submitting = true
	return nil
}

// AbortSubmit returns to the review step. Only used when the request that
// was submitting goes away.
func (w *Wizard) AbortSubmit() {
	w.Submitting = false
}

// View is the JSON shape of the wizard screen.
type View struct {
	ID         string            `json:"id"`
	Step       int               `json:"step"`
	State      string            `json:"state"`
	Title      string            `json:"title"`
	Indicators []Indicator       `json:"indicators"`
	Draft      Draft             `json:"draft"`
	PhotoURL   string            `json:"photoUrl,omitempty"`
	Categories []models.Category `json:"categories"`
	CanBack    bool              `json:"canBack"`
	CanNext    bool              `json:"canNext"`
	CanSubmit  bool              `json:"canSubmit"`
}

func (w *Wizard) View() View {
	return View{
		ID:         w.ID,
		Step:       int(w.Step),
		State:      w.State(),
		Title:      w.Step.Title(),
		Indicators: Indicators(w.Step),
		Draft:      w.Draft,
		Categories: models.Categories(),
		CanBack:    w.CanBack(),
		CanNext:    w.CanNext(),
		CanSubmit:  w.CanSubmit(),
	}
}
