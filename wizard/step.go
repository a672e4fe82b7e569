package wizard

// Step is the position in the four-step report form.
type Step int

const (
	StepPhoto Step = iota + 1
	StepDetails
	StepLocation
	StepReview
)

// FirstStep and LastStep bound every value a Wizard's step can take.
const (
	FirstStep = StepPhoto
	LastStep  = StepReview
)

func (s Step) String() string {
	switch s {
	case StepPhoto:
		return "photo"
	case StepDetails:
		return "details"
	case StepLocation:
		return "location"
	case StepReview:
		return "review"
	}
	return "unknown"
}

// Title is the card heading shown for the step.
func (s Step) Title() string {
	switch s {
	case StepPhoto:
		return "Add Photo"
	case StepDetails:
		return "Describe the Issue"
	case StepLocation:
		return "Confirm Location"
	case StepReview:
		return "Review & Submit"
	}
	return ""
}

// Indicator is one dot of the progress bar above the form.
type Indicator struct {
	Step      int  `json:"step"`
	Active    bool `json:"active"`
	Completed bool `json:"completed"`
}

// Indicators renders the progress bar for current. Steps up to and including
// current are active; steps before it are completed.
func Indicators(current Step) []Indicator {
	out := make([]Indicator, 0, int(LastStep))
	for s := FirstStep; s <= LastStep; s++ {
		out = append(out, Indicator{
			Step:      int(s),
			Active:    current >= s,
			Completed: current > s,
		})
	}
	return out
}
