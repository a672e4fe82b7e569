package wizard

import "errors"

var (
	// ErrMissingDetails is returned when category or description is empty
	// at a point that requires both.
	ErrMissingDetails = errors.New("category and description are required")

	// ErrUnknownCategory is returned for a category outside the fixed set.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrWrongStep is returned when an action is not offered on the current step.
	ErrWrongStep = errors.New("action not available on this step")

	// ErrBackUnavailable is returned for Back on the photo step.
	ErrBackUnavailable = errors.New("no previous step")

	// ErrSubmitting is returned for any change while the draft is being submitted.
	ErrSubmitting = errors.New("report is being submitted")

	// ErrDraftNotFound is returned for unknown, expired or foreign drafts.
	ErrDraftNotFound = errors.New("draft not found")

	// ErrNoPhoto is returned when an empty upload is attached.
	ErrNoPhoto = errors.New("no photo selected")

	// ErrPhotoTooLarge is returned when an upload exceeds the server's cap.
	ErrPhotoTooLarge = errors.New("photo is too large")
)
