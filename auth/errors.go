package auth

import "errors"

var (
	// ErrPhoneTooShort is returned when fewer than 10 digits were entered.
	ErrPhoneTooShort = errors.New("phone number must have 10 digits")

	// ErrChallengeNotFound is returned when no pending verification exists
	// for the presented challenge, including expired ones.
	ErrChallengeNotFound = errors.New("no pending verification")

	// ErrIncompleteCode is returned when the code is not exactly 6 characters.
	ErrIncompleteCode = errors.New("verification code must have 6 digits")

	// ErrInvalidCode is returned when the code does not match.
	ErrInvalidCode = errors.New("verification code does not match")

	// ErrVerificationInFlight is returned when a second verify arrives while
	// the first is still being checked.
	ErrVerificationInFlight = errors.New("verification already in progress")

	// ErrResendNotReady is returned while the resend countdown is running.
	ErrResendNotReady = errors.New("resend not available yet")

	// ErrInvalidToken covers malformed, expired, or wrongly scoped tokens.
	ErrInvalidToken = errors.New("invalid token")
)
