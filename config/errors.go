package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrMissingJWTSecret is returned when no token signing secret is configured.
	ErrMissingJWTSecret = errors.New("invalid config: jwt secret must be set")

	// ErrInvalidDemoOTP is returned when the accepted code is not six characters.
	ErrInvalidDemoOTP = errors.New("invalid config: demo otp must be 6 characters")

	// ErrNegativeDelay is returned when one of the simulated delays is negative.
	ErrNegativeDelay = errors.New("invalid config: simulated delays must be non-negative")

	// ErrInvalidResendCooldown is returned when the resend countdown is not positive.
	ErrInvalidResendCooldown = errors.New("invalid config: resend cooldown must be positive")

	// ErrInvalidSessionTTL is returned when session tokens would expire on issue.
	ErrInvalidSessionTTL = errors.New("invalid config: session ttl must be positive")

	// ErrInvalidChallengeTTL is returned when the OTP challenge idle timeout is negative.
	ErrInvalidChallengeTTL = errors.New("invalid config: challenge ttl must be zero or positive")

	// ErrInvalidMaxPhotoBytes is returned when the photo upload cap is not positive.
	ErrInvalidMaxPhotoBytes = errors.New("invalid config: max photo bytes must be positive")

	// ErrInvalidDraftTTL is returned when the draft idle timeout is not positive.
	ErrInvalidDraftTTL = errors.New("invalid config: draft ttl must be positive")

	// ErrIncompleteR2Config is returned when only part of the R2 credentials is set.
	ErrIncompleteR2Config = errors.New("invalid config: r2 storage needs account id, access key, secret key and bucket")
)

// ErrConfigNotFound is returned when an explicitly named configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")
