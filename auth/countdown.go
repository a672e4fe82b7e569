package auth

import "time"

// Countdown is the resend timer on the OTP screen. It is derived from its
// start time, so it needs no goroutine of its own.
type Countdown struct {
	Start  time.Time
	Length time.Duration
}

func NewCountdown(start time.Time, length time.Duration) Countdown {
	return Countdown{Start: start, Length: length}
}

// Remaining returns whole seconds left at now. It drops by exactly one per
// elapsed second and stops at zero.
func (c Countdown) Remaining(now time.Time) int {
	elapsed := now.Sub(c.Start)
	if elapsed < 0 {
		elapsed = 0
	}
	left := int(c.Length/time.Second) - int(elapsed/time.Second)
	if left < 0 {
		return 0
	}
	return left
}

func (c Countdown) Expired(now time.Time) bool {
	return c.Remaining(now) == 0
}

// Restart returns a countdown of the same length starting at now.
func (c Countdown) Restart(now time.Time) Countdown {
	return Countdown{Start: now, Length: c.Length}
}
