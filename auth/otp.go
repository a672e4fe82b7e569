package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cityreport/api-go/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ChallengeState is where a phone verification currently stands.
type ChallengeState string

const (
	// StateAwaitingPhone is reported with a 401 when the challenge token is
	// missing or no longer refers to a challenge. The client goes back to login.
	StateAwaitingPhone ChallengeState = "awaiting_phone"
	StateEnteringCode  ChallengeState = "entering_code"
	StateVerifying     ChallengeState = "verifying"
	StateVerified      ChallengeState = "verified"
	StateRejected      ChallengeState = "rejected"
)

// Challenge is one pending phone verification.
type Challenge struct {
	ID         string
	Phone      string
	State      ChallengeState
	Attempts   int
	CreatedAt  time.Time
	LastActive time.Time
	Resend     Countdown

	codeHash []byte
}

type OTPOptions struct {
	// AcceptedCode is the only code that verifies. Resending never changes it.
	AcceptedCode string

	SendDelay      time.Duration
	VerifyDelay    time.Duration
	ResendCooldown time.Duration

	// TTL is how long a challenge may sit idle (no send, resend or verify)
	// before it is swept. Zero keeps challenges until they are verified.
	TTL time.Duration

	// HashCost is the bcrypt cost for the stored code. Zero means bcrypt.DefaultCost.
	HashCost int
}

// OTPService issues and checks one-time codes. Nothing is actually sent;
// the delays stand in for the SMS gateway round trip.
type OTPService struct {
	mu         sync.Mutex
	challenges map[string]*Challenge
	opts       OTPOptions
	now        func() time.Time
}

func NewOTPService(opts OTPOptions) *OTPService {
	if opts.HashCost == 0 {
		opts.HashCost = bcrypt.DefaultCost
	}
	return &OTPService{
		challenges: make(map[string]*Challenge),
		opts:       opts,
		now:        time.Now,
	}
}

// SetClock replaces the time source. Used by tests.
func (s *OTPService) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Send validates the phone number, waits the send delay and opens a
// challenge whose resend countdown starts immediately.
func (s *OTPService) Send(ctx context.Context, rawPhone string) (Challenge, error) {
	phone := NormalizePhone(rawPhone)
	if err := ValidatePhone(phone); err != nil {
		return Challenge{}, err
	}

	if err := utils.Simulate(ctx, s.opts.SendDelay); err != nil {
		return Challenge{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.opts.AcceptedCode), s.opts.HashCost)
	if err != nil {
		return Challenge{}, fmt.Errorf("hash verification code: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	ch := &Challenge{
		ID:        uuid.New().String(),
		Phone:     phone,
		State:     StateEnteringCode,
		CreatedAt:  now,
		LastActive: now,
		Resend:     NewCountdown(now, s.opts.ResendCooldown),
		codeHash:   hash,
	}
	s.challenges[ch.ID] = ch
	return *ch, nil
}

// Get returns a snapshot of the challenge.
func (s *OTPService) Get(id string) (Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, err := s.lookup(id)
	if err != nil {
		return Challenge{}, err
	}
	return *ch, nil
}

// ResendIn reports the seconds left on the challenge's resend countdown.
func (s *OTPService) ResendIn(id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, err := s.lookup(id)
	if err != nil {
		return 0, err
	}
	return ch.Resend.Remaining(s.now()), nil
}

// Verify checks code against the accepted value after the verify delay.
// On success the challenge is consumed and the verified phone returned. On
// mismatch the challenge goes back to entering_code and ErrInvalidCode is
// returned.
func (s *OTPService) Verify(ctx context.Context, id, code string) (string, error) {
	s.mu.Lock()
	ch, err := s.lookup(id)
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	if len(code) != 6 {
		s.mu.Unlock()
		return "", ErrIncompleteCode
	}
	if ch.State == StateVerifying {
		s.mu.Unlock()
		return "", ErrVerificationInFlight
	}
	ch.State = StateVerifying
	ch.LastActive = s.now()
	hash := ch.codeHash
	s.mu.Unlock()

	waitErr := utils.Simulate(ctx, s.opts.VerifyDelay)
	matched := waitErr == nil && bcrypt.CompareHashAndPassword(hash, []byte(code)) == nil

	s.mu.Lock()
	defer s.mu.Unlock()

	ch.LastActive = s.now()
	if waitErr != nil {
		ch.State = StateEnteringCode
		return "", waitErr
	}
	if !matched {
		ch.Attempts++
		ch.State = StateEnteringCode
		return "", ErrInvalidCode
	}

	ch.State = StateVerified
	delete(s.challenges, id)
	return ch.Phone, nil
}

// Resend restarts the countdown once it has reached zero. The accepted code
// stays the same.
func (s *OTPService) Resend(id string) (Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, err := s.lookup(id)
	if err != nil {
		return Challenge{}, err
	}
	now := s.now()
	if !ch.Resend.Expired(now) {
		return Challenge{}, ErrResendNotReady
	}
	ch.Resend = ch.Resend.Restart(now)
	ch.LastActive = now
	return *ch, nil
}

// Watch calls fn with the remaining resend seconds immediately and then on
// every tick, until the countdown reaches zero, fn fails, or ctx is done.
func (s *OTPService) Watch(ctx context.Context, id string, every time.Duration, fn func(remaining int) error) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		remaining, err := s.ResendIn(id)
		if err != nil {
			return err
		}
		if err := fn(remaining); err != nil {
			return err
		}
		if remaining == 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// lookup must be called with s.mu held.
func (s *OTPService) lookup(id string) (*Challenge, error) {
	ch, ok := s.challenges[id]
	if !ok {
		return nil, ErrChallengeNotFound
	}
	if s.idle(ch, s.now()) {
		delete(s.challenges, id)
		return nil, ErrChallengeNotFound
	}
	return ch, nil
}

// idle reports whether ch has gone untouched for longer than the TTL. A
// challenge mid-verify is never idle.
func (s *OTPService) idle(ch *Challenge, now time.Time) bool {
	if s.opts.TTL <= 0 || ch.State == StateVerifying {
		return false
	}
	return now.Sub(ch.LastActive) > s.opts.TTL
}

// sweep drops idle challenges. Must be called with s.mu held.
func (s *OTPService) sweep(now time.Time) {
	if s.opts.TTL <= 0 {
		return
	}
	for id, ch := range s.challenges {
		if s.idle(ch, now) {
			delete(s.challenges, id)
		}
	}
}
