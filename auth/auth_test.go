package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// fakeClock is a settable time source shared with the service under test.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestService(t *testing.T) (*OTPService, *fakeClock) {
	t.Helper()
	return newTestServiceWith(t, func(*OTPOptions) {})
}

func newTestServiceWith(t *testing.T, tweak func(*OTPOptions)) (*OTPService, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)}
	opts := OTPOptions{
		AcceptedCode:   "123456",
		ResendCooldown: 60 * time.Second,
		TTL:            15 * time.Minute,
		HashCost:       bcrypt.MinCost,
	}
	tweak(&opts)
	svc := NewOTPService(opts)
	svc.SetClock(clock.Now)
	return svc, clock
}

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"9876543210", "9876543210"},
		{"98765-43210", "9876543210"},
		{"+91 98765 43210", "9198765432"},
		{"12345", "12345"},
		{"abc", ""},
		{"98765432101234", "9876543210"},
	}
	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	t.Parallel()

	for n := 0; n < PhoneDigits; n++ {
		phone := "9876543210"[:n]
		if err := ValidatePhone(phone); !errors.Is(err, ErrPhoneTooShort) {
			t.Errorf("ValidatePhone(%q) = %v, want ErrPhoneTooShort", phone, err)
		}
	}
	if err := ValidatePhone("9876543210"); err != nil {
		t.Errorf("ValidatePhone(10 digits) = %v", err)
	}
}

func TestDisplayPhone(t *testing.T) {
	t.Parallel()

	if got := DisplayPhone("9876543210"); got != "+91 98765 43210" {
		t.Errorf("DisplayPhone = %q", got)
	}
	if got := DisplayPhone("12345"); got != "+91 12345" {
		t.Errorf("DisplayPhone(short) = %q", got)
	}
}

func TestCountdown(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cd := NewCountdown(start, 60*time.Second)

	t.Run("decreases by one each second from 60 to 0", func(t *testing.T) {
		t.Parallel()
		for s := 0; s <= 60; s++ {
			got := cd.Remaining(start.Add(time.Duration(s) * time.Second))
			if got != 60-s {
				t.Fatalf("after %ds remaining = %d, want %d", s, got, 60-s)
			}
		}
	})

	t.Run("partial seconds do not count", func(t *testing.T) {
		t.Parallel()
		if got := cd.Remaining(start.Add(1999 * time.Millisecond)); got != 59 {
			t.Errorf("remaining = %d, want 59", got)
		}
	})

	t.Run("floors at zero", func(t *testing.T) {
		t.Parallel()
		if got := cd.Remaining(start.Add(10 * time.Minute)); got != 0 {
			t.Errorf("remaining = %d, want 0", got)
		}
		if !cd.Expired(start.Add(60 * time.Second)) {
			t.Error("expected countdown to be expired at 60s")
		}
	})

	t.Run("restart begins a new full countdown", func(t *testing.T) {
		t.Parallel()
		later := start.Add(2 * time.Minute)
		if got := cd.Restart(later).Remaining(later); got != 60 {
			t.Errorf("remaining after restart = %d, want 60", got)
		}
	})
}

func TestOTPServiceSend(t *testing.T) {
	t.Parallel()

	t.Run("short phone numbers are rejected", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		if _, err := svc.Send(context.Background(), "98765"); !errors.Is(err, ErrPhoneTooShort) {
			t.Errorf("expected ErrPhoneTooShort, got %v", err)
		}
	})

	t.Run("a valid phone opens a challenge entering code", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		ch, err := svc.Send(context.Background(), "98765 43210")
		if err != nil {
			t.Fatalf("Send() error = %v", err)
		}
		if ch.Phone != "9876543210" || ch.State != StateEnteringCode {
			t.Errorf("unexpected challenge: %+v", ch)
		}
		if left, _ := svc.ResendIn(ch.ID); left != 60 {
			t.Errorf("expected a fresh 60s countdown, got %d", left)
		}
	})
}

func TestOTPServiceVerify(t *testing.T) {
	t.Parallel()

	t.Run("the accepted code verifies and consumes the challenge", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		ch, _ := svc.Send(context.Background(), "9876543210")

		phone, err := svc.Verify(context.Background(), ch.ID, "123456")
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if phone != "9876543210" {
			t.Errorf("verified phone = %q", phone)
		}
		if _, err := svc.Get(ch.ID); !errors.Is(err, ErrChallengeNotFound) {
			t.Errorf("expected challenge to be consumed, got %v", err)
		}
	})

	t.Run("any other six character code is rejected", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		ch, _ := svc.Send(context.Background(), "9876543210")

		for _, code := range []string{"000000", "123457", "654321", "abcdef", "12345 "} {
			if _, err := svc.Verify(context.Background(), ch.ID, code); !errors.Is(err, ErrInvalidCode) {
				t.Errorf("Verify(%q) = %v, want ErrInvalidCode", code, err)
			}
		}
		got, _ := svc.Get(ch.ID)
		if got.State != StateEnteringCode || got.Attempts != 5 {
			t.Errorf("unexpected challenge after rejections: %+v", got)
		}
	})

	t.Run("codes of the wrong length are incomplete", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		ch, _ := svc.Send(context.Background(), "9876543210")

		for _, code := range []string{"", "12345", "1234567"} {
			if _, err := svc.Verify(context.Background(), ch.ID, code); !errors.Is(err, ErrIncompleteCode) {
				t.Errorf("Verify(%q) = %v, want ErrIncompleteCode", code, err)
			}
		}
	})

	t.Run("unknown challenge", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		if _, err := svc.Verify(context.Background(), "missing", "123456"); !errors.Is(err, ErrChallengeNotFound) {
			t.Errorf("expected ErrChallengeNotFound, got %v", err)
		}
	})

	t.Run("a second verify while one is in flight conflicts", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestServiceWith(t, func(o *OTPOptions) { o.VerifyDelay = 300 * time.Millisecond })
		ch, _ := svc.Send(context.Background(), "9876543210")

		type result struct {
			phone string
			err   error
		}
		first := make(chan result, 1)
		go func() {
			phone, err := svc.Verify(context.Background(), ch.ID, "123456")
			first <- result{phone, err}
		}()

		deadline := time.Now().Add(time.Second)
		for {
			got, err := svc.Get(ch.ID)
			if err == nil && got.State == StateVerifying {
				break
			}
			if time.Now().After(deadline) {
				t.Fatalf("challenge never reached verifying: %+v, %v", got, err)
			}
			time.Sleep(5 * time.Millisecond)
		}

		if _, err := svc.Verify(context.Background(), ch.ID, "123456"); !errors.Is(err, ErrVerificationInFlight) {
			t.Errorf("second Verify() = %v, want ErrVerificationInFlight", err)
		}
		res := <-first
		if res.err != nil || res.phone != "9876543210" {
			t.Errorf("first Verify() = %q, %v", res.phone, res.err)
		}
	})
}

func TestOTPServiceExpiry(t *testing.T) {
	t.Parallel()

	t.Run("a zero ttl never expires the code", func(t *testing.T) {
		t.Parallel()
		svc, clock := newTestServiceWith(t, func(o *OTPOptions) { o.TTL = 0 })
		ch, _ := svc.Send(context.Background(), "9876543210")

		clock.Advance(16 * time.Minute)
		phone, err := svc.Verify(context.Background(), ch.ID, "123456")
		if err != nil || phone != "9876543210" {
			t.Fatalf("Verify() after 16 minutes = %q, %v", phone, err)
		}
	})

	t.Run("a zero ttl keeps challenges through later sends", func(t *testing.T) {
		t.Parallel()
		svc, clock := newTestServiceWith(t, func(o *OTPOptions) { o.TTL = 0 })
		ch, _ := svc.Send(context.Background(), "9876543210")

		clock.Advance(24 * time.Hour)
		if _, err := svc.Send(context.Background(), "9123456789"); err != nil {
			t.Fatal(err)
		}
		if _, err := svc.Get(ch.ID); err != nil {
			t.Errorf("Get() after a later send = %v", err)
		}
	})

	t.Run("activity keeps a challenge past its creation ttl", func(t *testing.T) {
		t.Parallel()
		svc, clock := newTestService(t)
		ch, _ := svc.Send(context.Background(), "9876543210")

		clock.Advance(10 * time.Minute)
		if _, err := svc.Verify(context.Background(), ch.ID, "000000"); !errors.Is(err, ErrInvalidCode) {
			t.Fatalf("expected ErrInvalidCode, got %v", err)
		}
		clock.Advance(10 * time.Minute)
		if _, err := svc.Resend(ch.ID); err != nil {
			t.Fatalf("Resend() 20 minutes in = %v", err)
		}
		clock.Advance(10 * time.Minute)
		if _, err := svc.Verify(context.Background(), ch.ID, "123456"); err != nil {
			t.Errorf("Verify() 30 minutes in = %v", err)
		}
	})

	t.Run("an idle challenge is swept after the ttl", func(t *testing.T) {
		t.Parallel()
		svc, clock := newTestService(t)
		ch, _ := svc.Send(context.Background(), "9876543210")

		clock.Advance(16 * time.Minute)
		if _, err := svc.Verify(context.Background(), ch.ID, "123456"); !errors.Is(err, ErrChallengeNotFound) {
			t.Errorf("expected ErrChallengeNotFound, got %v", err)
		}
	})
}

func TestOTPServiceResend(t *testing.T) {
	t.Parallel()

	svc, clock := newTestService(t)
	ch, _ := svc.Send(context.Background(), "9876543210")

	clock.Advance(59 * time.Second)
	if _, err := svc.Resend(ch.ID); !errors.Is(err, ErrResendNotReady) {
		t.Fatalf("expected ErrResendNotReady at 1s left, got %v", err)
	}

	clock.Advance(time.Second)
	if _, err := svc.Resend(ch.ID); err != nil {
		t.Fatalf("Resend() at 0 error = %v", err)
	}
	if left, _ := svc.ResendIn(ch.ID); left != 60 {
		t.Errorf("expected countdown reset to 60, got %d", left)
	}

	// The accepted code is unchanged by a resend.
	if _, err := svc.Verify(context.Background(), ch.ID, "123456"); err != nil {
		t.Errorf("Verify() after resend error = %v", err)
	}
}

func TestOTPServiceWatch(t *testing.T) {
	t.Parallel()

	t.Run("stops once the countdown reaches zero", func(t *testing.T) {
		t.Parallel()
		svc, clock := newTestService(t)
		ch, _ := svc.Send(context.Background(), "9876543210")

		var seen []int
		err := svc.Watch(context.Background(), ch.ID, time.Millisecond, func(left int) error {
			seen = append(seen, left)
			clock.Advance(20 * time.Second)
			return nil
		})
		if err != nil {
			t.Fatalf("Watch() error = %v", err)
		}
		want := []int{60, 40, 20, 0}
		if len(seen) != len(want) {
			t.Fatalf("seen = %v, want %v", seen, want)
		}
		for i := range want {
			if seen[i] != want[i] {
				t.Fatalf("seen = %v, want %v", seen, want)
			}
		}
	})

	t.Run("cancelled context ends the stream", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		ch, _ := svc.Send(context.Background(), "9876543210")

		ctx, cancel := context.WithCancel(context.Background())
		err := svc.Watch(ctx, ch.ID, time.Hour, func(int) error {
			cancel()
			return nil
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestTokenIssuer(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("test-secret", time.Hour, time.Minute)

	t.Run("challenge token round trip", func(t *testing.T) {
		t.Parallel()
		raw, err := issuer.IssueChallenge(Challenge{ID: "abc", Phone: "9876543210"})
		if err != nil {
			t.Fatal(err)
		}
		claims, err := issuer.ParseChallenge(raw)
		if err != nil {
			t.Fatalf("ParseChallenge() error = %v", err)
		}
		if claims.ChallengeID != "abc" || claims.Phone != "9876543210" {
			t.Errorf("unexpected claims: %+v", claims)
		}
	})

	t.Run("a zero challenge ttl issues tokens without expiry", func(t *testing.T) {
		t.Parallel()
		forever := NewTokenIssuer("test-secret", time.Hour, 0)
		raw, err := forever.IssueChallenge(Challenge{ID: "abc", Phone: "9876543210"})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := forever.ParseChallenge(raw); err != nil {
			t.Fatalf("ParseChallenge() error = %v", err)
		}
		claims := jwt.MapClaims{}
		if _, _, err := new(jwt.Parser).ParseUnverified(raw, claims); err != nil {
			t.Fatal(err)
		}
		if _, ok := claims["exp"]; ok {
			t.Errorf("expected no exp claim, got %v", claims["exp"])
		}
	})

	t.Run("a positive challenge ttl sets expiry", func(t *testing.T) {
		t.Parallel()
		raw, _ := issuer.IssueChallenge(Challenge{ID: "abc", Phone: "9876543210"})
		claims := jwt.MapClaims{}
		if _, _, err := new(jwt.Parser).ParseUnverified(raw, claims); err != nil {
			t.Fatal(err)
		}
		if _, ok := claims["exp"]; !ok {
			t.Error("expected an exp claim")
		}
	})

	t.Run("session token round trip", func(t *testing.T) {
		t.Parallel()
		raw, expires, err := issuer.IssueSession("9876543210")
		if err != nil {
			t.Fatal(err)
		}
		user, err := issuer.ParseSession(raw)
		if err != nil {
			t.Fatalf("ParseSession() error = %v", err)
		}
		if user.Phone != "9876543210" || user.ExpiresAt.Unix() != expires.Unix() {
			t.Errorf("unexpected user: %+v", user)
		}
	})

	t.Run("tokens are not interchangeable", func(t *testing.T) {
		t.Parallel()
		challenge, _ := issuer.IssueChallenge(Challenge{ID: "abc", Phone: "9876543210"})
		if _, err := issuer.ParseSession(challenge); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("challenge token accepted as session: %v", err)
		}
		session, _, _ := issuer.IssueSession("9876543210")
		if _, err := issuer.ParseChallenge(session); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("session token accepted as challenge: %v", err)
		}
	})

	t.Run("tokens signed with another secret are rejected", func(t *testing.T) {
		t.Parallel()
		other := NewTokenIssuer("other-secret", time.Hour, time.Minute)
		raw, _, _ := other.IssueSession("9876543210")
		if _, err := issuer.ParseSession(raw); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		t.Parallel()
		if _, err := issuer.ParseSession("not-a-token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
