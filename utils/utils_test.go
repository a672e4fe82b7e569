package utils

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestSimulate(t *testing.T) {
	t.Parallel()

	t.Run("zero delay returns immediately", func(t *testing.T) {
		t.Parallel()
		if err := Simulate(context.Background(), 0); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("waits for the delay", func(t *testing.T) {
		t.Parallel()
		start := time.Now()
		if err := Simulate(context.Background(), 20*time.Millisecond); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
		if time.Since(start) < 20*time.Millisecond {
			t.Error("returned before the delay elapsed")
		}
	})

	t.Run("cancelled context ends the wait", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := Simulate(ctx, time.Hour); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestGetUser(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if GetUser(c) != nil {
		t.Fatal("expected nil user on a fresh context")
	}

	c.Set(string(UserContextKey), "not claims")
	if GetUser(c) != nil {
		t.Fatal("expected nil user for a foreign value")
	}

	c.Set(string(UserContextKey), &UserClaims{Phone: "9876543210"})
	if u := GetUser(c); u == nil || u.Phone != "9876543210" {
		t.Errorf("unexpected user: %+v", u)
	}
}
