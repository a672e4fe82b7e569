package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cityreport/api-go/auth"
	"github.com/cityreport/api-go/utils"
	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenIssuer("secret", time.Hour, time.Minute)
	session, _, err := tokens.IssueSession("9876543210")
	if err != nil {
		t.Fatal(err)
	}

	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens), func(c *gin.Context) {
		c.String(http.StatusOK, utils.GetUser(c).Phone)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + session, http.StatusUnauthorized},
		{"extra parts", "Bearer a b", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid session", "Bearer " + session, http.StatusOK},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if tt.status == http.StatusOK && w.Body.String() != "9876543210" {
				t.Errorf("user = %q", w.Body.String())
			}
		})
	}
}

func TestChallengeMiddleware(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenIssuer("secret", time.Hour, time.Minute)
	raw, err := tokens.IssueChallenge(auth.Challenge{ID: "c1", Phone: "9876543210"})
	if err != nil {
		t.Fatal(err)
	}

	r := gin.New()
	r.GET("/otp", ChallengeMiddleware(tokens), func(c *gin.Context) {
		claims, ok := GetChallenge(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, claims.ChallengeID)
	})

	req := httptest.NewRequest(http.MethodGet, "/otp", nil)
	req.Header.Set(ChallengeHeader, raw)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "c1" {
		t.Errorf("valid challenge: %d %q", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/otp", nil))
	if w.Code != http.StatusUnauthorized || !strings.Contains(w.Body.String(), `"navigate":"/"`) ||
		!strings.Contains(w.Body.String(), `"state":"awaiting_phone"`) {
		t.Errorf("missing challenge: %d %s", w.Code, w.Body.String())
	}
}

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(RequestLogger(logger))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"level":"INFO"`) || !strings.Contains(lines[0], `"path":"/ok"`) {
		t.Errorf("unexpected first line: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"level":"WARN"`) || !strings.Contains(lines[1], `"status":404`) {
		t.Errorf("unexpected second line: %s", lines[1])
	}
}
