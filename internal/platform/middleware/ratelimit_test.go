package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func postFrom(e *echo.Echo, ip string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/patients", nil)
	req.RemoteAddr = ip + ":1234"
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error { return c.String(http.StatusOK, "ok") }

func TestRateLimit_WithinBurst(t *testing.T) {
	e := echo.New()
	h := RateLimit(RateLimitConfig{RequestsPerSecond: 10, BurstSize: 5})(okHandler)

	for i := 0; i < 5; i++ {
		c, rec := postFrom(e, "10.0.0.1")
		if err := h(c); err != nil {
			t.Fatalf("request %d: unexpected error %v", i+1, err)
		}
		if got := rec.Header().Get("X-RateLimit-Limit"); got != "10" {
			t.Errorf("request %d: expected X-RateLimit-Limit 10, got %q", i+1, got)
		}
	}
}

func TestRateLimit_ExceedsBurst(t *testing.T) {
	e := echo.New()
	store := newRateLimiterStore(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 2})
	now := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return now }
	h := rateLimit(store)(okHandler)

	for i := 0; i < 2; i++ {
		c, _ := postFrom(e, "10.0.0.1")
		if err := h(c); err != nil {
			t.Fatalf("request %d: unexpected error %v", i+1, err)
		}
	}

	c, rec := postFrom(e, "10.0.0.1")
	err := h(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}
	if rec.Header().Get("Retry-After") != "2" {
		t.Errorf("expected Retry-After 2, got %q", rec.Header().Get("Retry-After"))
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Error("expected X-RateLimit-Remaining 0")
	}

	now = now.Add(time.Second)
	c, _ = postFrom(e, "10.0.0.1")
	if err := h(c); err != nil {
		t.Errorf("expected a refilled token after one second, got %v", err)
	}
}

func TestRateLimit_PerClient(t *testing.T) {
	e := echo.New()
	h := RateLimit(RateLimitConfig{RequestsPerSecond: 0, BurstSize: 1})(okHandler)

	c, _ := postFrom(e, "10.0.0.1")
	if err := h(c); err != nil {
		t.Fatal(err)
	}
	c, _ = postFrom(e, "10.0.0.1")
	if err := h(c); err == nil {
		t.Error("expected first client to be limited")
	}
	c, _ = postFrom(e, "10.0.0.2")
	if err := h(c); err != nil {
		t.Errorf("expected second client to have its own bucket, got %v", err)
	}
}

func TestRateLimit_PageViewsPassThrough(t *testing.T) {
	e := echo.New()
	h := RateLimit(RateLimitConfig{RequestsPerSecond: 0, BurstSize: 0})(okHandler)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/patients/p1", nil)
		rec := httptest.NewRecorder()
		if err := h(e.NewContext(req, rec)); err != nil {
			t.Fatalf("GET %d: unexpected error %v", i+1, err)
		}
		if rec.Header().Get("X-RateLimit-Limit") != "" {
			t.Error("expected no rate limit headers on GET")
		}
	}
}

func TestTokenBucket_RetryAfterWithZeroRate(t *testing.T) {
	b := newTokenBucket(0, 0, time.Now())
	if got := b.retryAfter(); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
}

func TestRateLimiterStore_SameBucket(t *testing.T) {
	s := newRateLimiterStore(DefaultRateLimitConfig())
	if s.getBucket("a") != s.getBucket("a") {
		t.Error("expected the same bucket for the same key")
	}
	if s.getBucket("a") == s.getBucket("b") {
		t.Error("expected separate buckets per key")
	}
}
