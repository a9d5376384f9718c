package custom

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestRateLimiter(t *testing.T) {
	// 2 req/sec
	limiter := NewRateLimiter(rate.Every(time.Second), 2)
	handler := limiter.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req, _ := http.NewRequest("POST", "/api/public/forms/demo/submit", nil)
	req.RemoteAddr = "203.0.113.7:41000"

	// Burst of 2 passes
	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Errorf("request %d: expected 200, got %d", i+1, rr.Code)
		}
	}

	// Third request exceeds the burst
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", rr.Code)
	}

	// Same IP, different source port: still throttled (keyed by IP)
	req2, _ := http.NewRequest("POST", "/api/public/forms/demo/submit", nil)
	req2.RemoteAddr = "203.0.113.7:55123"
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req2)
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 for same IP on another port, got %d", rr.Code)
	}

	// A different visitor is unaffected
	req3, _ := http.NewRequest("POST", "/api/public/forms/demo/submit", nil)
	req3.RemoteAddr = "198.51.100.9:41000"
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req3)
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200 for different IP, got %d", rr.Code)
	}
}
