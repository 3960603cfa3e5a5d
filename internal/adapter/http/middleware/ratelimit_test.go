package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nexus-marketplace/catalog-service/internal/platform/logger"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func request(remote string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
	req.RemoteAddr = remote
	return req
}

func TestRateLimiter_AllowsBurstThenRejects(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 0.5, Burst: 3, CleanupInterval: time.Minute}, logger.NewNop())
	defer rl.Stop()
	h := rl.Middleware(okHandler())

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, request("10.0.0.1:5000"))
		assert.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, request("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "too many requests")
}

func TestRateLimiter_ClientsAreIndependent(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 0.1, Burst: 1}, logger.NewNop())
	defer rl.Stop()
	h := rl.Middleware(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, request("10.0.0.1:1"))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, request("10.0.0.2:1"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, rl.ClientCount())
}

func TestRateLimiter_CleanupDropsIdleClients(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 1, Burst: 1, CleanupInterval: time.Minute}, logger.NewNop())
	defer rl.Stop()

	rl.limiterFor("idle")
	rl.cleanup(time.Now().Add(3 * time.Minute))
	assert.Zero(t, rl.ClientCount())

	rl.limiterFor("fresh")
	rl.cleanup(time.Now())
	assert.Equal(t, 1, rl.ClientCount())
}

func TestRateLimiter_ZeroBurstIsClamped(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 1, Burst: 0}, logger.NewNop())
	defer rl.Stop()
	rl.Stop()

	w := httptest.NewRecorder()
	rl.Middleware(okHandler()).ServeHTTP(w, request("10.0.0.9:1"))
	assert.Equal(t, http.StatusOK, w.Code)
}
