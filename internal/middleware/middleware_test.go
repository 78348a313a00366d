package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/skyline/config"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})
	return r
}

func TestCORS_Preflight(t *testing.T) {
	r := newEngine(CORS())
	w := httptest.NewRecorder()

	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/ping", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_PassesThrough(t *testing.T) {
	r := newEngine(CORS())
	w := httptest.NewRecorder()

	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID_Generated(t *testing.T) {
	r := newEngine(RequestID())
	w := httptest.NewRecorder()

	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, w.Body.String())
}

func TestRequestID_Propagated(t *testing.T) {
	r := newEngine(RequestID())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")

	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestLatency_Delays(t *testing.T) {
	r := newEngine(Latency(30 * time.Millisecond))
	w := httptest.NewRecorder()

	start := time.Now()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestLatency_CancelledRequest(t *testing.T) {
	r := newEngine(Latency(time.Hour))
	w := httptest.NewRecorder()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil).WithContext(ctx))

	assert.Empty(t, w.Body.String())
}

func TestRateLimit_DisabledWithoutRedis(t *testing.T) {
	r := newEngine(RateLimit(config.RateLimitConfig{Enabled: true, Requests: 1, WindowSeconds: 60}, nil))

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func withFixedClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func TestRateLimit_BlocksOverLimit(t *testing.T) {
	at := time.Unix(1_800_000_030, 0)
	withFixedClock(t, at)

	db, mock := redismock.NewClientMock()
	cfg := config.RateLimitConfig{Enabled: true, Requests: 2, WindowSeconds: 60, Prefix: "rl"}
	r := newEngine(RateLimit(cfg, db))

	key := rateKey("rl", "192.0.2.1", at.Truncate(time.Minute))
	mock.ExpectIncr(key).SetVal(1)
	mock.ExpectExpire(key, time.Minute).SetVal(true)
	mock.ExpectIncr(key).SetVal(2)
	mock.ExpectIncr(key).SetVal(3)

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "192.0.2.1:5555"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		last = w
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "30", last.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"status":"error","message":"Too many requests."}`, last.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimit_FailsOpen(t *testing.T) {
	at := time.Unix(1_800_000_000, 0)
	withFixedClock(t, at)

	db, mock := redismock.NewClientMock()
	cfg := config.RateLimitConfig{Enabled: true, Requests: 1, WindowSeconds: 60, Prefix: "rl"}
	r := newEngine(RateLimit(cfg, db))

	mock.ExpectIncr(rateKey("rl", "192.0.2.9", at.Truncate(time.Minute))).SetErr(errors.New("redis down"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "192.0.2.9:1234"
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
