package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookmirror/internal/logging"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORSMiddleware_AllowedOrigin(t *testing.T) {
	handler := CORSMiddleware([]string{"http://localhost:3000"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/books", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
}

func TestCORSMiddleware_DisallowedOrigin(t *testing.T) {
	handler := CORSMiddleware([]string{"http://localhost:3000"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/v1/books", nil)
	req.Header.Set("Origin", "http://evil.com")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddleware_OPTIONSRequest(t *testing.T) {
	handler := CORSMiddleware(nil)(okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/v1/books", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	w := httptest.NewRecorder()
	SecurityHeadersMiddleware(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestReadOnlyMiddleware(t *testing.T) {
	handler := ReadOnlyMiddleware(okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/books", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/books", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), "METHOD_NOT_ALLOWED")
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "fixed-id")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "fixed-id", seen)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "bad id\r\n")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.NotEqual(t, "bad id\r\n", seen)
	assert.Len(t, seen, 36)
}

func TestRecoveryMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	handler := Chain(panicking, RequestIDMiddleware, AccessLogMiddleware(logging.Discard()), RecoveryMiddleware(logging.Discard()))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.Contains(t, w.Body.String(), "request_id")
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimitMiddleware(0.001, 1)
	handler := rl.Middleware(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "RATE_LIMIT_EXCEEDED")

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "10.0.0.2:1234"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, other)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitMiddleware_SweepsIdleClients(t *testing.T) {
	rl := NewRateLimitMiddleware(10, 10)
	start := time.Now()
	rl.now = func() time.Time { return start }
	handler := rl.Middleware(okHandler())

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
	assert.Equal(t, 2, rl.tracked())

	rl.now = func() time.Time { return start.Add(10 * time.Minute) }
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.3:1"
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, 1, rl.tracked())
}

func TestRetryAfter(t *testing.T) {
	assert.Equal(t, "1", retryAfter(0))
	assert.Equal(t, "1", retryAfter(200*time.Millisecond))
	assert.Equal(t, "3", retryAfter(2500*time.Millisecond))
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	assert.Equal(t, "192.0.2.1", clientKey(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", clientKey(req))
}
