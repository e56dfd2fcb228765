package httpx

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware applies a token bucket per client. Idle buckets are
// swept lazily while serving, at most once per idleAfter.
type RateLimitMiddleware struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	rate      rate.Limit
	burst     int
	idleAfter time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimitMiddleware(rps float64, burst int) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		clients:   make(map[string]*clientLimiter),
		rate:      rate.Limit(rps),
		burst:     burst,
		idleAfter: 5 * time.Minute,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (rl *RateLimitMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := rl.now()
		reservation := rl.limiterFor(clientKey(r), now).ReserveN(now, 1)
		if delay := reservation.DelayFrom(now); !reservation.OK() || delay > 0 {
			reservation.CancelAt(now)
			w.Header().Set("Retry-After", retryAfter(delay))
			JSONError(w, r, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Too many requests", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimitMiddleware) limiterFor(key string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) > rl.idleAfter {
		for k, c := range rl.clients {
			if now.Sub(c.lastSeen) > rl.idleAfter {
				delete(rl.clients, k)
			}
		}
		rl.lastSweep = now
	}

	c, ok := rl.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter
}

func (rl *RateLimitMiddleware) tracked() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// retryAfter rounds up to whole seconds, minimum 1.
func retryAfter(delay time.Duration) string {
	secs := int(math.Ceil(delay.Seconds()))
	if secs < 1 || delay == rate.InfDuration {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// clientKey prefers the first X-Forwarded-For hop, then the remote host.
func clientKey(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
