package http

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"loan-calculator/metrics"
)

// RateLimitMiddleware rejects clients that spent their allowance. It keys on
// RemoteAddr, which chi's RealIP middleware rewrites from proxy headers.
func RateLimitMiddleware(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if ok, wait := limiter.Reserve(ip); !ok {
				metrics.RateLimited.Inc()
				w.Header().Set("Retry-After", retryAfterSeconds(wait))
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// retryAfterSeconds rounds up so clients never retry too early.
func retryAfterSeconds(wait time.Duration) string {
	return strconv.Itoa(int(math.Ceil(wait.Seconds())))
}
