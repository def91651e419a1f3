package middleware

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/indyteo/WebServerAPI/config"
	"github.com/indyteo/WebServerAPI/routing"
)

// RateLimitFromConfig builds a rate-limit handler from the server
// configuration.
func RateLimitFromConfig(cfg config.RateLimitConfig) routing.IntermediateHandler {
	if cfg.PerClient {
		return RateLimitPerClient(cfg.RequestsPerSecond, cfg.Burst)
	}
	return RateLimit(cfg.RequestsPerSecond, cfg.Burst)
}

// RateLimit returns an intermediate handler that limits requests to rps
// per second with the given burst, shared by all clients. When the limit
// is exhausted the request is answered with 429 and the pipeline stops.
func RateLimit(rps float64, burst int) routing.IntermediateHandler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(w http.ResponseWriter, r *http.Request) (bool, error) {
		if !limiter.Allow() {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return false, nil
		}
		return true, nil
	}
}

// RateLimitPerClient returns an intermediate handler that applies an
// independent limiter per client IP. Limiters are created lazily and
// kept for the lifetime of the handler.
func RateLimitPerClient(rps float64, burst int) routing.IntermediateHandler {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[key]
		if !ok {
			l = rate.NewLimiter(rate.Limit(rps), burst)
			limiters[key] = l
		}
		return l
	}

	return func(w http.ResponseWriter, r *http.Request) (bool, error) {
		if !limiterFor(clientIP(r)).Allow() {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return false, nil
		}
		return true, nil
	}
}

// clientIP extracts the client address, without the port when present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
