package middleware

import (
	"net/http"
	"time"

	"github.com/BradenHooton/gridboard/internal/auth"
	pkghttp "github.com/BradenHooton/gridboard/pkg/http"
	"github.com/go-chi/httprate"
)

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RequestsPerMinute int
}

// DefaultSessionRateLimit is the budget for session sign-in attempts
func DefaultSessionRateLimit() RateLimitConfig {
	return RateLimitConfig{RequestsPerMinute: 10}
}

func limitExceeded(w http.ResponseWriter, r *http.Request) {
	pkghttp.WriteTooManyRequests(w, "Rate limit exceeded")
}

// RateLimitByIP limits requests per client IP
func RateLimitByIP(config RateLimitConfig) func(next http.Handler) http.Handler {
	return httprate.Limit(
		config.RequestsPerMinute,
		time.Minute,
		httprate.WithKeyByRealIP(),
		httprate.WithLimitHandler(limitExceeded),
	)
}

// RateLimitBySession limits per session user, falling back to the client
// IP for anonymous requests. Must run after auth.RequireSession.
func RateLimitBySession(config RateLimitConfig) func(next http.Handler) http.Handler {
	return httprate.Limit(
		config.RequestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			if session := auth.GetSessionFromContext(r); session != nil {
				return "session:" + session.UserID, nil
			}
			return httprate.KeyByRealIP(r)
		}),
		httprate.WithLimitHandler(limitExceeded),
	)
}
