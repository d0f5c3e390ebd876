package httpx

import (
	"fmt"
	"net/http"
	"time"

	"github.com/aussiebroadwan/leaddash/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines the outbound rate limiting parameters.
type RateLimitConfig struct {
	// RequestsPerWindow is the number of requests allowed in the time window.
	// Zero disables limiting.
	RequestsPerWindow int `env:"REQUESTS" envDefault:"100"`
	// Window is the time window for rate limiting
	Window time.Duration `env:"WINDOW" envDefault:"1m"`
	// Burst allows for temporary bursts above the rate limit
	Burst int `env:"BURST" envDefault:"20"`
}

// DefaultClientLimit keeps a single dashboard well below the backend's own
// per-user limits.
var DefaultClientLimit = RateLimitConfig{
	RequestsPerWindow: 100,
	Window:            time.Minute,
	Burst:             20,
}

// Enabled reports whether the config limits anything.
func (c RateLimitConfig) Enabled() bool {
	return c.RequestsPerWindow > 0 && c.Window > 0
}

// Limit returns the per-second rate for the config.
func (c RateLimitConfig) Limit() rate.Limit {
	if !c.Enabled() {
		return rate.Inf
	}
	return rate.Limit(float64(c.RequestsPerWindow) / c.Window.Seconds())
}

// RateLimit delays outbound requests so they stay within config. Requests
// wait for a token until their context is done.
func RateLimit(config RateLimitConfig) Middleware {
	burst := max(config.Burst, 1)
	limiter := rate.NewLimiter(config.Limit(), burst)

	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			ctx := r.Context()

			if reservation := limiter.Reserve(); reservation.OK() {
				delay := reservation.Delay()
				if delay > 0 {
					slogx.FromContext(ctx).Debug("rate limit: delaying request",
						"path", r.URL.Path,
						"delay_ms", delay.Milliseconds(),
					)
				}

				timer := time.NewTimer(delay)
				defer timer.Stop()

				select {
				case <-timer.C:
				case <-ctx.Done():
					reservation.Cancel()
					return nil, fmt.Errorf("rate limit wait: %w", ctx.Err())
				}
			}

			return next.RoundTrip(r)
		})
	}
}
