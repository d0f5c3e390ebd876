package httpx

import (
	"net/http"

	"github.com/aussiebroadwan/leaddash/pkg/idx"
	"github.com/aussiebroadwan/leaddash/pkg/slogx"
)

// Middleware wraps an outbound RoundTripper.
type Middleware func(http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Chain wraps base with mws. The first middleware sees the request first.
func Chain(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	for i := len(mws) - 1; i >= 0; i-- {
		base = mws[i](base)
	}
	return base
}

// RequestID tags every outbound request with an X-Request-ID unless the
// caller already set one.
func RequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if r.Header.Get(slogx.RequestIDHeader) != "" {
				return next.RoundTrip(r)
			}

			// RoundTrippers must not modify the caller's request
			r = r.Clone(r.Context())
			r.Header.Set(slogx.RequestIDHeader, idx.New().String())
			return next.RoundTrip(r)
		})
	}
}

// Logging logs each request via slogx.Transport.
func Logging() Middleware {
	return slogx.Transport
}
