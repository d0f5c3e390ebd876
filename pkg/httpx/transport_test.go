package httpx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/leaddash/pkg/httpx"
	"github.com/aussiebroadwan/leaddash/pkg/idx"
	"github.com/aussiebroadwan/leaddash/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func newEchoServer(t *testing.T, seen *atomic.Value) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.Store(r.Header.Get(slogx.RequestIDHeader))
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"ok": "true"})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return httpx.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(r)
			})
		}
	}

	base := httpx.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		order = append(order, "base")
		return &http.Response{StatusCode: http.StatusNoContent, Body: http.NoBody, Request: r}, nil
	})

	rt := httpx.Chain(base, mark("first"), mark("second"))
	req := httptest.NewRequest(http.MethodGet, "http://backend.test/api/forms", nil)
	_, err := rt.RoundTrip(req)
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second", "base"}, order)
}

func TestRequestID(t *testing.T) {
	var seen atomic.Value
	srv := newEchoServer(t, &seen)
	client := &http.Client{Transport: httpx.Chain(nil, httpx.RequestID())}

	t.Run("generates ulid", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
		require.NoError(t, err)

		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		_, err = idx.Parse(seen.Load().(string))
		require.NoError(t, err)

		// Caller's request is left untouched
		require.Empty(t, req.Header.Get(slogx.RequestIDHeader))
	})

	t.Run("keeps caller id", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
		require.NoError(t, err)
		req.Header.Set(slogx.RequestIDHeader, "caller-id")

		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		require.Equal(t, "caller-id", seen.Load())
	})
}

func TestRateLimitConfig(t *testing.T) {
	require.True(t, httpx.DefaultClientLimit.Enabled())
	require.InDelta(t, 100.0/60.0, float64(httpx.DefaultClientLimit.Limit()), 1e-9)
	require.False(t, httpx.RateLimitConfig{}.Enabled())
}

func TestRateLimitDelaysAfterBurst(t *testing.T) {
	var calls atomic.Int32
	base := httpx.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		calls.Add(1)
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: r}, nil
	})

	// One token per 200ms, burst of one
	rt := httpx.Chain(base, httpx.RateLimit(httpx.RateLimitConfig{
		RequestsPerWindow: 5,
		Window:            time.Second,
		Burst:             1,
	}))

	start := time.Now()
	for range 2 {
		req := httptest.NewRequest(http.MethodGet, "http://backend.test/api/leads", nil)
		_, err := rt.RoundTrip(req)
		require.NoError(t, err)
	}

	require.EqualValues(t, 2, calls.Load())
	require.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

func TestRateLimitHonoursContext(t *testing.T) {
	base := httpx.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: r}, nil
	})
	rt := httpx.Chain(base, httpx.RateLimit(httpx.RateLimitConfig{
		RequestsPerWindow: 1,
		Window:            time.Hour,
		Burst:             1,
	}))

	// Use up the burst
	_, err := rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://backend.test/", nil))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "http://backend.test/", nil).WithContext(ctx)

	_, err = rt.RoundTrip(req)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimitDisabled(t *testing.T) {
	rt := httpx.Chain(httpx.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: r}, nil
	}), httpx.RateLimit(httpx.RateLimitConfig{}))

	start := time.Now()
	for range 50 {
		_, err := rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://backend.test/", nil))
		require.NoError(t, err)
	}
	require.Less(t, time.Since(start), time.Second)
}
