// Package leadsdktest provides an in-process fake of the lead-collection
// backend for tests. It records every request it receives and ships the
// auth endpoints (login, refresh, logout) with cookie-backed sessions.
package leadsdktest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aussiebroadwan/leaddash/pkg/httpx"
)

// SessionCookie is the cookie the fake login sets and the fake refresh
// requires.
const SessionCookie = "refreshToken"

// Request is a recorded request.
type Request struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	ContentType   string
	Header        http.Header
	Body          []byte
	Cookies       []*http.Cookie
}

// Bearer returns the bearer token carried by the request, or "".
func (r Request) Bearer() string {
	token, ok := strings.CutPrefix(r.Authorization, "Bearer ")
	if !ok {
		return ""
	}
	return token
}

// HasCookie reports whether the request carried the named cookie.
func (r Request) HasCookie(name string) bool {
	for _, c := range r.Cookies {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Backend is a fake backend served over httptest.
type Backend struct {
	srv *httptest.Server
	mux *http.ServeMux

	mu       sync.Mutex
	requests []Request
}

// NewBackend starts a fake backend that is closed when the test ends.
// Unregistered routes answer with the mux's plain-text 404.
func NewBackend(t testing.TB) *Backend {
	t.Helper()

	b := &Backend{mux: http.NewServeMux()}
	b.srv = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.srv.Close)
	return b
}

// URL returns the base URL of the backend.
func (b *Backend) URL() string {
	return b.srv.URL
}

// Client returns an HTTP client for the backend without a cookie jar.
func (b *Backend) Client() *http.Client {
	return b.srv.Client()
}

// Handle registers h for a method-qualified ServeMux pattern such as
// "GET /api/forms" or "PUT /api/leads/{id}/status".
func (b *Backend) Handle(pattern string, h http.HandlerFunc) {
	b.mux.HandleFunc(pattern, h)
}

// JSON registers a handler that always answers with status and v.
func (b *Backend) JSON(pattern string, status int, v any) {
	b.Handle(pattern, func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, status, v)
	})
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))

	b.mu.Lock()
	b.requests = append(b.requests, Request{
		Method:        r.Method,
		Path:          r.URL.Path,
		RawQuery:      r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
		Header:        r.Header.Clone(),
		Body:          body,
		Cookies:       r.Cookies(),
	})
	b.mu.Unlock()

	b.mux.ServeHTTP(w, r)
}

// Requests returns a copy of every recorded request in arrival order.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Request, len(b.requests))
	copy(out, b.requests)
	return out
}

// RequestsTo returns the recorded requests for method and path.
func (b *Backend) RequestsTo(method, path string) []Request {
	var out []Request
	for _, r := range b.Requests() {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// Count returns how many requests were made to method and path.
func (b *Backend) Count(method, path string) int {
	return len(b.RequestsTo(method, path))
}
