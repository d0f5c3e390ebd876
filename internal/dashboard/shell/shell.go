// Package shell holds the session lifecycle of the dashboard: restoring a
// session when the dashboard starts and ending it on logout.
package shell

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aussiebroadwan/leaddash/pkg/leadsdk"
)

// LoginPath is the entry point an unauthenticated user is sent to.
const LoginPath = "/login"

// Navigator moves the user to another screen, replacing the current one.
type Navigator interface {
	Replace(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Replace(path string) { f(path) }

// Shell guards the authenticated part of the dashboard.
type Shell struct {
	client *leadsdk.SDKClient
	nav    Navigator
	logger *slog.Logger

	mu    sync.Mutex
	ready bool
}

// New creates a shell for client. A nil logger uses the client's logger.
func New(client *leadsdk.SDKClient, nav Navigator, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = client.Logger
	}
	return &Shell{client: client, nav: nav, logger: logger}
}

// Bootstrap makes sure the session holds an access token before any
// protected screen loads. A held token is trusted as is. Otherwise the
// refresh endpoint is asked for one; when that yields nothing the session
// is cleared and the user is sent to LoginPath.
//
// Once Bootstrap has succeeded further calls return true without a request.
func (s *Shell) Bootstrap(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return true
	}

	session := s.client.Session()
	if session.HasToken() {
		s.ready = true
		return true
	}

	resp, err := leadsdk.Call[leadsdk.RefreshResponse](ctx, s.client, leadsdk.RefreshPath, leadsdk.CallOptions{
		Method:      http.MethodPost,
		SkipRefresh: true,
	})
	if err != nil || resp.AccessToken == "" {
		if err != nil {
			s.logger.DebugContext(ctx, "session bootstrap failed", "error", err)
		} else {
			s.logger.DebugContext(ctx, "session bootstrap: no token")
		}
		session.Clear()
		s.nav.Replace(LoginPath)
		return false
	}

	session.SetAccessToken(resp.AccessToken)
	s.ready = true
	s.logger.InfoContext(ctx, "session restored")
	return true
}

// Ready reports whether Bootstrap has succeeded since the last logout.
func (s *Shell) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Logout ends the session. The backend request is best effort; the token
// is cleared and the user is sent to LoginPath regardless of its outcome.
func (s *Shell) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Logout logs its own failures
	_ = s.client.Logout(ctx)

	s.client.Session().Clear()
	s.ready = false
	s.nav.Replace(LoginPath)
}
