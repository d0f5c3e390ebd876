package leadsdk

import (
	"sync"

	"github.com/aussiebroadwan/leaddash/pkg/jwtx"
)

// Session holds the access token for one application session.
// The token is kept in memory only; expiry is never tracked locally and is
// discovered when the backend answers 401.
type Session struct {
	mu          sync.RWMutex
	accessToken string
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// AccessToken returns the current access token, or "" when none is held.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// SetAccessToken replaces the current access token.
func (s *Session) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
}

// Clear drops the current access token.
func (s *Session) Clear() {
	s.SetAccessToken("")
}

// HasToken reports whether an access token is held.
func (s *Session) HasToken() bool {
	return s.AccessToken() != ""
}

// Claims decodes the held token without verifying its signature.
// The result is for display only and must not be used for authorization.
func (s *Session) Claims() (*jwtx.Claims, error) {
	return jwtx.ParseUnverified(s.AccessToken())
}
