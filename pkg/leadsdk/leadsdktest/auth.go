package leadsdktest

import (
	"net/http"
	"sync"

	"github.com/aussiebroadwan/leaddash/pkg/httpx"
)

// Auth endpoint paths served by the fake.
const (
	LoginPath   = "/api/auth/login"
	RefreshPath = "/api/auth/refresh"
	LogoutPath  = "/api/auth/logout"
)

// HandleLogin serves POST /api/auth/login. Any credentials with a non-empty
// password succeed, returning accessToken and setting the session cookie.
// An empty password answers 401 {"message": "Invalid credentials"}.
func (b *Backend) HandleLogin(accessToken string) {
	b.Handle("POST "+LoginPath, func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := decode(r, &creds); err != nil || creds.Password == "" {
			httpx.WriteMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    "session-" + creds.Email,
			Path:     "/api/auth",
			HttpOnly: true,
		})
		httpx.WriteJSON(w, http.StatusOK, map[string]any{
			"accessToken": accessToken,
			"user":        map[string]string{"email": creds.Email},
		})
	})
}

// Refresher serves POST /api/auth/refresh, handing out tokens in order.
// Once the tokens are used up it answers 200 {} (no token).
type Refresher struct {
	mu            sync.Mutex
	tokens        []string
	requireCookie bool
}

// HandleRefresh serves the refresh endpoint with the given tokens.
func (b *Backend) HandleRefresh(tokens ...string) *Refresher {
	rf := &Refresher{tokens: tokens}
	b.Handle("POST "+RefreshPath, rf.serve)
	return rf
}

// RequireCookie makes refresh answer 401 when the session cookie is absent.
func (rf *Refresher) RequireCookie() *Refresher {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	rf.requireCookie = true
	return rf
}

func (rf *Refresher) serve(w http.ResponseWriter, r *http.Request) {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	if rf.requireCookie {
		if _, err := r.Cookie(SessionCookie); err != nil {
			httpx.WriteMessage(w, http.StatusUnauthorized, "No refresh token")
			return
		}
	}

	if len(rf.tokens) == 0 {
		httpx.WriteJSON(w, http.StatusOK, map[string]any{})
		return
	}

	token := rf.tokens[0]
	rf.tokens = rf.tokens[1:]
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"accessToken": token})
}

// HandleLogout serves POST /api/auth/logout with status. A 2xx status
// also expires the session cookie.
func (b *Backend) HandleLogout(status int) {
	b.Handle("POST "+LogoutPath, func(w http.ResponseWriter, r *http.Request) {
		if status >= 200 && status < 300 {
			http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/api/auth", MaxAge: -1})
			httpx.WriteMessage(w, status, "Logged out")
			return
		}
		httpx.WriteMessage(w, status, "Logout failed")
	})
}

// RequireBearer wraps h so it answers 401 unless the request carries one of
// the accepted bearer tokens. accept is consulted on every request.
func RequireBearer(accept func(token string) bool, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := Request{Authorization: r.Header.Get("Authorization")}.Bearer()
		if token == "" || !accept(token) {
			httpx.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		h(w, r)
	}
}

// Tokens is a convenience accept function for RequireBearer.
func Tokens(valid ...string) func(string) bool {
	return func(token string) bool {
		for _, v := range valid {
			if token == v {
				return true
			}
		}
		return false
	}
}
