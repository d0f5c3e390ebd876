package leadsdk

import (
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/singleflight"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:4000"

// Backend endpoint paths.
const (
	pathLogin          = "/api/auth/login"
	pathRefresh        = "/api/auth/refresh"
	pathLogout         = "/api/auth/logout"
	pathRegister       = "/api/auth/register"
	pathVerifyEmail    = "/api/auth/verify-email"
	pathForgotPassword = "/api/auth/forgot-password"
	pathForms          = "/api/forms"
	pathLeads          = "/api/leads"
)

// RefreshPath is the cookie-authenticated endpoint that issues a new access
// token. Consumers bootstrapping a session call it through Call.
const RefreshPath = pathRefresh

// SDKClient is a client for the lead-collection backend.
// It owns the Session holding the current access token and a cookie jar
// carrying the backend's session cookie, which the refresh endpoint relies on.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger

	session *Session

	// refreshGroup collapses concurrent refreshes when set.
	refreshGroup *singleflight.Group
}

// Option configures an SDKClient.
type Option func(*SDKClient)

// WithHTTPClient uses hc for all requests. A cookie jar is attached when hc
// has none, since the refresh endpoint is cookie-authenticated.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *SDKClient) {
		if hc == nil {
			return
		}
		cp := *hc
		c.HTTPClient = &cp
	}
}

// WithLogger sets the logger used for refresh and logout diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *SDKClient) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithSession binds the client to an existing session.
func WithSession(s *Session) Option {
	return func(c *SDKClient) {
		if s != nil {
			c.session = s
		}
	}
}

// WithRefreshDedupe makes concurrent refresh attempts share a single request
// to the refresh endpoint. Without it every 401 refreshes independently.
func WithRefreshDedupe() Option {
	return func(c *SDKClient) {
		c.refreshGroup = &singleflight.Group{}
	}
}

// NewSDKClient creates a new client for the backend at baseURL.
func NewSDKClient(baseURL string, opts ...Option) *SDKClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Logger:  slog.Default(),
		session: NewSession(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.HTTPClient.Jar == nil {
		// cookiejar.New never returns an error
		jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		c.HTTPClient.Jar = jar
	}

	return c
}

// Session returns the session whose token is attached to every call.
func (c *SDKClient) Session() *Session {
	return c.session
}

// SubmitURL returns the public submission endpoint for a form, the target
// of embedded forms on external sites.
func (c *SDKClient) SubmitURL(formID string) string {
	return c.url("/api/public/forms/" + url.PathEscape(formID) + "/submit")
}
