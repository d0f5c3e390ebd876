package leadsdk

import (
	"context"
	"errors"
	"net/http"
)

// RefreshResponse is the body of POST /api/auth/refresh. AccessToken is
// empty when the session cookie is missing or no longer valid.
type RefreshResponse struct {
	AccessToken string `json:"accessToken,omitempty"`
}

// Refresh exchanges the backend session cookie for a new access token and
// stores it in the session. It reports whether a token was obtained.
//
// A non-2xx response or a body without a token yields false with no error.
// Transport and decoding failures yield false with the error.
func (c *SDKClient) Refresh(ctx context.Context) (bool, error) {
	if c.refreshGroup == nil {
		return c.refresh(ctx)
	}

	v, err, shared := c.refreshGroup.Do("refresh", func() (any, error) {
		return c.refresh(ctx)
	})
	if shared {
		c.Logger.DebugContext(ctx, "token refresh shared with concurrent caller")
	}
	ok, _ := v.(bool)
	return ok, err
}

func (c *SDKClient) refresh(ctx context.Context) (bool, error) {
	var out RefreshResponse
	err := c.Do(ctx, pathRefresh, CallOptions{Method: http.MethodPost, SkipRefresh: true}, &out)
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			c.Logger.DebugContext(ctx, "refresh rejected", "error", err)
			return false, nil
		}
		return false, err
	}

	if out.AccessToken == "" {
		c.Logger.DebugContext(ctx, "refresh returned no token")
		return false, nil
	}

	c.session.SetAccessToken(out.AccessToken)
	c.Logger.DebugContext(ctx, "access token refreshed")
	return true, nil
}
