package leadsdk

import (
	"context"
	"net/http"
)

// Logout ends the backend session and clears the access token. The token is
// cleared even when the request fails; the returned error is informational.
func (c *SDKClient) Logout(ctx context.Context) error {
	defer c.session.Clear()

	if err := c.Do(ctx, pathLogout, CallOptions{Method: http.MethodPost}, nil); err != nil {
		c.Logger.WarnContext(ctx, "logout request failed", "error", err)
		return err
	}
	return nil
}
