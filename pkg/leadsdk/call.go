package leadsdk

import (
	"context"
	"net/http"
)

// CallOptions describes one authenticated call.
type CallOptions struct {
	// Method is the HTTP method. Default: GET
	Method string

	// Body is JSON-encoded once and replayed on retry. []byte and
	// json.RawMessage are sent as-is.
	Body any

	// Headers override the defaults. Authorization is always set from the
	// session when a token is held.
	Headers map[string]string

	// SkipRefresh disables the refresh-and-retry on 401. Calls to the
	// refresh endpoint itself always set it.
	SkipRefresh bool
}

// callState tracks a single call through its send/refresh/retry steps.
type callState int

const (
	stateSent callState = iota
	stateRefreshing
	stateRetried
	stateDone
)

func (s callState) String() string {
	switch s {
	case stateSent:
		return "sent"
	case stateRefreshing:
		return "refreshing"
	case stateRetried:
		return "retried"
	case stateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Call performs an authenticated request against path and decodes the JSON
// response into T.
//
// A 401 triggers at most one refresh through the refresh endpoint unless
// opts.SkipRefresh is set. When the refresh yields a token the request is
// re-issued once with it; any other outcome returns a *RequestError built
// from the final response.
func Call[T any](ctx context.Context, c *SDKClient, path string, opts CallOptions) (T, error) {
	var out T
	if err := c.Do(ctx, path, opts, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Do is the untyped form of Call. out may be nil to discard the body.
func (c *SDKClient) Do(ctx context.Context, path string, opts CallOptions, out any) error {
	resp, err := c.send(ctx, path, opts)
	if err != nil {
		return err
	}
	return decodeJSON(resp, out, defaultErrorMessage)
}

// send runs the call state machine and returns the final response.
// The caller owns the response body.
func (c *SDKClient) send(ctx context.Context, path string, opts CallOptions) (*http.Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	body, err := encodeBody(opts.Body)
	if err != nil {
		return nil, err
	}

	resp, err := c.doAuthRequest(ctx, method, path, body, opts.Headers)
	if err != nil {
		return nil, err
	}

	state := stateSent
	for state != stateDone {
		switch state {
		case stateSent:
			if resp.StatusCode == http.StatusUnauthorized && !opts.SkipRefresh {
				state = stateRefreshing
			} else {
				state = stateDone
			}

		case stateRefreshing:
			ok, err := c.Refresh(ctx)
			if err != nil {
				c.Logger.DebugContext(ctx, "token refresh failed", "path", path, "error", err)
			}
			if !ok {
				// Fall through with the original 401.
				state = stateDone
				continue
			}

			discard(resp)
			resp, err = c.doAuthRequest(ctx, method, path, body, opts.Headers)
			if err != nil {
				return nil, err
			}
			state = stateRetried

		case stateRetried:
			// A second 401 is final.
			state = stateDone
		}
	}

	return resp, nil
}
