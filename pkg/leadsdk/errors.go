package leadsdk

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// defaultErrorMessage is used when neither the body nor the status line
// carries a message.
const defaultErrorMessage = "Request failed"

var (
	// ErrEmptyComment is returned when a comment has no content after trimming.
	ErrEmptyComment = errors.New("leadsdk: comment content is empty")

	// ErrMissingVerificationToken is returned by VerifyEmail for an empty token.
	ErrMissingVerificationToken = errors.New("leadsdk: missing verification token")

	// ErrVerificationFailed wraps transport or decoding failures in VerifyEmail.
	ErrVerificationFailed = errors.New("leadsdk: verification failed")
)

// RequestError is returned for any non-2xx response that was not recovered
// by a token refresh.
type RequestError struct {
	// StatusCode is the HTTP status of the final response
	StatusCode int

	// Message is the backend's "message" field, the status text, or a
	// generic fallback, in that order of preference
	Message string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return e.Message
}

// IsUnauthorized reports whether err is a 401 RequestError.
func IsUnauthorized(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 RequestError.
func IsNotFound(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusNotFound
}

// parseErrorResponse builds a RequestError from a non-2xx response.
func parseErrorResponse(resp *http.Response, body []byte, fallback string) error {
	return &RequestError{
		StatusCode: resp.StatusCode,
		Message:    errorMessage(body, statusText(resp), fallback),
	}
}

// errorMessage picks the message for an error body. A body that is not JSON
// yields the status text; JSON without a non-empty "message" string yields
// the fallback.
func errorMessage(body []byte, status, fallback string) string {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		if status != "" {
			return status
		}
		return fallback
	}

	if obj, ok := v.(map[string]any); ok {
		if msg, ok := obj["message"].(string); ok && msg != "" {
			return msg
		}
	}

	return fallback
}

// statusText returns the reason phrase of the response status line,
// e.g. "Not Found" for "404 Not Found".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
