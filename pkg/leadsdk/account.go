package leadsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Account endpoints are called directly, without the bearer header and
// without refresh-on-401.

const (
	msgLoginFailed        = "Login failed"
	msgRegisterFailed     = "Registration failed"
	msgRegistered         = "Registration successful. Please check your email to verify your account."
	msgResetLinkRequested = "If the email exists, you will receive a reset link."
)

// Login authenticates with email and password and stores the returned
// access token in the session.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var loginResp LoginResponse
	if err := c.accountRequest(ctx, http.MethodPost, pathLogin, Credentials{email, password}, &loginResp, msgLoginFailed); err != nil {
		return nil, err
	}

	c.session.SetAccessToken(loginResp.AccessToken)
	return &loginResp, nil
}

// Register creates an account. The returned message is meant for the user;
// the account stays unverified until the emailed link is followed.
func (c *SDKClient) Register(ctx context.Context, email, password string) (string, error) {
	if err := c.accountRequest(ctx, http.MethodPost, pathRegister, Credentials{email, password}, nil, msgRegisterFailed); err != nil {
		return "", err
	}
	return msgRegistered, nil
}

// ForgotPassword requests a password reset link for email.
func (c *SDKClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	var msg messageResponse
	body := map[string]string{"email": email}
	if err := c.accountRequest(ctx, http.MethodPost, pathForgotPassword, body, &msg, defaultErrorMessage); err != nil {
		return "", err
	}

	if msg.Message == "" {
		return msgResetLinkRequested, nil
	}
	return msg.Message, nil
}

// VerifyEmail follows an email verification link. The backend answers with
// a message regardless of status; the email counts as verified when that
// message says so.
func (c *SDKClient) VerifyEmail(ctx context.Context, token string) (*VerifyEmailResult, error) {
	if token == "" {
		return nil, ErrMissingVerificationToken
	}

	resp, err := c.doRequest(ctx, http.MethodGet, pathVerifyEmail+"?token="+url.QueryEscape(token), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}

	var msg messageResponse
	if err := json.Unmarshal(bodyBytes, &msg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}

	return &VerifyEmailResult{
		Verified: strings.Contains(msg.Message, "verified"),
		Message:  msg.Message,
	}, nil
}

// accountRequest sends an unauthenticated JSON request and decodes the
// response, using fallback as the message when an error body has none.
func (c *SDKClient) accountRequest(
	ctx context.Context,
	method, path string,
	body any,
	target any,
	fallback string,
) error {
	data, err := encodeBody(body)
	if err != nil {
		return err
	}

	resp, err := c.doRequest(ctx, method, path, data, nil)
	if err != nil {
		return err
	}

	return decodeJSON(resp, target, fallback)
}
