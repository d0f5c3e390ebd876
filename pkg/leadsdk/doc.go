/*
Package leadsdk provides a client SDK for the lead-collection backend.

# Overview

An SDKClient wraps every outbound call with the session's bearer token and
recovers from one class of failure: an expired access token. When a call is
answered with 401 the client asks the refresh endpoint for a new token
(authenticated by the backend's session cookie, which lives in the client's
cookie jar), stores it, and re-issues the original call exactly once.

	client := leadsdk.NewSDKClient("https://api.example.com")

	// Log in; the access token is stored in client.Session()
	_, err := client.Login(ctx, "you@example.com", password)

	// Typed resource operations
	forms, err := client.ListForms(ctx)
	lead, err := client.UpdateLeadStatus(ctx, leadID, leadsdk.LeadClosed)

	// Or any endpoint through the generic call
	forms, err := leadsdk.Call[[]leadsdk.Form](ctx, client, "/api/forms", leadsdk.CallOptions{})

# Refresh Semantics

Each call moves through at most these steps:

	sent -> done
	sent -> refreshing -> retried -> done   (refresh produced a token)
	sent -> refreshing -> done              (refresh failed, original 401 is returned)

A 401 on the retried request is final. Calls made with SkipRefresh never
refresh; the refresh request itself is always made that way.

Concurrent calls that all see 401 each refresh independently. Pass
WithRefreshDedupe to collapse them into one request.

# Error Handling

Non-2xx responses become *RequestError. Its Message is the "message" field
of a JSON error body, or the status text when the body is not JSON, or
"Request failed":

	_, err := client.UpdateLeadStatus(ctx, "42", leadsdk.LeadClosed)
	var reqErr *leadsdk.RequestError
	if errors.As(err, &reqErr) {
		fmt.Println(reqErr.StatusCode, reqErr.Message) // 404 lead not found
	}

Transport failures are returned wrapped and can be matched with errors.Is
and errors.As.

# Account Endpoints

Login, Register, VerifyEmail and ForgotPassword call the backend directly
without a bearer token and never refresh.

# Thread Safety

SDKClient and Session are safe for concurrent use.
*/
package leadsdk
