package leadsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// ============================================================================
// Leads
// ============================================================================

// ListLeads returns leads matching filter, newest first as ordered by the
// backend.
func (c *SDKClient) ListLeads(ctx context.Context, filter LeadFilter) ([]Lead, error) {
	q := url.Values{}
	if filter.FormID != "" {
		q.Set("formId", filter.FormID)
	}
	if filter.Status != "" {
		q.Set("status", string(filter.Status))
	}

	path := pathLeads
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	return Call[[]Lead](ctx, c, path, CallOptions{})
}

// GetLead returns a single lead.
func (c *SDKClient) GetLead(ctx context.Context, id string) (*Lead, error) {
	lead, err := Call[Lead](ctx, c, leadPath(id), CallOptions{})
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// UpdateLeadStatus moves a lead to status.
func (c *SDKClient) UpdateLeadStatus(ctx context.Context, id string, status LeadStatus) (*Lead, error) {
	lead, err := Call[Lead](ctx, c, leadPath(id)+"/status", CallOptions{
		Method: http.MethodPut,
		Body:   updateStatusRequest{Status: status},
	})
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// UpdateLeads sends payload to PUT /api/leads and returns the response
// unmodified.
func (c *SDKClient) UpdateLeads(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	return Call[json.RawMessage](ctx, c, pathLeads, CallOptions{
		Method: http.MethodPut,
		Body:   payload,
	})
}

// ============================================================================
// Comments
// ============================================================================

// ListComments returns the comments on a lead.
func (c *SDKClient) ListComments(ctx context.Context, leadID string) ([]Comment, error) {
	return Call[[]Comment](ctx, c, leadPath(leadID)+"/comments", CallOptions{})
}

// AddComment attaches a comment to a lead. Content is trimmed; blank content
// is rejected without a request.
func (c *SDKClient) AddComment(ctx context.Context, leadID, content string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyComment
	}

	comment, err := Call[Comment](ctx, c, leadPath(leadID)+"/comments", CallOptions{
		Method: http.MethodPost,
		Body:   addCommentRequest{Content: content},
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func leadPath(id string) string {
	return pathLeads + "/" + url.PathEscape(id)
}
