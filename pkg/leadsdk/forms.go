package leadsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListForms returns every form owned by the authenticated user.
func (c *SDKClient) ListForms(ctx context.Context) ([]Form, error) {
	return Call[[]Form](ctx, c, pathForms, CallOptions{})
}

// GetForm returns a single form with its fields.
func (c *SDKClient) GetForm(ctx context.Context, id string) (*Form, error) {
	form, err := Call[Form](ctx, c, pathForms+"/"+url.PathEscape(id), CallOptions{})
	if err != nil {
		return nil, err
	}
	return &form, nil
}

// CreateForm creates a form. Use NewFormRequest to apply the defaults.
func (c *SDKClient) CreateForm(ctx context.Context, req CreateFormRequest) (*CreateFormResponse, error) {
	resp, err := Call[CreateFormResponse](ctx, c, pathForms, CallOptions{
		Method: http.MethodPost,
		Body:   req,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
