package leadsdk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ============================================================================
// Account Types
// ============================================================================

// Credentials is the body of the login and register endpoints.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by POST /api/auth/login. The backend also sets
// the session cookie used by the refresh endpoint.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`

	// User is passed through unmodified
	User json.RawMessage `json:"user,omitempty"`
}

// VerifyEmailResult is the outcome of an email verification link.
type VerifyEmailResult struct {
	Verified bool
	Message  string
}

// messageResponse is the generic {message} body of the account endpoints.
type messageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Form Types
// ============================================================================

// FieldType is the input type of a form field.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldNumber   FieldType = "number"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
	FieldCheckbox FieldType = "checkbox"
)

// FieldTypes lists every supported field type in display order.
var FieldTypes = []FieldType{FieldText, FieldEmail, FieldNumber, FieldTextarea, FieldSelect, FieldCheckbox}

// Valid reports whether t is a supported field type.
func (t FieldType) Valid() bool {
	for _, ft := range FieldTypes {
		if t == ft {
			return true
		}
	}
	return false
}

// FormStatusActive is the status given to newly created forms.
const FormStatusActive = "active"

// FormField is a single input on a form.
type FormField struct {
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Order    int       `json:"order"`
	Options  []string  `json:"options,omitempty"`
}

// Form is a lead-collection form owned by the authenticated user.
type Form struct {
	ID          string      `json:"_id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Status      string      `json:"status"`
	Fields      []FormField `json:"fields,omitempty"`
	CreatedAt   time.Time   `json:"createdAt,omitzero"`
}

// CreateFormRequest is the body of POST /api/forms.
type CreateFormRequest struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Status      string      `json:"status"`
	Fields      []FormField `json:"fields"`
}

// CreateFormResponse is returned by POST /api/forms. PublicKey authorizes
// anonymous submissions from embedded forms.
type CreateFormResponse struct {
	Form      Form   `json:"form"`
	PublicKey string `json:"publicKey"`
}

// DefaultFormFields returns the fields a new form starts with.
func DefaultFormFields() []FormField {
	return []FormField{
		{Label: "Name", Type: FieldText, Required: true, Order: 0, Options: []string{}},
		{Label: "Email", Type: FieldEmail, Required: true, Order: 1, Options: []string{}},
	}
}

// NewFormRequest builds an active form. Nil fields means the default
// Name/Email pair. Blank labels become "Field" and options are never nil.
func NewFormRequest(name, description string, fields []FormField) CreateFormRequest {
	if fields == nil {
		fields = DefaultFormFields()
	}

	out := make([]FormField, len(fields))
	for i, f := range fields {
		if f.Label == "" {
			f.Label = "Field"
		}
		if f.Type == "" {
			f.Type = FieldText
		}
		if f.Options == nil {
			f.Options = []string{}
		}
		out[i] = f
	}

	return CreateFormRequest{
		Name:        name,
		Description: description,
		Status:      FormStatusActive,
		Fields:      out,
	}
}

// ============================================================================
// Lead Types
// ============================================================================

// LeadStatus is the triage state of a lead.
type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadClosed    LeadStatus = "closed"
)

// LeadStatuses lists every lead status in triage order.
var LeadStatuses = []LeadStatus{LeadNew, LeadContacted, LeadClosed}

// ParseLeadStatus validates a lead status string.
func ParseLeadStatus(s string) (LeadStatus, error) {
	for _, st := range LeadStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid lead status %q (want new, contacted or closed)", s)
}

// FormRef is the form a lead belongs to. The backend sends either a
// populated {_id, name} object or a bare id string.
type FormRef struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
}

// UnmarshalJSON accepts an object, a string id, or null.
func (r *FormRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = FormRef{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = FormRef{ID: id}
		return nil
	}

	type plain FormRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = FormRef(p)
	return nil
}

// Label returns the form name, or the id when the form was not populated.
func (r FormRef) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// Lead is a single form submission.
type Lead struct {
	ID        string         `json:"_id"`
	Form      FormRef        `json:"formId"`
	Data      map[string]any `json:"data"`
	Status    LeadStatus     `json:"status"`
	SourceIP  *string        `json:"sourceIp,omitempty"`
	UserAgent *string        `json:"userAgent,omitempty"`
	CreatedAt time.Time      `json:"createdAt,omitzero"`
}

// LeadFilter narrows a lead listing. Empty fields are not sent.
type LeadFilter struct {
	FormID string
	Status LeadStatus
}

// updateStatusRequest is the body of PUT /api/leads/:id/status.
type updateStatusRequest struct {
	Status LeadStatus `json:"status"`
}

// ============================================================================
// Comment Types
// ============================================================================

// Comment is a note attached to a lead.
type Comment struct {
	ID        string    `json:"_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// addCommentRequest is the body of POST /api/leads/:id/comments.
type addCommentRequest struct {
	Content string `json:"content"`
}
