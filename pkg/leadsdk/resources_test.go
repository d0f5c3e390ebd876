package leadsdk_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/leaddash/pkg/httpx"
	"github.com/aussiebroadwan/leaddash/pkg/leadsdk"
	"github.com/aussiebroadwan/leaddash/pkg/leadsdk/leadsdktest"
	"github.com/stretchr/testify/require"
)

func authed(h http.HandlerFunc) http.HandlerFunc {
	return leadsdktest.RequireBearer(leadsdktest.Tokens("tok1"), h)
}

func TestForms(t *testing.T) {
	t.Parallel()

	b := leadsdktest.NewBackend(t)
	b.Handle("GET /api/forms", authed(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, []map[string]any{
			{"_id": "f1", "name": "Contact", "status": "active", "createdAt": "2024-05-01T10:00:00Z"},
			{"_id": "f2", "name": "Quote", "status": "active"},
		})
	}))
	b.Handle("GET /api/forms/{id}", authed(func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "f1" {
			httpx.WriteMessage(w, http.StatusNotFound, "Form not found")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{
			"_id":  "f1",
			"name": "Contact",
			"fields": []map[string]any{
				{"label": "Name", "type": "text", "required": true, "order": 0},
			},
		})
	}))
	b.Handle("POST /api/forms", authed(func(w http.ResponseWriter, r *http.Request) {
		var req leadsdk.CreateFormRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.WriteMessage(w, http.StatusBadRequest, "Invalid body")
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, map[string]any{
			"form":      map[string]any{"_id": "f3", "name": req.Name, "status": req.Status, "fields": req.Fields},
			"publicKey": "pk_123",
		})
	}))

	client := newClient(t, b)
	client.Session().SetAccessToken("tok1")

	t.Run("list", func(t *testing.T) {
		forms, err := client.ListForms(t.Context())
		require.NoError(t, err)
		require.Len(t, forms, 2)
		require.Equal(t, "f1", forms[0].ID)
		require.Equal(t, 2024, forms[0].CreatedAt.Year())
		require.True(t, forms[1].CreatedAt.IsZero())
	})

	t.Run("get", func(t *testing.T) {
		form, err := client.GetForm(t.Context(), "f1")
		require.NoError(t, err)
		require.Len(t, form.Fields, 1)
		require.Equal(t, leadsdk.FieldText, form.Fields[0].Type)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := client.GetForm(t.Context(), "nope")
		require.EqualError(t, err, "Form not found")
		require.True(t, leadsdk.IsNotFound(err))
	})

	t.Run("create", func(t *testing.T) {
		resp, err := client.CreateForm(t.Context(), leadsdk.NewFormRequest("Signup", "", nil))
		require.NoError(t, err)
		require.Equal(t, "f3", resp.Form.ID)
		require.Equal(t, "pk_123", resp.PublicKey)
		require.Equal(t, leadsdk.FormStatusActive, resp.Form.Status)
		require.Len(t, resp.Form.Fields, 2)

		req := b.RequestsTo(http.MethodPost, "/api/forms")[0]
		require.JSONEq(t, `{
			"name": "Signup",
			"description": "",
			"status": "active",
			"fields": [
				{"label": "Name", "type": "text", "required": true, "order": 0},
				{"label": "Email", "type": "email", "required": true, "order": 1}
			]
		}`, string(req.Body))
	})
}

func TestListLeadsQuery(t *testing.T) {
	t.Parallel()

	b := leadsdktest.NewBackend(t)
	b.Handle("GET /api/leads", authed(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, []map[string]any{
			{"_id": "l1", "formId": map[string]string{"_id": "f1", "name": "Contact"}, "status": "new", "data": map[string]any{"email": "a@example.com"}},
			{"_id": "l2", "formId": "f2", "status": "contacted", "sourceIp": "10.0.0.1"},
			{"_id": "l3", "formId": nil, "status": "closed"},
		})
	}))

	client := newClient(t, b)
	client.Session().SetAccessToken("tok1")

	leads, err := client.ListLeads(t.Context(), leadsdk.LeadFilter{})
	require.NoError(t, err)
	require.Len(t, leads, 3)

	require.Equal(t, "Contact", leads[0].Form.Label())
	require.Equal(t, "a@example.com", leads[0].Data["email"])
	require.Nil(t, leads[0].SourceIP)

	require.Equal(t, "f2", leads[1].Form.ID)
	require.Equal(t, "f2", leads[1].Form.Label())
	require.NotNil(t, leads[1].SourceIP)
	require.Equal(t, "10.0.0.1", *leads[1].SourceIP)

	require.Empty(t, leads[2].Form.ID)
	require.Equal(t, leadsdk.LeadClosed, leads[2].Status)

	_, err = client.ListLeads(t.Context(), leadsdk.LeadFilter{FormID: "f1", Status: leadsdk.LeadNew})
	require.NoError(t, err)

	reqs := b.RequestsTo(http.MethodGet, "/api/leads")
	require.Len(t, reqs, 2)
	require.Empty(t, reqs[0].RawQuery)
	require.Equal(t, "formId=f1&status=new", reqs[1].RawQuery)
}

func TestLeadOperations(t *testing.T) {
	t.Parallel()

	b := leadsdktest.NewBackend(t)
	b.Handle("GET /api/leads/{id}", authed(func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "l1" {
			httpx.WriteMessage(w, http.StatusNotFound, "Lead not found")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"_id": "l1", "formId": "f1", "status": "new"})
	}))
	b.Handle("PUT /api/leads/{id}/status", authed(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Status string `json:"status"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"_id": r.PathValue("id"), "formId": "f1", "status": body.Status})
	}))
	b.Handle("PUT /api/leads", authed(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]int{"modified": 2})
	}))
	b.Handle("GET /api/leads/{id}/comments", authed(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, []map[string]string{{"_id": "c1", "content": "Called back"}})
	}))
	b.Handle("POST /api/leads/{id}/comments", authed(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Content string `json:"content"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		httpx.WriteJSON(w, http.StatusCreated, map[string]string{"_id": "c2", "content": body.Content})
	}))

	client := newClient(t, b)
	client.Session().SetAccessToken("tok1")

	t.Run("get", func(t *testing.T) {
		lead, err := client.GetLead(t.Context(), "l1")
		require.NoError(t, err)
		require.Equal(t, leadsdk.LeadNew, lead.Status)

		_, err = client.GetLead(t.Context(), "l9")
		require.EqualError(t, err, "Lead not found")
	})

	t.Run("update status", func(t *testing.T) {
		lead, err := client.UpdateLeadStatus(t.Context(), "l1", leadsdk.LeadContacted)
		require.NoError(t, err)
		require.Equal(t, leadsdk.LeadContacted, lead.Status)

		req := b.RequestsTo(http.MethodPut, "/api/leads/l1/status")[0]
		require.JSONEq(t, `{"status":"contacted"}`, string(req.Body))
	})

	t.Run("bulk update passthrough", func(t *testing.T) {
		out, err := client.UpdateLeads(t.Context(), json.RawMessage(`{"ids":["l1","l2"],"status":"closed"}`))
		require.NoError(t, err)
		require.JSONEq(t, `{"modified":2}`, string(out))

		req := b.RequestsTo(http.MethodPut, "/api/leads")[0]
		require.JSONEq(t, `{"ids":["l1","l2"],"status":"closed"}`, string(req.Body))
	})

	t.Run("comments", func(t *testing.T) {
		comments, err := client.ListComments(t.Context(), "l1")
		require.NoError(t, err)
		require.Len(t, comments, 1)
		require.Equal(t, "Called back", comments[0].Content)

		comment, err := client.AddComment(t.Context(), "l1", "  left a voicemail \n")
		require.NoError(t, err)
		require.Equal(t, "left a voicemail", comment.Content)
	})

	t.Run("blank comment is rejected locally", func(t *testing.T) {
		before := b.Count(http.MethodPost, "/api/leads/l1/comments")

		_, err := client.AddComment(t.Context(), "l1", "   ")
		require.ErrorIs(t, err, leadsdk.ErrEmptyComment)
		require.Equal(t, before, b.Count(http.MethodPost, "/api/leads/l1/comments"))
	})
}
