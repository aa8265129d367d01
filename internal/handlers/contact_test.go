package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"stratium/internal/activity"
	"stratium/internal/models"
)

// TestContactSubmitAndAdminFlow walks a submission through the public
// form and the admin inbox: submit, list, mark read, delete.
func TestContactSubmitAndAdminFlow(t *testing.T) {
	env := newTestEnv(t)
	h := NewContact(env.backend.Contacts, env.log)

	// Public submission.
	rr := httptest.NewRecorder()
	h.Submit(rr, jsonRequest(t, http.MethodPost, "/api/contact", map[string]any{
		"name":    "Ada Lovelace",
		"email":   "ada@example.com",
		"company": "Analytical Engines Ltd",
		"subject": "Project inquiry",
		"message": "We would like to discuss a new project.",
	}))
	if rr.Code != http.StatusCreated {
		t.Fatalf("Submit status = %d, want 201: %s", rr.Code, rr.Body.String())
	}
	var created models.Contact
	decodeBody(t, rr, &created)
	if created.IsRead {
		t.Error("new submission must start unread")
	}

	// Admin inbox.
	rr = httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/contacts", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("List status = %d, want 200", rr.Code)
	}
	var inbox []models.Contact
	decodeBody(t, rr, &inbox)
	if len(inbox) != 1 {
		t.Fatalf("inbox has %d items, want 1", len(inbox))
	}

	// Mark read.
	rr = httptest.NewRecorder()
	req := withChiURLParam(httptest.NewRequest(http.MethodPatch, "/api/contacts/x/read", nil), "id", created.ID.String())
	h.MarkRead(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("MarkRead status = %d, want 200", rr.Code)
	}
	var read models.Contact
	decodeBody(t, rr, &read)
	if !read.IsRead {
		t.Error("MarkRead response not flagged read")
	}

	// Delete, recorded in the activity log.
	rr = httptest.NewRecorder()
	req = withChiURLParam(httptest.NewRequest(http.MethodDelete, "/api/contacts/x", nil), "id", created.ID.String())
	h.Delete(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("Delete status = %d, want 204", rr.Code)
	}

	entries := env.log.List()
	if len(entries) != 1 || entries[0].Type != activity.TypeDelete || entries[0].Target != "contact" {
		t.Errorf("activity log after delete = %+v, want one contact delete entry", entries)
	}

	// The inbox is empty again.
	rr = httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/contacts", nil))
	var after []models.Contact
	decodeBody(t, rr, &after)
	if len(after) != 0 {
		t.Errorf("inbox after delete has %d items, want 0", len(after))
	}
}

// TestContactSubmitValidation verifies the 400 shape for a bad submission.
func TestContactSubmitValidation(t *testing.T) {
	env := newTestEnv(t)
	h := NewContact(env.backend.Contacts, env.log)

	rr := httptest.NewRecorder()
	h.Submit(rr, jsonRequest(t, http.MethodPost, "/api/contact", map[string]any{
		"name":    "A",
		"email":   "not-an-email",
		"subject": "Hi",
		"message": "short",
	}))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Submit status = %d, want 400", rr.Code)
	}

	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	decodeBody(t, rr, &body)
	for _, field := range []string{"name", "email", "subject", "message"} {
		if _, ok := body.Fields[field]; !ok {
			t.Errorf("missing validation message for %q, got %v", field, body.Fields)
		}
	}
}

// TestContactUnknownID verifies 404 handling for admin operations.
func TestContactUnknownID(t *testing.T) {
	env := newTestEnv(t)
	h := NewContact(env.backend.Contacts, env.log)

	rr := httptest.NewRecorder()
	req := withChiURLParam(httptest.NewRequest(http.MethodPatch, "/api/contacts/x/read", nil), "id", "2b1a8a6e-5f63-4f1f-9c45-3f1f2a2b1a8a")
	h.MarkRead(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("MarkRead on unknown id = %d, want 404", rr.Code)
	}

	// A malformed id is a validation error, not a 404.
	rr = httptest.NewRecorder()
	req = withChiURLParam(httptest.NewRequest(http.MethodDelete, "/api/contacts/x", nil), "id", "not-a-uuid")
	h.Delete(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Delete with bad id = %d, want 400", rr.Code)
	}
}
