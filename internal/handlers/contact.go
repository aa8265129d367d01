// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"stratium/internal/activity"
	"stratium/internal/models"
	"stratium/internal/store"
)

// Contact groups the contact form handlers.
type Contact struct {
	contacts store.ContactRepo
	log      *activity.Log
}

// NewContact creates a new Contact handler group.
func NewContact(contacts store.ContactRepo, log *activity.Log) *Contact {
	return &Contact{contacts: contacts, log: log}
}

type contactRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Company *string `json:"company"`
	Subject string  `json:"subject"`
	Message string  `json:"message"`
}

// Submit handles the public contact form (POST /api/contact).
func (h *Contact) Submit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	c := &models.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := c.Validate(); err != nil {
		respondError(w, err)
		return
	}

	created, err := h.contacts.Create(c)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// List returns all submissions for the admin inbox (GET /api/contacts).
func (h *Contact) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.contacts.List()
	if err != nil {
		respondError(w, err)
		return
	}
	if items == nil {
		items = []models.Contact{}
	}
	respondJSON(w, http.StatusOK, items)
}

// MarkRead flags a submission as read (PATCH /api/contacts/{id}/read).
func (h *Contact) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	existing, err := h.contacts.Get(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing == nil {
		respondNotFound(w)
		return
	}

	if err := h.contacts.MarkRead(id); err != nil {
		respondError(w, err)
		return
	}
	existing.IsRead = true
	respondJSON(w, http.StatusOK, existing)
}

// Delete removes a submission (DELETE /api/contacts/{id}).
func (h *Contact) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	existing, err := h.contacts.Get(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing == nil {
		respondNotFound(w)
		return
	}

	if err := h.contacts.Delete(id); err != nil {
		respondError(w, err)
		return
	}
	h.log.Record(activity.TypeDelete, "contact", existing.Subject)
	w.WriteHeader(http.StatusNoContent)
}
