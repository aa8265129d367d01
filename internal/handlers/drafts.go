// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"stratium/internal/undo"
)

// Drafts is the admin draft workspace: a per-key snapshot history kept in
// memory, so an editor can stage document edits with undo/redo before
// committing them through the regular entity endpoints. Drafts do not
// survive a restart.
type Drafts struct {
	mu        sync.Mutex
	histories map[string]*undo.History[json.RawMessage]
}

// NewDrafts creates an empty draft workspace.
func NewDrafts() *Drafts {
	return &Drafts{histories: make(map[string]*undo.History[json.RawMessage])}
}

// draftView is the state returned for every draft operation.
type draftView struct {
	Key     string          `json:"key"`
	Present json.RawMessage `json:"present"`
	CanUndo bool            `json:"can_undo"`
	CanRedo bool            `json:"can_redo"`
}

func (h *Drafts) view(key string, hist *undo.History[json.RawMessage]) draftView {
	return draftView{
		Key:     key,
		Present: hist.Present(),
		CanUndo: hist.CanUndo(),
		CanRedo: hist.CanRedo(),
	}
}

// Get returns the current snapshot and flags (GET /api/admin/drafts/{key}).
func (h *Drafts) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	h.mu.Lock()
	hist, ok := h.histories[key]
	var view draftView
	if ok {
		view = h.view(key, hist)
	}
	h.mu.Unlock()

	if !ok {
		respondNotFound(w)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Push records a new snapshot (POST /api/admin/drafts/{key}). The first
// push for a key creates its history; any redo states are discarded.
func (h *Drafts) Push(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var snapshot json.RawMessage
	if err := decodeJSON(w, r, &snapshot); err != nil {
		respondError(w, err)
		return
	}

	h.mu.Lock()
	hist, ok := h.histories[key]
	if !ok {
		hist = undo.New(snapshot)
		h.histories[key] = hist
	} else {
		hist.Push(snapshot)
	}
	view := h.view(key, hist)
	h.mu.Unlock()

	respondJSON(w, http.StatusOK, view)
}

// Undo steps the draft back one snapshot (POST /api/admin/drafts/{key}/undo).
// Undoing past the beginning is a no-op and still returns the state.
func (h *Drafts) Undo(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, func(hist *undo.History[json.RawMessage]) { hist.Undo() })
}

// Redo restores the most recently undone snapshot
// (POST /api/admin/drafts/{key}/redo).
func (h *Drafts) Redo(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, func(hist *undo.History[json.RawMessage]) { hist.Redo() })
}

func (h *Drafts) step(w http.ResponseWriter, r *http.Request, op func(*undo.History[json.RawMessage])) {
	key := chi.URLParam(r, "key")

	h.mu.Lock()
	hist, ok := h.histories[key]
	var view draftView
	if ok {
		op(hist)
		view = h.view(key, hist)
	}
	h.mu.Unlock()

	if !ok {
		respondNotFound(w)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Discard drops a draft's entire history (DELETE /api/admin/drafts/{key}).
// Discarding an unknown key is fine.
func (h *Drafts) Discard(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	h.mu.Lock()
	delete(h.histories, key)
	h.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}
