// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package activity maintains a bounded, most-recent-first log of admin
// mutations for the dashboard. The log is persisted as a local JSON file
// only — it is never synced to the database and is lost if the file is
// removed, which is acceptable for an operator convenience feature.
package activity

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MaxEntries is the retention cap. The oldest entry is evicted on overflow,
// purely by insertion order.
const MaxEntries = 50

// Type classifies what kind of mutation an entry describes.
type Type string

const (
	TypeCreate  Type = "create"
	TypeUpdate  Type = "update"
	TypeDelete  Type = "delete"
	TypePublish Type = "publish"
	TypeImport  Type = "import"
	TypeExport  Type = "export"
)

// Entry is one recorded mutation. Target names the entity kind
// ("blog", "contact", "testimonial", "case-study", "course").
type Entry struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Target    string    `json:"target"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
}

// Log is a file-backed activity log. All methods are safe for concurrent use.
type Log struct {
	mu      sync.Mutex
	path    string
	entries []Entry // newest first
}

// Open loads the log from path. A missing or corrupted file yields an
// empty log — never an error the caller has to handle.
func Open(path string) *Log {
	l := &Log{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("activity log unreadable, starting empty", "path", path, "error", err)
		}
		return l
	}

	if err := json.Unmarshal(data, &l.entries); err != nil {
		slog.Warn("activity log corrupted, starting empty", "path", path, "error", err)
		l.entries = nil
	}
	return l
}

// Record appends an entry with a generated id and the current timestamp,
// evicting the oldest entry beyond MaxEntries.
func (l *Log) Record(t Type, target, title string) Entry {
	entry := Entry{
		ID:        uuid.NewString(),
		Type:      t,
		Target:    target,
		Title:     title,
		Timestamp: time.Now(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append([]Entry{entry}, l.entries...)
	if len(l.entries) > MaxEntries {
		l.entries = l.entries[:MaxEntries]
	}
	l.persist()

	return entry
}

// List returns a copy of the entries, newest first.
func (l *Log) List() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Clear empties the log and removes the backing file.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = nil
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		slog.Warn("activity log remove failed", "path", l.path, "error", err)
	}
}

// persist writes the whole log to disk. Called with the mutex held.
// A write failure loses durability, not correctness, so it is only logged.
func (l *Log) persist() {
	data, err := json.Marshal(l.entries)
	if err != nil {
		slog.Warn("activity log marshal failed", "error", err)
		return
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		slog.Warn("activity log write failed", "path", l.path, "error", err)
	}
}
