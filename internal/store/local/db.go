// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package local implements the repository contracts on top of a single
// JSON document persisted to disk. It serves demo and offline mode: no
// PostgreSQL, no Valkey, one file. Every mutation is a read-modify-write
// of the whole document under one mutex, which is fine for the
// single-operator workloads this mode exists for.
package local

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"stratium/internal/models"
)

// contentFile is the document name inside the data directory.
const contentFile = "content.json"

// document is the serialized shape of the whole store: parallel ordered
// sequences, newest first.
type document struct {
	Contacts        []models.Contact        `json:"contacts"`
	BlogPosts       []models.BlogPost       `json:"blog_posts"`
	Testimonials    []models.Testimonial    `json:"testimonials"`
	CaseStudies     []models.CaseStudy      `json:"case_studies"`
	Courses         []models.Course         `json:"courses"`
	Enrollments     []models.Enrollment     `json:"enrollments"`
	AnalyticsEvents []models.AnalyticsEvent `json:"analytics_events"`
}

// DB owns the in-memory document and its backing file.
type DB struct {
	mu   sync.Mutex
	path string
	doc  document
}

// Open loads the document from dir, creating the directory if needed.
// A corrupted file is recovered to an empty document with a warning —
// demo data is not worth crashing over.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	db := &DB{path: filepath.Join(dir, contentFile)}

	data, err := os.ReadFile(db.path)
	if err != nil {
		if os.IsNotExist(err) {
			return db, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, &db.doc); err != nil {
		slog.Warn("local store corrupted, resetting to empty", "path", db.path, "error", err)
		db.doc = document{}
	}
	return db, nil
}

// persist writes the whole document back to disk. Called with mu held.
func (db *DB) persist() error {
	data, err := json.MarshalIndent(&db.doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(db.path, data, 0o644)
}

// locate returns the index of the first item matching the predicate.
func locate[T any](items []T, match func(T) bool) (int, bool) {
	for i, item := range items {
		if match(item) {
			return i, true
		}
	}
	return 0, false
}

// prepend inserts item at the front, keeping newest-first order.
func prepend[T any](items []T, item T) []T {
	return append([]T{item}, items...)
}

// removeAt drops the item at idx.
func removeAt[T any](items []T, idx int) []T {
	return append(items[:idx], items[idx+1:]...)
}

// filtered copies the items the predicate keeps.
func filtered[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
