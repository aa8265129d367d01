// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	// validSlug matches a well-formed slug: hyphen-separated lowercase runs.
	validSlug = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Valid reports whether s is a non-empty, URL-safe slug.
func Valid(s string) bool {
	return validSlug.MatchString(s)
}

// Uniquify appends a numeric suffix until taken reports the slug as free.
// Used to disambiguate a generated slug instead of silently overwriting
// the record that already owns it.
func Uniquify(s string, taken func(string) bool) string {
	if !taken(s) {
		return s
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", s, i)
		if !taken(candidate) {
			return candidate
		}
	}
}
