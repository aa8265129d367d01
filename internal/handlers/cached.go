package handlers

import (
	"encoding/json"
	"net/http"

	"stratium/internal/cache"
)

// filterPart normalizes an optional boolean filter into a stable cache
// key segment, so a missing parameter and a malformed one share a single
// cached copy of the unfiltered listing.
func filterPart(v *bool) string {
	switch {
	case v == nil:
		return "all"
	case *v:
		return "true"
	default:
		return "false"
	}
}

// serveCached writes the cached payload for key when one exists. Returns
// false on a miss or when caching is disabled.
func serveCached(cc *cache.ContentCache, w http.ResponseWriter, r *http.Request, key string) bool {
	if cc == nil {
		return false
	}
	payload, ok := cc.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
	return true
}

// storeCached caches the JSON encoding of v under key. Encoding failures
// skip the cache; the response path surfaces them.
func storeCached(cc *cache.ContentCache, r *http.Request, key string, v any) {
	if cc == nil {
		return
	}
	if payload, err := json.Marshal(v); err == nil {
		cc.Set(r.Context(), key, payload)
	}
}
