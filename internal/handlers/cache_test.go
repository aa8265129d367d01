// cache_test.go exercises the content cache wiring of the public read
// handlers against a running Valkey. Tests are skipped if Valkey is not
// available; they use logical DB 15 and wipe content keys on cleanup.
package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"stratium/internal/cache"
	"stratium/internal/models"
)

// testContentCache connects to the test Valkey instance, skipping the
// test when it is unreachable.
func testContentCache(t *testing.T) (*cache.ContentCache, *redis.Client) {
	t.Helper()

	host := os.Getenv("VALKEY_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("VALKEY_PORT")
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr: host + ":" + port,
		DB:   15,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		ctx := context.Background()
		keys, _ := client.Keys(ctx, "content:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})
	return cache.NewContentCache(client, time.Minute), client
}

// TestFilterPart verifies the cache key segment for optional boolean
// filters.
func TestFilterPart(t *testing.T) {
	tr, fa := true, false
	tests := []struct {
		name string
		in   *bool
		want string
	}{
		{"absent", nil, "all"},
		{"true", &tr, "true"},
		{"false", &fa, "false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filterPart(tt.in); got != tt.want {
				t.Errorf("filterPart() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestCourseListCaching verifies that course listings populate the cache,
// are served from it, and drop out when an admin write invalidates the
// kind.
func TestCourseListCaching(t *testing.T) {
	env := newTestEnv(t)
	cc, _ := testContentCache(t)
	h := NewCourse(env.backend.Courses, env.log, cc)

	if _, err := env.backend.Courses.Create(&models.Course{
		Title: "Cached Course", Slug: "cached-course",
		Level: models.LevelBeginner, Published: true,
	}); err != nil {
		t.Fatalf("seed course: %v", err)
	}

	list := func() int {
		rr := httptest.NewRecorder()
		h.List(rr, httptest.NewRequest(http.MethodGet, "/api/courses", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("List() status = %d, want 200", rr.Code)
		}
		var items []models.Course
		decodeBody(t, rr, &items)
		return len(items)
	}

	if got := list(); got != 1 {
		t.Fatalf("initial listing = %d courses, want 1", got)
	}

	// A write that bypasses the handlers is invisible while the cached
	// listing is live.
	if _, err := env.backend.Courses.Create(&models.Course{
		Title: "Behind The Cache", Slug: "behind-the-cache",
		Level: models.LevelBeginner,
	}); err != nil {
		t.Fatalf("direct course create: %v", err)
	}
	if got := list(); got != 1 {
		t.Errorf("listing after direct write = %d courses, want the cached 1", got)
	}

	// An admin write through the handler invalidates the kind.
	rr := httptest.NewRecorder()
	h.Create(rr, jsonRequest(t, http.MethodPost, "/api/courses", map[string]any{
		"title": "Fresh Course",
	}))
	if rr.Code != http.StatusCreated {
		t.Fatalf("Create() status = %d, want 201: %s", rr.Code, rr.Body.String())
	}
	if got := list(); got != 3 {
		t.Errorf("listing after invalidation = %d courses, want 3", got)
	}
}

// TestCourseSlugCaching verifies that slug reads are cached per course.
func TestCourseSlugCaching(t *testing.T) {
	env := newTestEnv(t)
	cc, client := testContentCache(t)
	h := NewCourse(env.backend.Courses, env.log, cc)

	if _, err := env.backend.Courses.Create(&models.Course{
		Title: "Slugged", Slug: "slugged",
		Level: models.LevelBeginner, Published: true,
	}); err != nil {
		t.Fatalf("seed course: %v", err)
	}

	rr := httptest.NewRecorder()
	req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/api/courses/slugged", nil), "slug", "slugged")
	h.GetBySlug(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("GetBySlug() status = %d, want 200", rr.Code)
	}

	n, err := client.Exists(context.Background(), "content:courses:slug:slugged").Result()
	if err != nil {
		t.Fatalf("exists check: %v", err)
	}
	if n != 1 {
		t.Error("slug read did not populate the cache")
	}
}

// TestBlogListCacheKeyNormalization verifies that a malformed published
// filter shares the unfiltered listing's cache entry instead of minting
// a key per raw query string.
func TestBlogListCacheKeyNormalization(t *testing.T) {
	env := newTestEnv(t)
	cc, client := testContentCache(t)
	h := NewBlog(env.backend.Blog, env.log, cc)

	for _, target := range []string{
		"/api/blog",
		"/api/blog?published=garbage",
		"/api/blog?published=",
	} {
		rr := httptest.NewRecorder()
		h.List(rr, httptest.NewRequest(http.MethodGet, target, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("List(%s) status = %d, want 200", target, rr.Code)
		}
	}

	keys, err := client.Keys(context.Background(), "content:blog:list:*").Result()
	if err != nil {
		t.Fatalf("keys scan: %v", err)
	}
	if len(keys) != 1 || keys[0] != "content:blog:list:all" {
		t.Errorf("list cache keys = %v, want exactly [content:blog:list:all]", keys)
	}
}
