// Package main is the entry point for the Stratium server.
// It loads configuration, wires the selected storage backend, sets up
// routing, and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"stratium/internal/activity"
	"stratium/internal/auth"
	"stratium/internal/cache"
	"stratium/internal/config"
	"stratium/internal/database"
	"stratium/internal/handlers"
	"stratium/internal/router"
	"stratium/internal/session"
	"stratium/internal/storage"
	"stratium/internal/store"
	"stratium/internal/store/local"
	"stratium/internal/store/postgres"
	"stratium/web"
)

func main() {
	// Structured logger — text handler, debug level in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"backend", cfg.Backend,
		"addr", cfg.Addr(),
	)

	// The activity log always lives on local disk, whatever the backend.
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		slog.Error("failed to create data directory", "error", err)
		os.Exit(1)
	}
	activityLog := activity.Open(filepath.Join(cfg.DataDir, "activity.json"))

	// Compose the storage backend and auth provider.
	var (
		backend      *store.Backend
		provider     auth.Provider
		sessionProv  *auth.SessionProvider
		userStore    store.UserRepo
		contentCache *cache.ContentCache
		twoFA        bool
	)

	switch cfg.Backend {
	case config.BackendPostgres:
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		if cfg.IsDev() {
			if err := database.Seed(db); err != nil {
				slog.Error("failed to seed database", "error", err)
				os.Exit(1)
			}
		}

		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()

		// In non-development environments, session cookies are HTTPS-only.
		sessionStore := session.NewStore(valkeyClient, !cfg.IsDev())
		users := postgres.NewUserStore(db)

		backend = postgres.NewBackend(db)
		sessionProv = auth.NewSessionProvider(users, sessionStore)
		provider = sessionProv
		userStore = users
		contentCache = cache.NewContentCache(valkeyClient, cache.DefaultContentTTL)
		twoFA = true

	case config.BackendLocal:
		db, err := local.Open(cfg.DataDir)
		if err != nil {
			slog.Error("failed to open local store", "error", err)
			os.Exit(1)
		}

		backend = local.NewBackend(db)
		provider = auth.NewDemoProvider(cfg.DataDir, cfg.DemoEmail, cfg.DemoPassword)
		slog.Info("demo mode active", "email", cfg.DemoEmail)
	}

	// Connect to S3-compatible object storage (optional — app works without it).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient == nil {
		slog.Warn("s3 storage not configured — media uploads disabled")
	}

	// Embedded SPA assets.
	spa, err := web.DistFS()
	if err != nil {
		slog.Error("failed to load embedded frontend", "error", err)
		os.Exit(1)
	}

	// Create handler groups with their dependencies.
	r := router.New(router.Deps{
		Provider:     provider,
		Auth:         handlers.NewAuth(provider, sessionProv, userStore),
		Contact:      handlers.NewContact(backend.Contacts, activityLog),
		Blog:         handlers.NewBlog(backend.Blog, activityLog, contentCache),
		Testimonials: handlers.NewTestimonial(backend.Testimonials, activityLog, contentCache),
		CaseStudies:  handlers.NewCaseStudy(backend.CaseStudies, activityLog, contentCache),
		Courses:      handlers.NewCourse(backend.Courses, activityLog, contentCache),
		Enrollments:  handlers.NewEnrollment(backend.Enrollments, backend.Courses),
		Analytics:    handlers.NewAnalytics(backend.Analytics),
		Activity:     handlers.NewActivity(activityLog),
		Drafts:       handlers.NewDrafts(),
		Media:        handlers.NewMedia(storageClient),
		TwoFA:        twoFA,
		SPA:          spa,
	})

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
