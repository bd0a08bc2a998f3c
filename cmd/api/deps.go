package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/personal-color/internal/audit"
	"github.com/BruksfildServices01/personal-color/internal/config"
	dbpkg "github.com/BruksfildServices01/personal-color/internal/db"
	"github.com/BruksfildServices01/personal-color/internal/domain/analysis"
	"github.com/BruksfildServices01/personal-color/internal/domain/user"
	"github.com/BruksfildServices01/personal-color/internal/handlers"
	"github.com/BruksfildServices01/personal-color/internal/infra/classifier"
	"github.com/BruksfildServices01/personal-color/internal/infra/repository"
	"github.com/BruksfildServices01/personal-color/internal/routes"
	"github.com/BruksfildServices01/personal-color/internal/session"
	"github.com/BruksfildServices01/personal-color/internal/storage"
)

type auditStore interface {
	audit.Repository
	handlers.ActivityReader
}

// buildDeps creates the process-wide singletons. The returned cleanup
// drains the audit queue and closes external connections.
func buildDeps(ctx context.Context, cfg *config.Config) (routes.Deps, func(), error) {
	var (
		users    user.Repository
		analyses analysis.Repository
		audits   auditStore
		closers  []func() error
	)

	checks := map[string]handlers.HealthCheck{}

	// --------------------------------------------------
	// Persistence
	// --------------------------------------------------
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		mem := repository.NewMemoryStore()
		users, analyses, audits = mem.Users(), mem.Analyses(), mem.Audits()
		slog.Warn("memory_store_enabled", "detail", "data is lost on restart")

	default:
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			return routes.Deps{}, nil, err
		}
		users = repository.NewUserGormRepository(db)
		analyses = repository.NewAnalysisGormRepository(db)
		audits = repository.NewAuditGormRepository(db)
		checks["database"] = dbpkg.Ping(db)
		closers = append(closers, func() error { return dbpkg.Close(db) })
	}

	// --------------------------------------------------
	// Sessions
	// --------------------------------------------------
	var store session.Store
	switch cfg.SessionDriver {
	case config.SessionDriverMemory:
		store = session.NewMemoryStore()

	default:
		client := session.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		closers = append(closers, client.Close)
		store = session.NewRedisStore(client)
	}

	sessions := session.NewManager(store, session.Options{
		Secret:       cfg.SessionSecret,
		TTL:          cfg.SessionTTL,
		CookieName:   cfg.SessionCookieName,
		CookieSecure: cfg.SessionCookieSecure,
	})
	checks["sessions"] = sessions.Ping

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sessions.Ping(pingCtx); err != nil {
		runClosers(closers)
		return routes.Deps{}, nil, fmt.Errorf("session store: %w", err)
	}

	// --------------------------------------------------
	// Files
	// --------------------------------------------------
	files, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		runClosers(closers)
		return routes.Deps{}, nil, err
	}
	checks["uploads"] = files.Ping

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	dispatcher := audit.NewDispatcher(audit.New(audits), cfg.AuditQueueSize)

	cleanup := func() {
		drainCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := dispatcher.Close(drainCtx); err != nil {
			slog.Warn("audit_drain_incomplete", "err", err)
		}
		runClosers(closers)
	}

	return routes.Deps{
		Config:     cfg,
		Users:      users,
		Analyses:   analyses,
		Activity:   audits,
		Files:      files,
		Classifier: classifier.NewRandomClassifier(nil),
		Sessions:   sessions,
		Audit:      dispatcher,
		Checks:     checks,
	}, cleanup, nil
}

func runClosers(closers []func() error) {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			slog.Warn("close_failed", "err", err)
		}
	}
}
