package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/pantry-api/internal/config"
	"github.com/phrazzld/pantry-api/internal/controller"
	"github.com/phrazzld/pantry-api/internal/events"
	"github.com/phrazzld/pantry-api/internal/platform/memory"
	"github.com/phrazzld/pantry-api/internal/platform/postgres"
	"github.com/phrazzld/pantry-api/internal/service"
	"github.com/phrazzld/pantry-api/internal/store"
)

// application holds the wired dependencies behind the CLI commands.
type application struct {
	service service.ReadinessService

	// release frees external resources. Nil when there are none.
	release func() error
}

// newApplication selects the document store from cfg and wires the
// controller, event emitter, and readiness service on top of it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	var (
		docs    store.DocumentStore
		release func() error
	)

	if cfg.UsesPostgres() {
		db, err := postgres.Open(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		docs = postgres.NewDocumentStore(db, cfg.Store.Collection, logger)
		release = db.Close
	} else {
		logger.Warn("no database configured, using in-memory store; documents are discarded on exit")
		docs = memory.NewDocumentStore(logger)
	}

	app, err := wireApplication(docs, logger)
	if err != nil {
		if release != nil {
			_ = release()
		}
		return nil, err
	}
	app.release = release
	return app, nil
}

func wireApplication(docs store.DocumentStore, logger *slog.Logger) (*application, error) {
	ctrl, err := controller.New(docs, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create controller: %w", err)
	}

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(events.LogHandler(logger))

	svc, err := service.NewReadinessService(ctrl, emitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create readiness service: %w", err)
	}

	return &application{service: svc}, nil
}
