package controller

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/pantry-api/internal/platform/logger"
	"github.com/phrazzld/pantry-api/internal/store"
)

// ErrNilStore is returned by New when no store is supplied.
var ErrNilStore = errors.New("controller: store cannot be nil")

// Controller forwards document operations to a store.DocumentStore.
// It holds no mutable state and is safe for concurrent use if the store is.
type Controller struct {
	store  store.DocumentStore
	logger *slog.Logger
}

// New creates a Controller bound to s.
// If logger is nil, a default logger will be used.
func New(s store.DocumentStore, log *slog.Logger) (*Controller, error) {
	if s == nil {
		return nil, ErrNilStore
	}
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		store:  s,
		logger: log.With(slog.String("component", "controller")),
	}, nil
}

// Create persists data and returns the stored document.
func (c *Controller) Create(ctx context.Context, data store.Document) (store.Document, error) {
	doc, err := c.store.Create(ctx, data)
	c.trace(ctx, "create", "", err)
	return doc, err
}

// Get returns the document with the given identifier.
func (c *Controller) Get(ctx context.Context, id string) (store.Document, error) {
	doc, err := c.store.FindOne(ctx, id)
	c.trace(ctx, "get", id, err)
	return doc, err
}

// GetAll returns every document matching filter.
func (c *Controller) GetAll(ctx context.Context, filter store.Document) ([]store.Document, error) {
	docs, err := c.store.Find(ctx, filter)
	c.trace(ctx, "get_all", "", err)
	return docs, err
}

// Update merges data into the document with the given identifier.
func (c *Controller) Update(ctx context.Context, id string, data store.Document) (store.Document, error) {
	doc, err := c.store.Update(ctx, id, data)
	c.trace(ctx, "update", id, err)
	return doc, err
}

// Delete removes the document with the given identifier.
func (c *Controller) Delete(ctx context.Context, id string) error {
	err := c.store.Delete(ctx, id)
	c.trace(ctx, "delete", id, err)
	return err
}

func (c *Controller) trace(ctx context.Context, op, id string, err error) {
	log := logger.FromContextOrDefault(ctx, c.logger)
	attrs := []any{slog.String("operation", op)}
	if id != "" {
		attrs = append(attrs, slog.String("document_id", id))
	}
	if err != nil {
		log.Debug("store operation failed", append(attrs, slog.String("error", err.Error()))...)
		return
	}
	log.Debug("store operation completed", attrs...)
}
