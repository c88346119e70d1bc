// Package memory provides an in-memory document store.
package memory

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/pantry-api/internal/platform/logger"
	"github.com/phrazzld/pantry-api/internal/store"
)

// Compile-time interface check.
var _ store.DocumentStore = (*DocumentStore)(nil)

// DocumentStore keeps documents in a map. Safe for concurrent access.
// Documents are copied on the way in and out so callers cannot mutate stored
// state; nested maps are shared.
type DocumentStore struct {
	mu     sync.RWMutex
	docs   map[string]store.Document
	order  []string
	logger *slog.Logger
}

// NewDocumentStore creates an empty in-memory document store.
// If logger is nil, a default logger will be used.
func NewDocumentStore(logger *slog.Logger) *DocumentStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentStore{
		docs:   make(map[string]store.Document),
		logger: logger.With(slog.String("component", "memory_document_store")),
	}
}

// Create stores a copy of data under a new UUID.
func (s *DocumentStore) Create(ctx context.Context, data store.Document) (store.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	doc := data.Clone()
	if doc == nil {
		doc = store.Document{}
	}
	id := uuid.NewString()
	doc[store.IDField] = id

	s.mu.Lock()
	s.docs[id] = doc
	s.order = append(s.order, id)
	s.mu.Unlock()

	log.Debug("document created", slog.String("document_id", id))
	return doc.Clone(), nil
}

// FindOne returns a copy of the document with the given ID.
func (s *DocumentStore) FindOne(ctx context.Context, id string) (store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		logger.FromContextOrDefault(ctx, s.logger).Debug("document not found", slog.String("document_id", id))
		return nil, store.ErrDocumentNotFound
	}
	return doc.Clone(), nil
}

// Find returns copies of matching documents in insertion order.
func (s *DocumentStore) Find(ctx context.Context, filter store.Document) ([]store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Document, 0)
	for _, id := range s.order {
		doc := s.docs[id]
		if doc.Matches(filter) {
			out = append(out, doc.Clone())
		}
	}
	logger.FromContextOrDefault(ctx, s.logger).Debug("documents found", slog.Int("count", len(out)))
	return out, nil
}

// Update merges data into the stored document. An IDField in data is ignored.
func (s *DocumentStore) Update(ctx context.Context, id string, data store.Document) (store.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, store.ErrDocumentNotFound
	}

	updated := doc.Clone()
	for k, v := range data {
		if k == store.IDField {
			continue
		}
		updated[k] = v
	}
	s.docs[id] = updated

	logger.FromContextOrDefault(ctx, s.logger).Debug("document updated",
		slog.String("document_id", id),
		slog.Int("fields", len(data)))
	return updated.Clone(), nil
}

// Delete removes the document with the given ID.
func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return store.ErrDocumentNotFound
	}
	delete(s.docs, id)

	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("document deleted", slog.String("document_id", id))
	return nil
}

// Len returns the number of stored documents.
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
