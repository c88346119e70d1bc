package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/pantry-api/internal/platform/logger"
	"github.com/phrazzld/pantry-api/internal/redact"
	"github.com/phrazzld/pantry-api/internal/store"
)

// DefaultCollection is used when NewDocumentStore is given an empty collection.
const DefaultCollection = "documents"

const entityDocument = "document"

// DocumentStore implements store.DocumentStore on the documents table.
// Every query is scoped to the store's collection.
type DocumentStore struct {
	db         store.DB
	collection string
	logger     *slog.Logger
}

// Ensure DocumentStore implements store.DocumentStore interface
var _ store.DocumentStore = (*DocumentStore)(nil)

// NewDocumentStore creates a PostgreSQL document store over db.
// The connection pool is owned by the caller.
// If logger is nil, a default logger will be used.
func NewDocumentStore(db store.DB, collection string, logger *slog.Logger) *DocumentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if collection == "" {
		collection = DefaultCollection
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DocumentStore{
		db:         db,
		collection: collection,
		logger: logger.With(
			slog.String("component", "postgres_document_store"),
			slog.String("collection", collection),
		),
	}
}

// Create implements store.DocumentStore.Create.
// Returns store.ErrInvalidEntity if data cannot be encoded as a JSON object.
func (s *DocumentStore) Create(ctx context.Context, data store.Document) (store.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	payload, err := encodeDocument(data)
	if err != nil {
		log.Warn("document encoding failed during create", slog.String("error", err.Error()))
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO documents (id, collection, data)
		VALUES ($1, $2, $3)
	`
	if _, err := s.db.ExecContext(ctx, query, id, s.collection, payload); err != nil {
		log.Error("failed to create document",
			slog.String("error", redact.Error(err)),
			slog.String("document_id", id.String()))
		return nil, store.NewStoreError(entityDocument, "create", "failed to insert document", MapError(err))
	}

	doc := data.Clone()
	if doc == nil {
		doc = store.Document{}
	}
	doc[store.IDField] = id.String()

	log.Debug("document created", slog.String("document_id", id.String()))
	return doc, nil
}

// FindOne implements store.DocumentStore.FindOne.
// Returns store.ErrDocumentNotFound if no document has the identifier. An
// identifier that is not a UUID cannot exist, so it also wraps store.ErrInvalidID.
func (s *DocumentStore) FindOne(ctx context.Context, id string) (store.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	docID, err := parseID(id)
	if err != nil {
		log.Debug("malformed document id", slog.String("document_id", id))
		return nil, err
	}

	query := `
		SELECT data
		FROM documents
		WHERE collection = $1 AND id = $2
	`
	var raw []byte
	err = s.db.QueryRowContext(ctx, query, s.collection, docID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("document not found", slog.String("document_id", id))
			return nil, store.ErrDocumentNotFound
		}
		log.Error("failed to retrieve document",
			slog.String("error", redact.Error(err)),
			slog.String("document_id", id))
		return nil, store.NewStoreError(entityDocument, "find_one", "failed to query document", MapError(err))
	}

	return decodeDocument(docID, raw)
}

// Find implements store.DocumentStore.Find.
// Matching uses JSONB containment on the top-level fields of filter, which
// gives scalar equality. Filters with non-scalar values match nothing.
func (s *DocumentStore) Find(ctx context.Context, filter store.Document) ([]store.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	out := make([]store.Document, 0)

	if !store.ScalarFilter(filter) {
		log.Debug("non-scalar filter matches nothing")
		return out, nil
	}

	criteria := filter.Clone()
	var idCriterion *uuid.UUID
	if raw, ok := criteria[store.IDField]; ok {
		delete(criteria, store.IDField)
		text, isString := raw.(string)
		if !isString {
			return out, nil
		}
		parsed, err := uuid.Parse(text)
		if err != nil {
			return out, nil
		}
		idCriterion = &parsed
	}

	payload, err := encodeDocument(criteria)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, data
		FROM documents
		WHERE collection = $1 AND data @> $2::jsonb
	`
	args := []any{s.collection, payload}
	if idCriterion != nil {
		query += " AND id = $3"
		args = append(args, *idCriterion)
	}
	query += " ORDER BY seq"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query documents", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError(entityDocument, "find", "failed to query documents", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	for rows.Next() {
		var (
			id  uuid.UUID
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			log.Error("failed to scan document row", slog.String("error", redact.Error(err)))
			return nil, store.NewStoreError(entityDocument, "find", "failed to scan document", MapError(err))
		}
		doc, err := decodeDocument(id, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating document rows", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError(entityDocument, "find", "failed to read documents", MapError(err))
	}

	log.Debug("documents found", slog.Int("count", len(out)))
	return out, nil
}

// Update implements store.DocumentStore.Update.
// The stored document is locked, merged with data and written back in one
// transaction. An IDField in data is ignored.
func (s *DocumentStore) Update(ctx context.Context, id string, data store.Document) (store.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	docID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var updated store.Document
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var raw []byte
		selectQuery := `
			SELECT data
			FROM documents
			WHERE collection = $1 AND id = $2
			FOR UPDATE
		`
		if err := tx.QueryRowContext(ctx, selectQuery, s.collection, docID).Scan(&raw); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return store.ErrDocumentNotFound
			}
			return store.NewStoreError(entityDocument, "update", "failed to load document", MapError(err))
		}

		current, err := decodeDocument(docID, raw)
		if err != nil {
			return err
		}
		for k, v := range data {
			if k == store.IDField {
				continue
			}
			current[k] = v
		}

		payload, err := encodeDocument(current)
		if err != nil {
			return err
		}

		updateQuery := `
			UPDATE documents
			SET data = $1, updated_at = NOW()
			WHERE collection = $2 AND id = $3
		`
		result, err := tx.ExecContext(ctx, updateQuery, payload, s.collection, docID)
		if err != nil {
			return store.NewStoreError(entityDocument, "update", "failed to write document", MapError(err))
		}
		if err := CheckRowsAffected(result); err != nil {
			return err
		}

		updated = current
		return nil
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("document not found for update", slog.String("document_id", id))
		} else {
			log.Error("failed to update document",
				slog.String("error", redact.Error(err)),
				slog.String("document_id", id))
		}
		return nil, err
	}

	log.Debug("document updated",
		slog.String("document_id", id),
		slog.Int("fields", len(data)))
	return updated, nil
}

// Delete implements store.DocumentStore.Delete.
// Returns store.ErrDocumentNotFound if no document has the identifier.
func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	docID, err := parseID(id)
	if err != nil {
		return err
	}

	query := `
		DELETE FROM documents
		WHERE collection = $1 AND id = $2
	`
	result, err := s.db.ExecContext(ctx, query, s.collection, docID)
	if err != nil {
		log.Error("failed to delete document",
			slog.String("error", redact.Error(err)),
			slog.String("document_id", id))
		return store.NewStoreError(entityDocument, "delete", "failed to delete document", MapError(err))
	}
	if err := CheckRowsAffected(result); err != nil {
		log.Debug("document not found for delete", slog.String("document_id", id))
		return err
	}

	log.Debug("document deleted", slog.String("document_id", id))
	return nil
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", store.ErrDocumentNotFound, store.ErrInvalidID)
	}
	return parsed, nil
}

// encodeDocument renders a document as a JSON object without its identifier.
func encodeDocument(data store.Document) (string, error) {
	payload := data.Clone()
	if payload == nil {
		payload = store.Document{}
	}
	delete(payload, store.IDField)

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: cannot encode document: %v", store.ErrInvalidEntity, err)
	}
	return string(raw), nil
}

func decodeDocument(id uuid.UUID, raw []byte) (store.Document, error) {
	var doc store.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, store.NewStoreError(entityDocument, "decode", "stored data is not a JSON object", err)
	}
	if doc == nil {
		doc = store.Document{}
	}
	doc[store.IDField] = id.String()
	return doc, nil
}
