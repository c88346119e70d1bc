package store

import (
	"context"
	"reflect"
)

// IDField is the document key under which stores place the generated identifier.
const IDField = "_id"

// Document is an opaque persisted entity.
type Document map[string]any

// ID returns the document identifier, or "" if it has none.
func (d Document) ID() string {
	id, _ := d[IDField].(string)
	return id
}

// Clone returns a shallow copy of the document. Nested maps and slices are shared.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Matches reports whether every key in filter is present in d with an equal
// scalar value. An empty filter matches everything. Non-comparable filter
// values (maps, slices) never match.
func (d Document) Matches(filter Document) bool {
	for k, want := range filter {
		got, ok := d[k]
		if !ok || !scalarEqual(got, want) {
			return false
		}
	}
	return true
}

// ScalarFilter reports whether every value in filter is a scalar. A filter
// that fails this check matches no documents.
func ScalarFilter(filter Document) bool {
	for _, v := range filter {
		if !isScalar(v) {
			return false
		}
	}
	return true
}

func scalarEqual(a, b any) bool {
	if !isScalar(a) || !isScalar(b) {
		return false
	}
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	return a == b
}

func isScalar(v any) bool {
	if v == nil {
		return true
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Func, reflect.Chan, reflect.Pointer:
		return false
	default:
		return true
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// DocumentStore defines the interface for document persistence.
type DocumentStore interface {
	// Create saves a new document and returns it with a generated IDField.
	// Any IDField supplied in data is replaced.
	Create(ctx context.Context, data Document) (Document, error)

	// FindOne retrieves a document by its identifier.
	// Returns ErrNotFound if the document does not exist.
	FindOne(ctx context.Context, id string) (Document, error)

	// Find retrieves every document whose top-level fields equal those in filter.
	// Returns an empty slice if nothing matches.
	Find(ctx context.Context, filter Document) ([]Document, error)

	// Update merges data into the stored document's top-level fields and
	// returns the result. The identifier cannot be changed.
	// Returns ErrNotFound if the document does not exist.
	Update(ctx context.Context, id string, data Document) (Document, error)

	// Delete removes a document by its identifier.
	// Returns ErrNotFound if the document does not exist.
	Delete(ctx context.Context, id string) error
}
