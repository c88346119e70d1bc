package mocks

import (
	"context"

	"github.com/phrazzld/pantry-api/internal/store"
	"github.com/stretchr/testify/mock"
)

var _ store.DocumentStore = (*MockDocumentStore)(nil)

// MockDocumentStore is a mock of store.DocumentStore for use with testify/mock.
type MockDocumentStore struct {
	mock.Mock
}

// Create is a mock implementation of store.DocumentStore.Create
func (m *MockDocumentStore) Create(ctx context.Context, data store.Document) (store.Document, error) {
	args := m.Called(ctx, data)
	if doc, ok := args.Get(0).(store.Document); ok {
		return doc, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindOne is a mock implementation of store.DocumentStore.FindOne
func (m *MockDocumentStore) FindOne(ctx context.Context, id string) (store.Document, error) {
	args := m.Called(ctx, id)
	if doc, ok := args.Get(0).(store.Document); ok {
		return doc, args.Error(1)
	}
	return nil, args.Error(1)
}

// Find is a mock implementation of store.DocumentStore.Find
func (m *MockDocumentStore) Find(ctx context.Context, filter store.Document) ([]store.Document, error) {
	args := m.Called(ctx, filter)
	if docs, ok := args.Get(0).([]store.Document); ok {
		return docs, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.DocumentStore.Update
func (m *MockDocumentStore) Update(ctx context.Context, id string, data store.Document) (store.Document, error) {
	args := m.Called(ctx, id, data)
	if doc, ok := args.Get(0).(store.Document); ok {
		return doc, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.DocumentStore.Delete
func (m *MockDocumentStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
