// Package mocks provides centralized mock implementations for testing.
//
// Mocks here are built on testify/mock so expectations and call counts can be
// asserted from any test package:
//
//	import "github.com/phrazzld/pantry-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    s := new(mocks.MockDocumentStore)
//	    s.On("FindOne", mock.Anything, "id-1").Return(store.Document{"_id": "id-1"}, nil).Once()
//
//	    // Use the mock in your test...
//
//	    s.AssertExpectations(t)
//	}
//
// When adding a new mock to this package, create a file named after the
// interface being mocked and add a compile-time interface check.
package mocks
