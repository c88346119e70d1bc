// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic. Entities are exchanged as opaque documents;
// the only field a store interprets is the identifier it assigns on create.
package store
