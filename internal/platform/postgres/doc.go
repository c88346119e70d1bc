// Package postgres provides a PostgreSQL implementation of store.DocumentStore.
//
// Documents are kept as JSONB rows in a single documents table, partitioned by
// a collection name so several logical stores can share one database. The
// package also owns the embedded goose migrations for that table and the
// translation of driver errors into store sentinels.
package postgres
