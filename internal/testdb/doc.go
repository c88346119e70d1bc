//go:build integration

// Package testdb provides utilities for tests that need a real PostgreSQL
// database. Tests using it are compiled only with the integration build tag
// and are skipped when no database URL is configured, except in CI where a
// missing URL fails the test.
package testdb
