package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles(t *testing.T) {
	t.Parallel()

	files, err := MigrationFiles()
	require.NoError(t, err)
	assert.Contains(t, files, "00001_create_documents.sql")
}

func TestMigrate_UnknownCommand(t *testing.T) {
	t.Parallel()

	err := Migrate(context.Background(), nil, "sideways", nil)
	assert.ErrorContains(t, err, `unknown migration command "sideways"`)
}
