package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsEmbedded(t *testing.T) {
	files, err := fs.Glob(embedMigrations, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		body, err := fs.ReadFile(embedMigrations, f)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(body), "-- +goose Up"), f)
		assert.True(t, strings.Contains(string(body), "-- +goose Down"), f)
	}
}

func TestCategoryNameUniqueOnlyWhileActive(t *testing.T) {
	body, err := fs.ReadFile(embedMigrations, "migrations/00002_category_active_name.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "ON categories (name) WHERE is_active")
}
