package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add price lists", "add_price_lists"},
		{"Add-Price-Lists", "add_price_lists"},
		{"ADD_PRICE_LISTS", "add_price_lists"},
		{"add__price__lists", "add_price_lists"},
		{"Add Entries 123", "add_entries_123"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	t.Run("should scaffold an up and down pair", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "add price lists", "Create price list tables")
		require.NoError(t, err)

		assert.Len(t, mf.Version, 14)
		assert.True(t, strings.HasSuffix(mf.UpPath, "_add_price_lists.up.sql"))
		assert.True(t, strings.HasSuffix(mf.DownPath, "_add_price_lists.down.sql"))

		up, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(up), "add price lists")
		assert.Contains(t, string(up), "Create price list tables")
		assert.Contains(t, string(up), "Write your UP migration SQL here")

		down, err := os.ReadFile(mf.DownPath)
		require.NoError(t, err)
		assert.Contains(t, string(down), "Rollback")
		assert.Contains(t, string(down), "Write your DOWN migration SQL here")
	})

	t.Run("should create a missing migrations directory", func(t *testing.T) {
		nested := filepath.Join(t.TempDir(), "db", "migrations")

		mf, err := CreateMigration(nested, "init", "initial schema")
		require.NoError(t, err)
		require.NotNil(t, mf)

		info, err := os.Stat(nested)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

func TestListMigrations(t *testing.T) {
	write := func(t *testing.T, dir, name string) {
		t.Helper()
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- test"), 0644))
	}

	t.Run("should list each pair once", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{
			"000001_init_schema.up.sql", "000001_init_schema.down.sql",
			"000002_add_entries.up.sql", "000002_add_entries.down.sql",
		} {
			write(t, dir, name)
		}

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"000001_init_schema", "000002_add_entries"}, migrations)
	})

	t.Run("should ignore non-migration files and directories", func(t *testing.T) {
		dir := t.TempDir()
		write(t, dir, "000001_init.up.sql")
		write(t, dir, "000001_init.down.sql")
		write(t, dir, "README.md")
		write(t, dir, ".gitkeep")
		require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.up.sql"), 0755))

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_init"}, migrations)
	})

	t.Run("should treat a missing directory as empty", func(t *testing.T) {
		migrations, err := ListMigrations(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})
}
