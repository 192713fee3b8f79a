package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	t.Run("creates up and down files", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "add exchange rates")

		require.NoError(t, err)
		assert.FileExists(t, mf.UpPath)
		assert.FileExists(t, mf.DownPath)
		assert.True(t, strings.HasSuffix(mf.UpPath, "_add_exchange_rates.up.sql"))
		assert.True(t, strings.HasSuffix(mf.DownPath, "_add_exchange_rates.down.sql"))
		assert.Len(t, mf.Version, 14)
	})

	t.Run("creates the directory when missing", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "migrations")

		mf, err := CreateMigration(dir, "init")

		require.NoError(t, err)
		assert.FileExists(t, mf.UpPath)
	})
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "AddAccounts", "addaccounts"},
		{"spaces to underscores", "add fiscal years", "add_fiscal_years"},
		{"collapses separators", "add - -rates", "add_rates"},
		{"drops punctuation", "add: rates!", "add_rates"},
		{"trims trailing separator", "add rates ", "add_rates"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestListMigrations(t *testing.T) {
	t.Run("lists only up migrations", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{
			"20260101000000_one.up.sql",
			"20260101000000_one.down.sql",
			"20260102000000_two.up.sql",
			"notes.txt",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- x\n"), 0644))
		}

		migrations, err := ListMigrations(dir)

		require.NoError(t, err)
		assert.Equal(t, []string{"20260101000000_one", "20260102000000_two"}, migrations)
	})

	t.Run("missing directory yields empty list", func(t *testing.T) {
		migrations, err := ListMigrations(filepath.Join(t.TempDir(), "absent"))

		require.NoError(t, err)
		assert.Empty(t, migrations)
	})
}
