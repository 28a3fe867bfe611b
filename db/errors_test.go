package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"explbot/errors"
)

func TestIsDatabaseClosed(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.False(t, IsDatabaseClosed(nil))
	})

	t.Run("wrapped sentinel", func(t *testing.T) {
		err := errors.Wrap(ErrDatabaseClosed, "adding explanation")
		assert.True(t, IsDatabaseClosed(err))
	})

	t.Run("unrelated error", func(t *testing.T) {
		assert.False(t, IsDatabaseClosed(errors.New("disk I/O error")))
	})

	t.Run("raw driver error after Close", func(t *testing.T) {
		database, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
		require.NoError(t, err)
		require.NoError(t, database.Close())

		var n int
		err = database.QueryRow("SELECT 1").Scan(&n)
		require.Error(t, err)
		assert.True(t, IsDatabaseClosed(err))

		// Wrapping at a store boundary must not defeat detection
		assert.True(t, IsDatabaseClosed(errors.Wrap(err, "counting explanations")))
	})
}
