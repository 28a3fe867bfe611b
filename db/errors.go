package db

import (
	"strings"

	"explbot/errors"
)

// ErrDatabaseClosed marks operations attempted after the connection pool
// was closed. During shutdown the serve command closes the database while
// WebSocket sessions and in-flight webhook requests may still be
// dispatching commands; those land here rather than on a real failure.
var ErrDatabaseClosed = errors.New("database is closed")

// IsDatabaseClosed reports whether err means the pool is closed, either as
// a wrapped ErrDatabaseClosed or as the raw message database/sql and the
// sqlite3 driver produce. The message match is unavoidable for the latter:
// the drivers' closed-pool errors are plain strings with no sentinel to
// compare against.
func IsDatabaseClosed(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrDatabaseClosed) {
		return true
	}

	return strings.Contains(err.Error(), "database is closed")
}
