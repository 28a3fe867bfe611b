package glossary

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQuery(t *testing.T, store *Store) *Query {
	t.Helper()

	times, err := NewTimeFormatter("UTC", "2.1.2006 15:04")
	require.NoError(t, err)
	return NewQuery(store, times, nil)
}

func TestQueryExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store yields empty report", func(t *testing.T) {
		store := newTestStore(t)
		query := newTestQuery(t, store)

		report, err := query.Execute(ctx, "widget")
		require.NoError(t, err)
		assert.Equal(t, 0, report.Total)
		assert.Empty(t, report.Entries)
		assert.False(t, report.Truncated())
	})

	t.Run("all-enabled history ranks identically", func(t *testing.T) {
		store := newTestStore(t)
		query := newTestQuery(t, store)

		for i := 1; i <= 3; i++ {
			_, err := store.Add(ctx, "alice", "widget", fmt.Sprintf("expl %d", i))
			require.NoError(t, err)
		}

		report, err := query.Execute(ctx, "widget")
		require.NoError(t, err)
		require.Equal(t, 3, report.Total)

		for i, entry := range report.Entries {
			assert.Equal(t, i+1, entry.NormalIndex)
			assert.Equal(t, i+1, entry.PermanentIndex)
		}
	})

	t.Run("disabling leaves a permanent gap and closes normal ranks", func(t *testing.T) {
		store := newTestStore(t)
		query := newTestQuery(t, store)

		var ids []int64
		for i := 1; i <= 3; i++ {
			result, err := store.Add(ctx, "alice", "widget", fmt.Sprintf("expl %d", i))
			require.NoError(t, err)
			ids = append(ids, result.ID)
		}
		require.NoError(t, store.Disable(ctx, ids[1]))

		report, err := query.Execute(ctx, "widget")
		require.NoError(t, err)
		require.Equal(t, 2, report.Total)

		// First entry untouched
		assert.Equal(t, 1, report.Entries[0].NormalIndex)
		assert.Equal(t, 1, report.Entries[0].PermanentIndex)

		// Third entry closes up in normal rank but keeps permanent slot 3
		assert.Equal(t, 2, report.Entries[1].NormalIndex)
		assert.Equal(t, 3, report.Entries[1].PermanentIndex)
		assert.Equal(t, "expl 3", report.Entries[1].Text)
	})

	t.Run("lookup is normalization-insensitive", func(t *testing.T) {
		store := newTestStore(t)
		query := newTestQuery(t, store)

		_, err := store.Add(ctx, "alice", "Café", "a place")
		require.NoError(t, err)

		report, err := query.Execute(ctx, "CAFÉ")
		require.NoError(t, err)
		require.Equal(t, 1, report.Total)
		assert.Equal(t, "CAFÉ", report.Term, "report carries the query as typed")
		assert.Equal(t, "Café", report.Entries[0].Term, "entry carries its stored casing")
	})

	t.Run("whitespace runs collapse in entry text", func(t *testing.T) {
		store := newTestStore(t)
		query := newTestQuery(t, store)

		_, err := store.Add(ctx, "alice", "widget", "a\tb\nc")
		require.NoError(t, err)

		report, err := query.Execute(ctx, "widget")
		require.NoError(t, err)
		require.Len(t, report.Entries, 1)
		assert.Equal(t, "a b c", report.Entries[0].Text)
	})

	t.Run("metadata lists author then timestamp", func(t *testing.T) {
		store := newTestStore(t)
		query := newTestQuery(t, store)

		_, err := store.Add(ctx, "alice", "widget", "text")
		require.NoError(t, err)

		report, err := query.Execute(ctx, "widget")
		require.NoError(t, err)
		require.Len(t, report.Entries, 1)

		meta := report.Entries[0].Metadata
		require.Len(t, meta, 2)
		assert.Equal(t, "alice", meta[0])
		assert.Regexp(t, `^\d{1,2}\.\d{1,2}\.\d{4} \d{2}:\d{2}$`, meta[1])
	})

	t.Run("anonymous entry has timestamp-only metadata", func(t *testing.T) {
		store := newTestStore(t)
		query := newTestQuery(t, store)

		_, err := store.Add(ctx, "", "widget", "text")
		require.NoError(t, err)

		report, err := query.Execute(ctx, "widget")
		require.NoError(t, err)
		require.Len(t, report.Entries, 1)
		require.Len(t, report.Entries[0].Metadata, 1)
	})

	t.Run("caps at the most recent fifty", func(t *testing.T) {
		store := newTestStore(t)
		query := newTestQuery(t, store)

		for i := 1; i <= MaxVisibleEntries+1; i++ {
			_, err := store.Add(ctx, "alice", "widget", fmt.Sprintf("expl %d", i))
			require.NoError(t, err)
		}

		report, err := query.Execute(ctx, "widget")
		require.NoError(t, err)

		assert.Equal(t, MaxVisibleEntries+1, report.Total)
		assert.True(t, report.Truncated())
		require.Len(t, report.Entries, MaxVisibleEntries)

		// The oldest entry fell off; the visible list is the tail
		assert.Equal(t, "expl 2", report.Entries[0].Text)
		assert.Equal(t, 2, report.Entries[0].NormalIndex)
		assert.Equal(t, fmt.Sprintf("expl %d", MaxVisibleEntries+1), report.Entries[len(report.Entries)-1].Text)
	})
}

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a\tb\nc", "a b c"},
		{"a   b", "a b"},
		{" padded \t text \n", "padded text"},
		{"plain", "plain"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CollapseWhitespace(tt.input))
	}
}
