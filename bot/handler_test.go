package bot

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"explbot/config"
	"explbot/db"
	"explbot/errors"
	"explbot/glossary"
)

// newTestHandler wires a handler over a migrated temp database. The rate
// limit is generous so ordinary tests never trip it.
func newTestHandler(t *testing.T) (*Handler, *glossary.Store) {
	t.Helper()

	database, err := db.OpenWithMigrations(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	store := glossary.NewStore(database, nil)
	times, err := glossary.NewTimeFormatter("UTC", "2.1.2006 15:04")
	require.NoError(t, err)
	query := glossary.NewQuery(store, times, nil)

	rateCfg := config.RateConfig{CommandsPerMinute: 6000, Burst: 1000}
	return NewHandler(store, query, rateCfg, nil), store
}

func TestHandleAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("first add on empty store", func(t *testing.T) {
		handler, store := newTestHandler(t)

		resp, err := handler.Handle(ctx, "alice", "!add widget A cool thing")
		require.NoError(t, err)
		require.NotNil(t, resp)

		assert.Contains(t, resp.Text, "widget[1/p1]")
		assert.Nil(t, resp.Attachment)

		n, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("explanation keeps internal whitespace at parse time", func(t *testing.T) {
		handler, store := newTestHandler(t)

		_, err := handler.Handle(ctx, "alice", "!add widget A   cool\tthing")
		require.NoError(t, err)

		entries, err := store.EntriesByKey(ctx, glossary.NormalizeTerm("widget"))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		// Stored verbatim; collapsing happens at render time
		assert.Equal(t, "A   cool\tthing", entries[0].Expl)
	})

	t.Run("wrong argument count yields usage without storage access", func(t *testing.T) {
		handler, store := newTestHandler(t)

		resp, err := handler.Handle(ctx, "alice", "!add widget")
		require.NoError(t, err)
		assert.Equal(t, UsageAdd, resp.Text)

		n, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})

	t.Run("over-limit term is rejected and nothing is written", func(t *testing.T) {
		handler, store := newTestHandler(t)

		longTerm := strings.Repeat("x", glossary.MaxTermLength+1)
		resp, err := handler.Handle(ctx, "alice", "!add "+longTerm+" text")
		require.NoError(t, err)
		assert.Equal(t, glossary.MsgTermTooLong, resp.Text)

		n, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})

	t.Run("over-limit explanation is rejected", func(t *testing.T) {
		handler, store := newTestHandler(t)

		longExpl := strings.Repeat("x", glossary.MaxExplanationLength+1)
		resp, err := handler.Handle(ctx, "alice", "!add widget "+longExpl)
		require.NoError(t, err)
		assert.Equal(t, glossary.MsgExplanationTooLong, resp.Text)

		n, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})

	t.Run("term length is measured in UTF-16 units", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		// 26 astral-plane runes are 52 UTF-16 units, over the 50 limit
		emojiTerm := strings.Repeat("\U0001F600", 26)
		resp, err := handler.Handle(ctx, "alice", "!add "+emojiTerm+" text")
		require.NoError(t, err)
		assert.Equal(t, glossary.MsgTermTooLong, resp.Text)
	})
}

func TestHandleExpl(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store yields no entry found without attachment", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		resp, err := handler.Handle(ctx, "alice", "!expl widget")
		require.NoError(t, err)
		assert.Equal(t, glossary.MsgNoEntryFound, resp.Text)
		assert.Nil(t, resp.Attachment)
	})

	t.Run("single entry report", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		_, err := handler.Handle(ctx, "alice", "!add widget A cool thing")
		require.NoError(t, err)

		resp, err := handler.Handle(ctx, "bob", "!expl widget")
		require.NoError(t, err)
		require.NotNil(t, resp.Attachment)

		assert.Equal(t, "found the following entry", resp.Attachment.Title)
		assert.Contains(t, resp.Attachment.Body, "widget[1]: A cool thing")
		assert.Contains(t, resp.Attachment.Body, "alice")
		assert.Contains(t, resp.Attachment.Fallback, "widget[1]: A cool thing")
	})

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		_, err := handler.Handle(ctx, "alice", "!add Café A place")
		require.NoError(t, err)

		resp, err := handler.Handle(ctx, "bob", "!expl CAFÉ")
		require.NoError(t, err)
		require.NotNil(t, resp.Attachment)
		assert.Contains(t, resp.Attachment.Body, "A place")
	})

	t.Run("multi-word query is a syntax error", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		resp, err := handler.Handle(ctx, "alice", "!expl too many words")
		require.NoError(t, err)
		assert.Equal(t, UsageExpl, resp.Text)
	})

	t.Run("bare command is a syntax error", func(t *testing.T) {
		handler, _ := newTestHandler(t)

		resp, err := handler.Handle(ctx, "alice", "!expl")
		require.NoError(t, err)
		assert.Equal(t, UsageExpl, resp.Text)
	})
}

func TestHandleUnknownCommand(t *testing.T) {
	handler, _ := newTestHandler(t)

	_, err := handler.Handle(context.Background(), "alice", "!frobnicate widget")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRequestError(err))
}

func TestHandleRateLimit(t *testing.T) {
	database, err := db.OpenWithMigrations(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	store := glossary.NewStore(database, nil)
	query := glossary.NewQuery(store, nil, nil)

	// One sustained command per minute with a burst of two
	handler := NewHandler(store, query, config.RateConfig{CommandsPerMinute: 1, Burst: 2}, nil)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		resp, err := handler.Handle(ctx, "alice", "!expl widget")
		require.NoError(t, err)
		assert.NotEqual(t, MsgRateLimited, resp.Text)
	}

	resp, err := handler.Handle(ctx, "alice", "!expl widget")
	require.NoError(t, err)
	assert.Equal(t, MsgRateLimited, resp.Text)

	// Other users have their own bucket
	resp, err = handler.Handle(ctx, "bob", "!expl widget")
	require.NoError(t, err)
	assert.NotEqual(t, MsgRateLimited, resp.Text)
}
