package glossary

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"explbot/errors"
)

// Store persists glossary entries. All writes are append-only; the only
// mutation ever applied to an existing row is the enabled flag.
type Store struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// NewStore creates a glossary store over an opened, migrated database.
func NewStore(db *sql.DB, logger *zap.SugaredLogger) *Store {
	return &Store{
		db:     db,
		logger: logger,
	}
}

// AddResult reports where a freshly inserted entry landed in its term's
// history.
type AddResult struct {
	// ID is the store-assigned monotonic identifier.
	ID int64

	// NormalIndex is the 1-based rank among enabled entries for the term.
	NormalIndex int

	// PermanentIndex is the 1-based rank among all historical entries for
	// the term, stable under later soft-deletes.
	PermanentIndex int
}

// Add inserts a new enabled entry and computes both of its ranks.
//
// The insert and the rank counts run in a single transaction, with the
// committed id as the sole upper bound of both counts. Two concurrent adds
// for the same term therefore always receive distinct index pairs, and the
// counts can never skip or double-count a row.
func (s *Store) Add(ctx context.Context, nick, term, explanation string) (*AddResult, error) {
	key := NormalizeTerm(term)
	now := time.Now().UTC().UnixMilli()

	var storedNick sql.NullString
	if nick != "" {
		storedNick = sql.NullString{String: nick, Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback() // Rollback if not committed

	res, err := tx.ExecContext(ctx, `
		INSERT INTO explanations (nick, item, item_norm, expl, datetime, enabled)
		VALUES (?, ?, ?, ?, ?, 1)`,
		storedNick, term, key, explanation, now)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to insert explanation for %s", term)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read inserted id")
	}

	// Both ranks count strictly older rows for the same key, bounded by the
	// just-inserted id on the same transaction. Enabled is nonzero-true in
	// the schema, so the count is over enabled != 0 rather than enabled = 1.
	var priorAll, priorEnabled int
	err = tx.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN enabled != 0 THEN 1 ELSE 0 END), 0)
		FROM explanations
		WHERE item_norm = ? AND id < ?`,
		key, id).Scan(&priorAll, &priorEnabled)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to rank explanation %d", id)
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit transaction")
	}

	result := &AddResult{
		ID:             id,
		NormalIndex:    priorEnabled + 1,
		PermanentIndex: priorAll + 1,
	}

	if s.logger != nil {
		s.logger.Debugw("Explanation added",
			"id", result.ID,
			"term", term,
			"term_key", key,
			"normal_index", result.NormalIndex,
			"permanent_index", result.PermanentIndex,
		)
	}

	return result, nil
}

// EntriesByKey returns every entry recorded under the normalized key,
// enabled or not, ascending by id.
func (s *Store) EntriesByKey(ctx context.Context, key string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, nick, item, item_norm, expl, datetime, enabled
		FROM explanations
		WHERE item_norm = ?
		ORDER BY id ASC`,
		key)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query explanations for %s", key)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Disable soft-deletes an entry. The row stays in place so the permanent
// numbering of every other entry is unaffected; only visibility changes.
// This is the moderation hook; it carries no authorization semantics.
func (s *Store) Disable(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE explanations SET enabled = 0 WHERE id = ?`, id)
	if err != nil {
		return errors.Wrapf(err, "failed to disable explanation %d", id)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return errors.Wrapf(errors.ErrNotFound, "explanation %d", id)
	}

	if s.logger != nil {
		s.logger.Infow("Explanation disabled", "id", id)
	}
	return nil
}

// Count returns the total number of rows in the table, enabled or not.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM explanations`).Scan(&n)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count explanations")
	}
	return n, nil
}

// scanEntry maps one result row into a typed Entry. Nullable columns become
// pointer fields here, at the storage boundary, so nothing above ever sees
// raw driver values.
func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		entry    Entry
		nick     sql.NullString
		datetime sql.NullInt64
		enabled  int64
	)

	if err := rows.Scan(&entry.ID, &nick, &entry.Item, &entry.ItemNorm, &entry.Expl, &datetime, &enabled); err != nil {
		return Entry{}, errors.Wrap(err, "failed to scan explanation row")
	}

	if nick.Valid {
		entry.Nick = &nick.String
	}
	if datetime.Valid {
		t := time.UnixMilli(datetime.Int64).UTC()
		entry.Datetime = &t
	}
	entry.Enabled = enabled != 0

	return entry, nil
}
