// Package glossary implements the explanation glossary: an append-only,
// soft-deletable store of term explanations with Unicode-aware term
// normalization and dual ranking (among enabled entries and among all
// historical entries for a term).
package glossary

import "time"

// Entry is one recorded explanation. Rows are immutable after creation
// except for Enabled, which moderation may flip to hide an entry without
// disturbing the historical numbering of its neighbours.
type Entry struct {
	// ID is assigned by the store, strictly increasing across the whole
	// table, and never reused. It is the sole ordering key for a term's
	// history.
	ID int64

	// Nick is the submitting user. Nil for legacy rows.
	Nick *string

	// Item is the display term exactly as submitted.
	Item string

	// ItemNorm is the normalized lookup key, always NormalizeTerm(Item).
	ItemNorm string

	// Expl is the explanation body.
	Expl string

	// Datetime is the submission time in UTC. Nil for legacy rows.
	Datetime *time.Time

	// Enabled is true for visible entries. Disabled entries still occupy
	// a permanent-index slot.
	Enabled bool
}
