package glossary

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// MaxVisibleEntries caps how many entries a single report shows. When a
// term has more, the report keeps the most recently inserted ones.
const MaxVisibleEntries = 50

// ReportEntry is one visible entry of a query report.
type ReportEntry struct {
	// Term is the entry's stored display term (original casing).
	Term string

	// NormalIndex is the 1-based rank among the term's enabled entries.
	NormalIndex int

	// PermanentIndex is the 1-based rank among all of the term's entries.
	// Disabled entries consume a slot here, so gaps are expected.
	PermanentIndex int

	// Text is the explanation with whitespace runs collapsed to single
	// spaces.
	Text string

	// Metadata holds the author nick and the formatted submission time,
	// in that order, when present.
	Metadata []string
}

// Report is the outcome of looking up a term.
type Report struct {
	// Term is the query text as the user typed it.
	Term string

	// Total is the number of enabled entries for the term, before capping.
	Total int

	// Entries is the visible list, at most MaxVisibleEntries long. When
	// Total exceeds the cap this is the tail of the filtered list.
	Entries []ReportEntry
}

// Truncated reports whether the visible list was capped.
func (r *Report) Truncated() bool {
	return r.Total > MaxVisibleEntries
}

// Query retrieves, filters, ranks, and caps the entries for a term.
type Query struct {
	store  *Store
	times  *TimeFormatter
	logger *zap.SugaredLogger
}

// NewQuery creates a query engine over the store. The formatter may be nil,
// in which case timestamps are omitted from entry metadata.
func NewQuery(store *Store, times *TimeFormatter, logger *zap.SugaredLogger) *Query {
	return &Query{
		store:  store,
		times:  times,
		logger: logger,
	}
}

// Execute looks up every enabled entry for the term.
//
// The walk keeps two counters over the id-ordered history: the permanent
// index advances for every entry, the normal index only for enabled ones.
// Disabled entries vanish from the output but still occupy a permanent
// slot, so a moderated entry leaves a numbering gap while the normal
// indices of later entries close up.
func (q *Query) Execute(ctx context.Context, term string) (*Report, error) {
	key := NormalizeTerm(term)

	entries, err := q.store.EntriesByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	var visible []ReportEntry
	normal := 1
	for permanent, entry := range entries {
		if !entry.Enabled {
			continue
		}
		visible = append(visible, ReportEntry{
			Term:           entry.Item,
			NormalIndex:    normal,
			PermanentIndex: permanent + 1,
			Text:           CollapseWhitespace(entry.Expl),
			Metadata:       q.metadata(entry),
		})
		normal++
	}

	report := &Report{
		Term:    term,
		Total:   len(visible),
		Entries: visible,
	}
	if len(visible) > MaxVisibleEntries {
		report.Entries = visible[len(visible)-MaxVisibleEntries:]
	}

	if q.logger != nil {
		q.logger.Debugw("Glossary lookup",
			"term", term,
			"term_key", key,
			"total", report.Total,
			"shown", len(report.Entries),
		)
	}

	return report, nil
}

// metadata builds the ordered metadata list: author first, then the
// formatted local timestamp.
func (q *Query) metadata(entry Entry) []string {
	var meta []string
	if entry.Nick != nil {
		meta = append(meta, *entry.Nick)
	}
	if entry.Datetime != nil && q.times != nil {
		meta = append(meta, q.times.Format(*entry.Datetime))
	}
	return meta
}

// CollapseWhitespace replaces every run of whitespace characters,
// including tabs and newlines, with a single space.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
