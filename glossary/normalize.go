package glossary

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ignorable matches runes that never affect term identity: control
// characters, format characters, and the default-ignorable code points
// (zero-width joiners, variation selectors and friends).
var ignorable = runes.Predicate(func(r rune) bool {
	return unicode.In(r, unicode.Cc, unicode.Cf, unicode.Other_Default_Ignorable_Code_Point)
})

// NormalizeTerm canonicalizes a display term into its lookup key:
// compatibility decomposition, Unicode case folding, removal of ignorable
// runes, then canonical recomposition. Two terms name the same glossary
// entry iff their normalized forms are equal.
//
// The function is deterministic, total, and idempotent.
func NormalizeTerm(term string) string {
	// cases.Fold is stateful, so the chain is built per call
	t := transform.Chain(
		norm.NFKD,
		cases.Fold(),
		runes.Remove(ignorable),
		norm.NFC,
	)

	key, _, err := transform.String(t, term)
	if err != nil {
		// transform.String only fails on transformer-internal errors, not
		// on malformed UTF-8 (norm replaces invalid bytes). Fall back to a
		// plain fold so lookup stays total.
		return strings.ToLower(term)
	}
	return key
}
