package glossary

import "unicode/utf16"

// Length limits measured in UTF-16 code units. Chat clients measure text
// width in UTF-16 units, so validation counts the same way: astral-plane
// runes count 2, everything else 1.
const (
	MaxTermLength        = 50
	MaxExplanationLength = 200
)

// UTF16Length returns the number of 16-bit code units needed to encode s
// as UTF-16. This is neither the byte length nor the rune count.
func UTF16Length(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			// Invalid rune; encodes as a single replacement character
			n++
		}
	}
	return n
}

// ValidTermLength reports whether term fits the 50-unit limit.
func ValidTermLength(term string) bool {
	return UTF16Length(term) <= MaxTermLength
}

// ValidExplanationLength reports whether expl fits the 200-unit limit.
func ValidExplanationLength(expl string) bool {
	return UTF16Length(expl) <= MaxExplanationLength
}
