package bot

import (
	"strings"
	"unicode"
)

// Fixed syntax-usage messages, returned verbatim on wrong argument counts.
const (
	UsageAdd  = "Usage: !add <term> <explanation>"
	UsageExpl = "Usage: !expl <term>"
)

// Command names recognized by the handler.
const (
	CmdAdd  = "!add"
	CmdExpl = "!expl"
)

// splitArgs splits s on runs of whitespace into at most n parts. The last
// part keeps its internal whitespace verbatim, so an explanation may
// contain tabs and newlines; only leading and trailing whitespace of the
// whole text is dropped.
func splitArgs(s string, n int) []string {
	var parts []string
	s = strings.TrimSpace(s)

	for len(parts) < n-1 {
		idx := strings.IndexFunc(s, unicode.IsSpace)
		if idx < 0 {
			break
		}
		parts = append(parts, s[:idx])
		s = strings.TrimLeftFunc(s[idx:], unicode.IsSpace)
	}

	if s != "" {
		parts = append(parts, s)
	}
	return parts
}

// commandWord returns the leading word of a message, or "" for an empty
// message.
func commandWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
