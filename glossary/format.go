package glossary

import (
	"fmt"
	"strings"
)

// Fixed user-facing messages.
const (
	MsgTermTooLong        = "Term is too long (max 50 characters)"
	MsgExplanationTooLong = "Explanation is too long (max 200 characters)"
	MsgNoEntryFound       = "no entry found"
)

// FormatAdded renders the add confirmation. The permanent index is
// prefixed with p to mark it as the stable historical reference.
func FormatAdded(term string, result *AddResult) string {
	return fmt.Sprintf("Added explanation: %s[%d/p%d]", term, result.NormalIndex, result.PermanentIndex)
}

// FormatEntryLine renders one report entry:
// "<term>[<n>]: <text>" plus the comma-joined metadata in parentheses when
// any metadata is present.
func FormatEntryLine(e ReportEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d]: %s", e.Term, e.NormalIndex, e.Text)
	if len(e.Metadata) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(e.Metadata, ", "))
	}
	return b.String()
}

// FormatReportTitle renders the result-set header for a report.
func FormatReportTitle(r *Report) string {
	switch {
	case r.Total == 0:
		return MsgNoEntryFound
	case r.Total == 1:
		return "found the following entry"
	case r.Truncated():
		return fmt.Sprintf("found %d entries, showing the last %d", r.Total, MaxVisibleEntries)
	default:
		return fmt.Sprintf("found the following %d entries", r.Total)
	}
}

// FormatReportBody renders the visible entries joined by newline inside a
// literal code block. Empty reports have no body.
func FormatReportBody(r *Report) string {
	if len(r.Entries) == 0 {
		return ""
	}

	lines := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		lines = append(lines, FormatEntryLine(e))
	}
	return "```\n" + strings.Join(lines, "\n") + "\n```"
}

// FormatReportFallback renders the plain-text form shown when a client
// cannot display the structured title + body report.
func FormatReportFallback(r *Report) string {
	if len(r.Entries) == 0 {
		return MsgNoEntryFound
	}

	lines := make([]string, 0, len(r.Entries)+1)
	lines = append(lines, FormatReportTitle(r))
	for _, e := range r.Entries {
		lines = append(lines, FormatEntryLine(e))
	}
	return strings.Join(lines, "\n")
}
