package glossary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAdded(t *testing.T) {
	msg := FormatAdded("widget", &AddResult{ID: 1, NormalIndex: 1, PermanentIndex: 1})
	assert.Contains(t, msg, "widget[1/p1]")

	// After moderation the two ranks diverge; both must be visible
	msg = FormatAdded("widget", &AddResult{ID: 9, NormalIndex: 3, PermanentIndex: 5})
	assert.Contains(t, msg, "widget[3/p5]")
}

func TestFormatEntryLine(t *testing.T) {
	t.Run("with metadata", func(t *testing.T) {
		line := FormatEntryLine(ReportEntry{
			Term:        "widget",
			NormalIndex: 2,
			Text:        "a cool thing",
			Metadata:    []string{"alice", "1.2.2026 12:00"},
		})
		assert.Equal(t, "widget[2]: a cool thing (alice, 1.2.2026 12:00)", line)
	})

	t.Run("without metadata", func(t *testing.T) {
		line := FormatEntryLine(ReportEntry{
			Term:        "widget",
			NormalIndex: 1,
			Text:        "a cool thing",
		})
		assert.Equal(t, "widget[1]: a cool thing", line)
	})
}

func TestFormatReportTitle(t *testing.T) {
	tests := []struct {
		name  string
		total int
		want  string
	}{
		{"none", 0, "no entry found"},
		{"one", 1, "found the following entry"},
		{"several", 3, "found the following 3 entries"},
		{"at the cap", 50, "found the following 50 entries"},
		{"over the cap", 51, "found 51 entries, showing the last 50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := &Report{Term: "widget", Total: tt.total}
			assert.Equal(t, tt.want, FormatReportTitle(report))
		})
	}
}

func TestFormatReportBody(t *testing.T) {
	t.Run("wraps lines in a code block", func(t *testing.T) {
		report := &Report{
			Term:  "widget",
			Total: 2,
			Entries: []ReportEntry{
				{Term: "widget", NormalIndex: 1, Text: "first"},
				{Term: "widget", NormalIndex: 2, Text: "second"},
			},
		}

		body := FormatReportBody(report)
		assert.True(t, strings.HasPrefix(body, "```\n"))
		assert.True(t, strings.HasSuffix(body, "\n```"))
		assert.Contains(t, body, "widget[1]: first\nwidget[2]: second")
	})

	t.Run("empty report has no body", func(t *testing.T) {
		assert.Equal(t, "", FormatReportBody(&Report{Term: "widget"}))
	})
}

func TestFormatReportFallback(t *testing.T) {
	report := &Report{
		Term:  "widget",
		Total: 1,
		Entries: []ReportEntry{
			{Term: "widget", NormalIndex: 1, Text: "first"},
		},
	}

	fallback := FormatReportFallback(report)
	assert.Equal(t, "found the following entry\nwidget[1]: first", fallback)

	assert.Equal(t, MsgNoEntryFound, FormatReportFallback(&Report{Term: "widget"}))
}
