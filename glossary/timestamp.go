package glossary

import (
	"time"

	"explbot/errors"
)

// TimeFormatter renders entry timestamps in a fixed zone with a fixed
// layout. The store keeps raw UTC epoch values; presentation concerns live
// entirely here.
type TimeFormatter struct {
	loc    *time.Location
	layout string
}

// NewTimeFormatter resolves an IANA zone name and a Go reference-time
// layout into a formatter.
func NewTimeFormatter(timezone, layout string) (*TimeFormatter, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid timezone %q", timezone)
	}
	if layout == "" {
		return nil, errors.New("time format cannot be empty")
	}
	return &TimeFormatter{loc: loc, layout: layout}, nil
}

// Format renders t in the configured zone.
func (f *TimeFormatter) Format(t time.Time) string {
	return t.In(f.loc).Format(f.layout)
}
