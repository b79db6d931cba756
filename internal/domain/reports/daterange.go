package reports

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date format accepted for report bounds.
const DateLayout = "2006-01-02"

// Range is a half-open UTC interval [Start, End). A nil bound is unbounded.
type Range struct {
	Start *time.Time
	End   *time.Time
}

// NormalizeRange converts inclusive calendar dates into a half-open UTC range.
// from becomes midnight UTC of that day, to becomes midnight UTC of the
// following day so that every movement on the to-date is included.
// Empty or malformed values leave the bound open.
func NormalizeRange(from, to string) Range {
	var r Range
	if d, ok := parseDay(from); ok {
		r.Start = &d
	}
	if d, ok := parseDay(to); ok {
		next := d.AddDate(0, 0, 1)
		r.End = &next
	}
	return r
}

func parseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Contains reports whether t falls inside the range.
func (r Range) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && !t.Before(*r.End) {
		return false
	}
	return true
}

// IsUnbounded reports whether neither bound is set.
func (r Range) IsUnbounded() bool {
	return r.Start == nil && r.End == nil
}

// Before returns the range of everything strictly before r.Start.
// Without a start it returns nil: there is no history before an open range.
func (r Range) Before() *Range {
	if r.Start == nil {
		return nil
	}
	end := *r.Start
	return &Range{End: &end}
}
