package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/roach88/searchcond/internal/queryir"
)

// DateRangeSeparator splits the two bounds of a daterange term.
const DateRangeSeparator = "|"

// dateLayouts are tried in order. Literals without a zone are UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// DateRange is an inclusive interval of instants.
type DateRange struct {
	From time.Time
	To   time.Time
}

// ParseDateRange parses a "from|to" term. Both parts are required and
// whitespace around each part is ignored.
//
// A range whose From is after its To parses successfully and matches
// nothing.
func ParseDateRange(term string) (DateRange, error) {
	parts := strings.Split(term, DateRangeSeparator)
	if len(parts) != 2 {
		return DateRange{}, malformedRange(
			fmt.Sprintf("expected two %q-separated parts, got %d", DateRangeSeparator, len(parts)), nil)
	}

	from, err := ParseDateTime(parts[0])
	if err != nil {
		return DateRange{}, malformedRange("invalid lower bound", err)
	}
	to, err := ParseDateTime(parts[1])
	if err != nil {
		return DateRange{}, malformedRange("invalid upper bound", err)
	}

	return DateRange{From: from, To: to}, nil
}

// ParseDateTime parses an ISO 8601 date or date-time literal.
// Results are normalized to UTC.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date/time literal")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a date/time literal", s)
}

// Predicate returns col >= From AND col <= To.
func (r DateRange) Predicate(col queryir.ColumnRef) queryir.Predicate {
	return queryir.And{Predicates: []queryir.Predicate{
		queryir.Compare{Column: col, Op: queryir.OpGte, Value: r.From},
		queryir.Compare{Column: col, Op: queryir.OpLte, Value: r.To},
	}}
}

// Contains reports whether t lies within the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}
