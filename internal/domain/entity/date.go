package entity

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// Date is a calendar day without a time component.
// It serializes as "YYYY-MM-DD" in snapshots and API payloads.
type Date struct {
	t time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// Today returns the current calendar day in UTC.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// String returns the "YYYY-MM-DD" representation.
func (d Date) String() string {
	return d.t.Format(dateLayout)
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Compare returns -1, 0 or 1 depending on whether d is before, equal to or
// after other.
func (d Date) Compare(other Date) int {
	return d.t.Compare(other.t)
}

// Year returns the calendar year.
func (d Date) Year() int { return d.t.Year() }

// Month returns the calendar month.
func (d Date) Month() time.Month { return d.t.Month() }

// InMonth reports whether the date falls in the given year and month.
func (d Date) InMonth(year int, month time.Month) bool {
	return d.t.Year() == year && d.t.Month() == month
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler. It accepts the bare calendar
// form and, for compatibility with older exported documents, full RFC 3339
// timestamps whose time component is discarded.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.t = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q", s)
	}
	d.t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return nil
}
