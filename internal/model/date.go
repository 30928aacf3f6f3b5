package model

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the wire format for date-only fields.
const DateFormat = "2006-01-02"

// Date is a day-granularity timestamp as the API serializes it.
// The server sends either "2006-01-02" or a full RFC 3339 timestamp
// depending on the endpoint; both decode into a Date.
type Date struct {
	time.Time
}

// NewDate builds a Date truncated to day granularity in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// UnmarshalJSON accepts "2006-01-02", RFC 3339, or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}

	if t, err := time.Parse(DateFormat, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// MarshalJSON emits the date-only wire format, or null when zero.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateFormat) + `"`), nil
}

// Day truncates to midnight UTC, the granularity range filters use.
func (d Date) Day() time.Time {
	y, m, dd := d.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}
