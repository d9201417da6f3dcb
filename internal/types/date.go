// Package types implements special types for the backend.
package types

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedDate is returned when a string cannot be parsed as a CompactDate.
var ErrMalformedDate = errors.New("date must be in DD/MM/YY format")

// CompactDate is a calendar date in the application's compact DD/MM/YY
// representation. The two-digit year always maps to 2000+YY, there is no
// century rollover. CompactDate has day granularity and no timezone.
type CompactDate time.Time

// NewDate returns a new CompactDate.
func NewDate(year int, month time.Month, day int) CompactDate {
	return CompactDate(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf truncates a time to the CompactDate of the day it occurs in.
func DateOf(t time.Time) CompactDate {
	year, month, day := t.Date()
	return NewDate(year, month, day)
}

// ParseDate parses a DD/MM/YY string.
//
// The string must consist of exactly three numeric tokens separated by "/".
// Anything else, including dates that do not exist on the calendar, returns
// ErrMalformedDate.
func ParseDate(s string) (CompactDate, error) {
	tokens := strings.Split(s, "/")
	if len(tokens) != 3 {
		return CompactDate{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}

	numbers := make([]int, 3)
	for i, token := range tokens {
		n, err := strconv.Atoi(token)
		if err != nil {
			return CompactDate{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
		}
		numbers[i] = n
	}

	day, month, year := numbers[0], numbers[1], numbers[2]
	if year < 0 || year > 99 {
		return CompactDate{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}

	date := time.Date(2000+year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

	// time.Date normalizes out-of-range values, e.g. 31/04 becomes 01/05.
	// A date that does not round-trip did not exist on the calendar.
	if date.Day() != day || int(date.Month()) != month || date.Year() != 2000+year {
		return CompactDate{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}

	return CompactDate(date), nil
}

// String returns the date formatted as DD/MM/YY.
func (d CompactDate) String() string {
	t := time.Time(d)
	return fmt.Sprintf("%02d/%02d/%02d", t.Day(), int(t.Month()), t.Year()%100)
}

// Time returns the date as a time.Time at midnight UTC.
func (d CompactDate) Time() time.Time {
	return time.Time(d)
}

// IsZero reports if the date is the zero value.
func (d CompactDate) IsZero() bool {
	return time.Time(d).IsZero()
}

// Before reports whether the date d is before e.
func (d CompactDate) Before(e CompactDate) bool {
	return time.Time(d).Before(time.Time(e))
}

// After reports whether the date d is after e.
func (d CompactDate) After(e CompactDate) bool {
	return time.Time(d).After(time.Time(e))
}

// Equal reports whether d and e are the same day.
func (d CompactDate) Equal(e CompactDate) bool {
	return time.Time(d).Equal(time.Time(e))
}

// AddDays adds a number of days, which may be negative.
func (d CompactDate) AddDays(days int) CompactDate {
	return CompactDate(time.Time(d).AddDate(0, 0, days))
}

// InWindow reports whether the date falls into the rolling window
// [start, end). Rolling windows are start-inclusive and end-exclusive.
func (d CompactDate) InWindow(start, end CompactDate) bool {
	return !d.Before(start) && d.Before(end)
}

// Between reports whether the date falls into the explicit range
// [from, until]. User-picked filter ranges are inclusive on both ends.
func (d CompactDate) Between(from, until CompactDate) bool {
	return !d.Before(from) && !d.After(until)
}

// MarshalJSON implements the json.Marshaler interface.
// The output is the DD/MM/YY string.
func (d CompactDate) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *CompactDate) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

// Scan reads the value from the database.
func (d *CompactDate) Scan(value interface{}) (err error) {
	nullTime := &sql.NullTime{}
	err = nullTime.Scan(value)
	*d = CompactDate(nullTime.Time)
	return err
}

// Value returns the value for the SQL driver to write to the database.
func (d CompactDate) Value() (driver.Value, error) {
	year, month, day := time.Time(d).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

// GormDataType defines the data type used by gorm for the type.
func (CompactDate) GormDataType() string {
	return "date"
}
