package domain

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// CalDate is a calendar date: year, month and day with no time-of-day and no
// timezone. Workout dates are stored and compared as CalDate values so that a
// workout logged on "2025-09-01" stays on that day no matter which timezone
// the server or the client runs in.
//
// Conversions always go through the wall-clock date fields of a time.Time
// (Date()), never through a UTC instant. Formatting a local midnight as an
// ISO instant and taking the date part shifts the day for any offset other
// than UTC, which is exactly the bug this type exists to prevent.
type CalDate struct {
	Year  int
	Month time.Month
	Day   int
}

// CalDateOf extracts the calendar date from t using t's own wall-clock
// fields, in whatever location t carries.
func CalDateOf(t time.Time) CalDate {
	y, m, d := t.Date()
	return CalDate{Year: y, Month: m, Day: d}
}

// ParseCalDate parses a date string in YYYY-MM-DD form.
func ParseCalDate(s string) (CalDate, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return CalDate{}, fmt.Errorf("invalid calendar date %q: %w", s, err)
	}
	return CalDateOf(t), nil
}

// String formats the date as YYYY-MM-DD.
func (d CalDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether d is the zero value.
func (d CalDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Before reports whether d is earlier than other.
func (d CalDate) Before(other CalDate) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// Time returns midnight of the calendar date in loc. Used when a concrete
// time.Time is unavoidable (e.g. the database driver); the resulting instant
// carries the same wall-clock date fields as d.
func (d CalDate) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// MonthRange returns the first and last day (inclusive) of the given month.
// month0 is zero-based (0 = January), matching the convention of the calendar
// clients consuming this API.
func MonthRange(year, month0 int) (first, last CalDate) {
	m := time.Month(month0 + 1)
	first = CalDate{Year: year, Month: m, Day: 1}
	// Day 0 of the following month is the last day of this one; time.Date
	// normalizes it using calendar arithmetic only.
	lastDay := time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC)
	return first, CalDateOf(lastDay)
}

// Value implements driver.Valuer. The date is handed to the driver as a
// midnight UTC time.Time whose wall-clock fields are the calendar date; the
// column type is DATE, so only those fields are persisted.
func (d CalDate) Value() (driver.Value, error) {
	return d.Time(time.UTC), nil
}

// Scan implements sql.Scanner for DATE columns.
func (d *CalDate) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = CalDateOf(v)
		return nil
	case string:
		parsed, err := ParseCalDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseCalDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case nil:
		*d = CalDate{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into CalDate", src)
	}
}

// MarshalJSON encodes the date as a "YYYY-MM-DD" string.
func (d CalDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string.
func (d *CalDate) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("calendar date must be a JSON string, got %s", data)
	}
	parsed, err := ParseCalDate(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// GormDataType tells GORM to use a plain DATE column for CalDate fields.
func (CalDate) GormDataType() string {
	return "date"
}
