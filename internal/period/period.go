// Package period identifies calendar months the way the app's month picker does:
// a year plus a 0-based month index.
package period

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidPeriod is returned for keys that are not "YYYY-MM".
var ErrInvalidPeriod = errors.New("invalid period")

// Period is a calendar month. Month is 0-based (0 = January).
type Period struct {
	Year  int
	Month int
}

// New returns the period for year and a 0-based month.
func New(year, month int) (Period, error) {
	if month < 0 || month > 11 {
		return Period{}, fmt.Errorf("%w: month %d out of range 0-11", ErrInvalidPeriod, month)
	}
	if year < 1 || year > 9999 {
		return Period{}, fmt.Errorf("%w: year %d out of range", ErrInvalidPeriod, year)
	}
	return Period{Year: year, Month: month}, nil
}

// Of returns the period containing t, in t's location.
func Of(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month()) - 1}
}

// Parse parses "2024-01" (1-based month, as written by humans).
func Parse(s string) (Period, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Period{}, fmt.Errorf("%w: year in %q", ErrInvalidPeriod, s)
	}

	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Period{}, fmt.Errorf("%w: month in %q", ErrInvalidPeriod, s)
	}

	return New(year, month-1)
}

// String returns the "YYYY-MM" key.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month+1)
}

// Before reports whether p is an earlier month than o.
func (p Period) Before(o Period) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Month < o.Month
}

// Contains reports whether t falls in p, in t's location.
func (p Period) Contains(t time.Time) bool {
	return Of(t) == p
}

// Start returns the first instant of the period in loc.
func (p Period) Start(loc *time.Location) time.Time {
	return time.Date(p.Year, time.Month(p.Month+1), 1, 0, 0, 0, 0, loc)
}
