package booking

import (
	"fmt"
	"time"
)

const isoDate = "2006-01-02"

// Date is a civil calendar date with no time-of-day component.
// Internally it is a time.Time pinned to midnight UTC so that day
// arithmetic never crosses DST boundaries.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO YYYY-MM-DD string. Calendar-invalid input
// (e.g. "2025-13-32") is rejected here, not at feed-parse time.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(isoDate, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t}, nil
}

// DateOf truncates a wall-clock instant to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) String() string { return d.t.Format(isoDate) }

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

func (d Date) After(o Date) bool { return d.t.After(o.t) }

func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

func (d Date) Year() int { return d.t.Year() }

func (d Date) Month() time.Month { return d.t.Month() }

func (d Date) Day() int { return d.t.Day() }

func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

func (d Date) AddDays(n int) Date {
	return Date{d.t.AddDate(0, 0, n)}
}

// NightsBetween returns the number of nights a guest staying from start
// to end would sleep over. Negative when end precedes start.
func NightsBetween(start, end Date) int {
	return int(end.t.Sub(start.t) / (24 * time.Hour))
}
