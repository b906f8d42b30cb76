// Package calendar is the single source of "today" for the tracker.
// Every day comparison goes through Day, the canonical YYYY-MM-DD key, so the
// rollover happens at the same instant for every task and every component.
package calendar

import (
	"fmt"
	"time"
)

// Layout is the canonical day key format.
const Layout = "2006-01-02"

// Day is a calendar day key in canonical YYYY-MM-DD form. Canonical keys
// order lexically the same way they order chronologically.
type Day string

// ParseDay validates s and returns it as a Day.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return "", fmt.Errorf("invalid day %q (want YYYY-MM-DD): %w", s, err)
	}
	return Day(t.Format(Layout)), nil
}

// DayOf returns the day key of t in t's own location.
func DayOf(t time.Time) Day {
	return Day(t.Format(Layout))
}

// Time returns midnight UTC of d. Invalid keys yield the zero time.
func (d Day) Time() time.Time {
	t, err := time.Parse(Layout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the day n calendar days after d (n may be negative).
// Arithmetic runs in UTC so DST transitions never skip or repeat a key.
func (d Day) AddDays(n int) Day {
	return DayOf(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other.
func (d Day) Before(other Day) bool {
	return d < other
}

// After reports whether d is strictly later than other.
func (d Day) After(other Day) bool {
	return d > other
}

func (d Day) String() string {
	return string(d)
}

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant. Used by tests.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }

// Calendar turns clock instants into day keys in a fixed location.
type Calendar struct {
	clock Clock
	loc   *time.Location
}

// New creates a Calendar. A nil clock uses the system clock; a nil location
// uses UTC.
func New(clock Clock, loc *time.Location) *Calendar {
	if clock == nil {
		clock = SystemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{clock: clock, loc: loc}
}

// Fixed returns a UTC calendar pinned to the given day at noon.
func Fixed(day Day) *Calendar {
	return New(FixedClock{At: day.Time().Add(12 * time.Hour)}, time.UTC)
}

// Now returns the current instant in the calendar's location.
func (c *Calendar) Now() time.Time {
	return c.clock.Now().In(c.loc)
}

// Today returns the current day key.
func (c *Calendar) Today() Day {
	return DayOf(c.Now())
}

// Yesterday returns the day before Today.
func (c *Calendar) Yesterday() Day {
	return c.Today().AddDays(-1)
}

// DayOf returns the day key of t as seen in the calendar's location.
func (c *Calendar) DayOf(t time.Time) Day {
	return DayOf(t.In(c.loc))
}

// Location returns the calendar's location.
func (c *Calendar) Location() *time.Location {
	return c.loc
}
