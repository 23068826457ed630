package clock

import (
	"time"
)

// Clock reports the current calendar date. Implementations return the
// date at midnight in their location.
type Clock interface {
	Today() time.Time
}

type system struct {
	loc *time.Location
}

// New returns a Clock backed by the system time in loc.
// A nil loc means UTC.
func New(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return system{loc: loc}
}

func (s system) Today() time.Time {
	return Date(time.Now().In(s.loc))
}

// Fixed is a Clock that always reports the same day.
type Fixed time.Time

func (f Fixed) Today() time.Time {
	return Date(time.Time(f))
}

// Date truncates t to midnight of its calendar day in t's location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays moves a calendar date by n days. DST transitions do not shift
// the result off midnight.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from a to b. It is
// negative when b is before a. Only the year, month and day of each value
// take part, so 23:59 and 00:01 of the next day are one day apart.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
