package domain

import "time"

// IsBusinessDay reports whether d falls on Monday through Friday.
// No holiday calendar is considered.
func IsBusinessDay(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// NextBusinessDay returns the first business day strictly after d
// (Friday -> Monday, Saturday -> Monday, Sunday -> Monday).
func NextBusinessDay(d time.Time) time.Time {
	next := truncateToDate(d).AddDate(0, 0, 1)
	for !IsBusinessDay(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// NearestBusinessDay returns d itself when it is a business day,
// otherwise the first business day after it.
func NearestBusinessDay(d time.Time) time.Time {
	day := truncateToDate(d)
	for !IsBusinessDay(day) {
		day = day.AddDate(0, 0, 1)
	}
	return day
}

// BusinessDaysBetween enumerates all business days in [start, end]
// inclusive, in chronological order. Returns an empty slice when
// start is after end.
func BusinessDaysBetween(start, end time.Time) []time.Time {
	from := truncateToDate(start)
	to := truncateToDate(end)

	days := make([]time.Time, 0)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(d) {
			days = append(days, d)
		}
	}
	return days
}

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateInPast reports whether date is on an earlier calendar day than now.
func DateInPast(date, now time.Time) bool {
	return truncateToDate(date).Before(truncateToDate(now))
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
