package schedule

import (
	"math"
	"time"
)

// Whole-day arithmetic is always calendar-day based: truncate to local
// midnight, then count date-boundary crossings. Raw duration division would
// make status flip at different moments for a friend contacted at 11pm versus
// 1am on the same calendar day.

// DayStart truncates t to midnight in its own location.
func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts the calendar days from the day containing 'from' to the
// day containing 'to'. Negative when 'to' is on an earlier day. Rounding
// absorbs the 23h/25h days introduced by DST transitions.
func DaysBetween(from, to time.Time) int {
	a := DayStart(from)
	b := DayStart(to.In(from.Location()))
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DaysBetween(a, b) == 0
}

// AddDays advances t by n calendar days, respecting month lengths and DST.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}
