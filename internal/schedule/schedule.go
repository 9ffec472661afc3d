// Package schedule derives due dates and urgency status from a friend's
// timestamp fields. Every function here is a pure computation over well-formed
// input; nothing is persisted and nothing can fail at runtime.
package schedule

import (
	"strings"
	"time"

	"github.com/lowhung/wagwan/internal/config"
	"github.com/lowhung/wagwan/internal/model"
)

// NextContactDate returns when the friend is next due: one reminder interval
// after the last contact, or after creation when no contact has ever been
// logged. The second return is false only when no due date is computable
// (zero creation time on a never-contacted friend); callers treat that as
// overdue.
func NextContactDate(f *model.Friend) (time.Time, bool) {
	anchor := f.CreatedAt
	if f.LastContactedAt != nil {
		anchor = *f.LastContactedAt
	}
	if anchor.IsZero() {
		return time.Time{}, false
	}
	return AddDays(anchor, f.ReminderIntervalDays), true
}

// StatusOf classifies the friend's urgency at the given instant.
// An undefined due date defaults to overdue rather than erroring; showing a
// reminder too eagerly is safer than hiding one.
func StatusOf(f *model.Friend, now time.Time) model.Status {
	due, ok := NextContactDate(f)
	if !ok {
		return model.StatusOverdue
	}
	switch days := DaysBetween(now, due); {
	case days < 0:
		return model.StatusOverdue
	case days <= config.DueSoonWindowDays:
		return model.StatusDueSoon
	default:
		return model.StatusOnTrack
	}
}

// DaysUntilDue returns the whole-day count from now's day to the due day.
// Negative when overdue. Returns the sentinel only in the undefined-date case,
// which StatusOf has already resolved to overdue.
func DaysUntilDue(f *model.Friend, now time.Time) int {
	due, ok := NextContactDate(f)
	if !ok {
		return config.DaysUntilDueUndefined
	}
	return DaysBetween(now, due)
}

// DaysSinceLastContact returns the whole days elapsed since the last contact,
// or false when the friend has never been contacted.
func DaysSinceLastContact(f *model.Friend, now time.Time) (int, bool) {
	if f.LastContactedAt == nil {
		return 0, false
	}
	return DaysBetween(*f.LastContactedAt, now), true
}

// Initials derives up to two display initials from a name: first letters of
// the first two whitespace-separated tokens, or the first two characters of a
// single-token name, uppercased.
func Initials(name string) string {
	tokens := strings.Fields(name)
	switch {
	case len(tokens) >= 2:
		return strings.ToUpper(firstRune(tokens[0]) + firstRune(tokens[1]))
	case len(tokens) == 1:
		r := []rune(tokens[0])
		if len(r) == 1 {
			return strings.ToUpper(string(r))
		}
		return strings.ToUpper(string(r[:2]))
	default:
		return ""
	}
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
