// Package streak maintains the consecutive on-time contact counter for a
// friend and detects milestone crossings.
package streak

import (
	"time"

	"github.com/lowhung/wagwan/internal/config"
	"github.com/lowhung/wagwan/internal/model"
	"github.com/lowhung/wagwan/internal/schedule"
)

// Update applies one logged contact to the friend's streak fields and reports
// a milestone when the new count exactly hits a threshold.
//
// Ordering contract: Update must run before LastContactedAt is overwritten
// with the new contact time. The on-time check depends on the due date derived
// from the previous contact, not the one being logged.
//
// Grace comparison is calendar-day based: a contact counts as on-time through
// the end of the day after the due day, matching the whole-day semantics of
// the schedule package.
func Update(f *model.Friend, contactDate time.Time) (model.Milestone, bool) {
	// Same-day logs never inflate the streak.
	if f.LastStreakDate != nil && schedule.SameDay(*f.LastStreakDate, contactDate) {
		return 0, false
	}

	wasOnTime := true
	if due, ok := schedule.NextContactDate(f); ok {
		wasOnTime = schedule.DaysBetween(due, contactDate) <= config.StreakGraceDays
	}

	day := contactDate
	if wasOnTime {
		f.CurrentStreak++
		f.LastStreakDate = &day
		if f.CurrentStreak > f.LongestStreak {
			f.LongestStreak = f.CurrentStreak
		}
		return model.MilestoneFor(f.CurrentStreak)
	}

	// Late: the contact itself starts a fresh streak of one. A reset never
	// raises a milestone, even though 1 is itself a threshold.
	f.CurrentStreak = 1
	f.LastStreakDate = &day
	if f.LongestStreak < 1 {
		f.LongestStreak = 1
	}
	return 0, false
}

// IsActive reports whether the streak is being actively maintained: a
// non-zero count whose last qualifying contact is within one reminder
// interval plus the due-soon buffer of now. A friend can carry a streak
// number that has lapsed; the UI uses this to tell the two apart.
func IsActive(f *model.Friend, now time.Time) bool {
	if f.CurrentStreak <= 0 || f.LastStreakDate == nil {
		return false
	}
	return schedule.DaysBetween(*f.LastStreakDate, now) <= f.ReminderIntervalDays+config.DueSoonWindowDays
}
