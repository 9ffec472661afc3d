package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lowhung/wagwan/internal/config"
	"github.com/lowhung/wagwan/internal/model"
	"github.com/lowhung/wagwan/internal/schedule"
)

func ptr(t time.Time) *time.Time { return &t }

// TestDaysBetween verifies the calendar-day semantics: counts are
// midnight-to-midnight boundary crossings, never duration division.
func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{
			name: "same instant",
			from: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
			to:   time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "same day different hours",
			from: time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC),
			to:   time.Date(2025, 6, 15, 0, 1, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "one boundary despite two minutes elapsed",
			from: time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC),
			to:   time.Date(2025, 6, 16, 0, 1, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "almost 24h but no boundary crossed",
			from: time.Date(2025, 6, 15, 0, 1, 0, 0, time.UTC),
			to:   time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "negative when to precedes from",
			from: time.Date(2025, 6, 15, 1, 0, 0, 0, time.UTC),
			to:   time.Date(2025, 6, 12, 23, 0, 0, 0, time.UTC),
			want: -3,
		},
		{
			name: "across a month boundary",
			from: time.Date(2025, 1, 30, 12, 0, 0, 0, time.UTC),
			to:   time.Date(2025, 2, 2, 12, 0, 0, 0, time.UTC),
			want: 3,
		},
		{
			name: "across a leap day",
			from: time.Date(2024, 2, 28, 12, 0, 0, 0, time.UTC),
			to:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, schedule.DaysBetween(tt.from, tt.to))
		})
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 6, 15, 1, 0, 0, 0, time.UTC)
	b := time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)
	c := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	assert.True(t, schedule.SameDay(a, b))
	assert.False(t, schedule.SameDay(b, c))
}

func TestNextContactDate(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	last := time.Date(2025, 5, 10, 18, 30, 0, 0, time.UTC)

	t.Run("never contacted is due one interval after creation", func(t *testing.T) {
		f := &model.Friend{Name: "Alex", ReminderIntervalDays: 14, CreatedAt: created}
		due, ok := schedule.NextContactDate(f)
		assert.True(t, ok)
		assert.Equal(t, created.AddDate(0, 0, 14), due)
	})

	t.Run("contacted friend is due interval days later", func(t *testing.T) {
		f := &model.Friend{Name: "Alex", ReminderIntervalDays: 14, CreatedAt: created, LastContactedAt: ptr(last)}
		due, ok := schedule.NextContactDate(f)
		assert.True(t, ok)
		assert.Equal(t, last.AddDate(0, 0, 14), due)
	})

	t.Run("undefined when never contacted and no creation time", func(t *testing.T) {
		f := &model.Friend{Name: "Alex", ReminderIntervalDays: 14}
		_, ok := schedule.NextContactDate(f)
		assert.False(t, ok)
	})
}

// TestStatusOf_NeverContacted covers the creation-based due date: a friend who
// has never been contacted gets one full interval from creation, is dueSoon
// during the last three days of that window, and overdue once it has passed.
func TestStatusOf_NeverContacted(t *testing.T) {
	created := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	f := &model.Friend{Name: "Alex", ReminderIntervalDays: 14, CreatedAt: created}
	// Due day is June 15.

	tests := []struct {
		name string
		now  time.Time
		want model.Status
	}{
		{"on creation day", time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC), model.StatusOnTrack},
		{"four days before due", time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC), model.StatusOnTrack},
		{"three days before due", time.Date(2025, 6, 12, 9, 0, 0, 0, time.UTC), model.StatusDueSoon},
		{"on due day", time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC), model.StatusDueSoon},
		{"one day past due", time.Date(2025, 6, 16, 1, 0, 0, 0, time.UTC), model.StatusOverdue},
		{"well past due", time.Date(2025, 7, 20, 9, 0, 0, 0, time.UTC), model.StatusOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, schedule.StatusOf(f, tt.now))
		})
	}
}

// TestStatusOf_Thresholds pins the three-way classification boundaries around
// the due date: <0 overdue, 0..3 dueSoon, >3 onTrack.
func TestStatusOf_Thresholds(t *testing.T) {
	last := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f := &model.Friend{
		Name:                 "Alex",
		ReminderIntervalDays: 7,
		CreatedAt:            last.AddDate(0, 0, -30),
		LastContactedAt:      ptr(last),
	}
	// Due day is June 8.

	tests := []struct {
		name string
		now  time.Time
		want model.Status
	}{
		{"four days before due", time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC), model.StatusOnTrack},
		{"three days before due", time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC), model.StatusDueSoon},
		{"due day", time.Date(2025, 6, 8, 0, 30, 0, 0, time.UTC), model.StatusDueSoon},
		{"one day past due", time.Date(2025, 6, 9, 0, 30, 0, 0, time.UTC), model.StatusOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, schedule.StatusOf(f, tt.now))
		})
	}
}

// TestStatusOf_TimeOfDayStability: a friend contacted at 11pm must not flip
// status earlier than one contacted at 1am on the same calendar day.
func TestStatusOf_TimeOfDayStability(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	early := &model.Friend{Name: "A", ReminderIntervalDays: 7, CreatedAt: day, LastContactedAt: ptr(day.Add(1 * time.Hour))}
	late := &model.Friend{Name: "B", ReminderIntervalDays: 7, CreatedAt: day, LastContactedAt: ptr(day.Add(23 * time.Hour))}

	for hour := 0; hour < 24; hour++ {
		now := time.Date(2025, 6, 9, hour, 0, 0, 0, time.UTC)
		assert.Equal(t, schedule.StatusOf(early, now), schedule.StatusOf(late, now),
			"status diverged at hour %d", hour)
	}
}

func TestStatusOf_UndefinedDueDateFailsSafe(t *testing.T) {
	f := &model.Friend{Name: "Alex", ReminderIntervalDays: 7}
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, model.StatusOverdue, schedule.StatusOf(f, now))
	assert.Equal(t, config.DaysUntilDueUndefined, schedule.DaysUntilDue(f, now))
}

// Interval 14, created at D, never contacted: at D+15 the friend is overdue
// with daysUntilDue == -1.
func TestDaysUntilDue_NeverContactedOverdue(t *testing.T) {
	created := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	f := &model.Friend{Name: "Alex", ReminderIntervalDays: 14, CreatedAt: created}
	now := created.AddDate(0, 0, 15)

	assert.Equal(t, model.StatusOverdue, schedule.StatusOf(f, now))
	assert.Equal(t, -1, schedule.DaysUntilDue(f, now))

	// Logging a contact on the due day pushes the due date a full interval out.
	f.LastContactedAt = ptr(created.AddDate(0, 0, 14))
	assert.Equal(t, 13, schedule.DaysUntilDue(f, now))
	assert.Equal(t, model.StatusOnTrack, schedule.StatusOf(f, now))
}

func TestDaysSinceLastContact(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	f := &model.Friend{Name: "Alex", ReminderIntervalDays: 7}
	_, ok := schedule.DaysSinceLastContact(f, now)
	assert.False(t, ok, "never contacted has no day count")

	f.LastContactedAt = ptr(time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC))
	days, ok := schedule.DaysSinceLastContact(f, now)
	assert.True(t, ok)
	assert.Equal(t, 5, days)
}

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"two tokens", "Alex Johnson", "AJ"},
		{"three tokens uses first two", "Mary Jane Watson", "MJ"},
		{"single token", "Cher", "CH"},
		{"single letter", "X", "X"},
		{"lowercase input", "ana gomez", "AG"},
		{"extra whitespace", "  Alex   Johnson  ", "AJ"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, schedule.Initials(tt.in))
		})
	}
}
