package roster_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowhung/wagwan/internal/model"
	"github.com/lowhung/wagwan/internal/roster"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// friendDue builds a friend whose due date lands daysFromNow whole days from
// the reference instant.
func friendDue(name string, daysFromNow int) *model.Friend {
	last := now.AddDate(0, 0, daysFromNow-7)
	return &model.Friend{
		Name:                 name,
		ReminderIntervalDays: 7,
		CreatedAt:            now.AddDate(0, 0, -60),
		LastContactedAt:      &last,
	}
}

// TestBuild_Ordering pins the canonical list order regardless of input order:
// overdue, dueSoon, onTrack.
func TestBuild_Ordering(t *testing.T) {
	onTrack := friendDue("Tracy", 10)
	overdue := friendDue("Olive", -2)
	dueSoon := friendDue("Sunny", 2)

	permutations := [][]*model.Friend{
		{onTrack, overdue, dueSoon},
		{dueSoon, onTrack, overdue},
		{overdue, dueSoon, onTrack},
	}

	for _, friends := range permutations {
		entries := roster.Build(friends, now, roster.Filter{})
		require.Len(t, entries, 3)
		assert.Equal(t, "Olive", entries[0].Friend.Name)
		assert.Equal(t, "Sunny", entries[1].Friend.Name)
		assert.Equal(t, "Tracy", entries[2].Friend.Name)
	}
}

// TestBuild_SecondarySort orders by days-until-due within a status bucket.
func TestBuild_SecondarySort(t *testing.T) {
	friends := []*model.Friend{
		friendDue("LessOverdue", -1),
		friendDue("VeryOverdue", -9),
		friendDue("MidOverdue", -4),
	}

	entries := roster.Build(friends, now, roster.Filter{})
	require.Len(t, entries, 3)
	assert.Equal(t, "VeryOverdue", entries[0].Friend.Name)
	assert.Equal(t, "MidOverdue", entries[1].Friend.Name)
	assert.Equal(t, "LessOverdue", entries[2].Friend.Name)
	assert.Equal(t, -9, entries[0].DaysUntilDue)
}

func TestBuild_QueryFilter(t *testing.T) {
	friends := []*model.Friend{
		friendDue("Alex Johnson", 1),
		friendDue("Alexandra Smith", 2),
		friendDue("Sam Porter", 3),
	}

	entries := roster.Build(friends, now, roster.Filter{Query: "alex"})
	require.Len(t, entries, 2)

	entries = roster.Build(friends, now, roster.Filter{Query: "  PORTER "})
	require.Len(t, entries, 1)
	assert.Equal(t, "Sam Porter", entries[0].Friend.Name)

	entries = roster.Build(friends, now, roster.Filter{Query: "zzz"})
	assert.Empty(t, entries)
}

func TestBuild_StatusFilter(t *testing.T) {
	friends := []*model.Friend{
		friendDue("Olive", -2),
		friendDue("Sunny", 2),
		friendDue("Tracy", 10),
	}

	entries := roster.Build(friends, now, roster.Filter{Status: model.StatusDueSoon})
	require.Len(t, entries, 1)
	assert.Equal(t, "Sunny", entries[0].Friend.Name)

	entries = roster.Build(friends, now, roster.Filter{})
	assert.Len(t, entries, 3, "empty status keeps all")
}

func TestBuild_DerivedFields(t *testing.T) {
	f := friendDue("Alex Johnson", 2)
	f.CurrentStreak = 3
	f.LastStreakDate = f.LastContactedAt

	entries := roster.Build([]*model.Friend{f}, now, roster.Filter{})
	require.Len(t, entries, 1)

	assert.Equal(t, "AJ", entries[0].Initials)
	assert.Equal(t, 2, entries[0].DaysUntilDue)
	assert.True(t, entries[0].StreakActive)
}

func TestCounts(t *testing.T) {
	friends := []*model.Friend{
		friendDue("A", -5),
		friendDue("B", -1),
		friendDue("C", 0),
		friendDue("D", 8),
	}

	counts := roster.Counts(friends, now)

	assert.Equal(t, 2, counts[model.StatusOverdue])
	assert.Equal(t, 1, counts[model.StatusDueSoon])
	assert.Equal(t, 1, counts[model.StatusOnTrack])
}
