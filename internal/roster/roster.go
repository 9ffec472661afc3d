// Package roster composes the schedule engine's outputs across a collection
// of friends: filtering, the canonical urgency ordering, and per-status
// counts for summary display.
package roster

import (
	"sort"
	"strings"
	"time"

	"github.com/lowhung/wagwan/internal/model"
	"github.com/lowhung/wagwan/internal/schedule"
	"github.com/lowhung/wagwan/internal/streak"
)

// Entry pairs a friend with its derived display state. Derivations are
// computed once per build so sorting does not recompute date math.
type Entry struct {
	Friend       *model.Friend `json:"friend"`
	Status       model.Status  `json:"status"`
	DaysUntilDue int           `json:"days_until_due"`
	Initials     string        `json:"initials"`
	StreakActive bool          `json:"streak_active"`
}

// Filter narrows a roster. Zero value means no filtering.
type Filter struct {
	// Query is matched case-insensitively as a substring of the name.
	Query string

	// Status keeps only friends in the given bucket; empty keeps all.
	Status model.Status
}

// Build derives entries for every friend at the given instant, applies the
// filter, and sorts by status (overdue first), then by days until due within
// a status group.
func Build(friends []*model.Friend, now time.Time, filter Filter) []Entry {
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	entries := make([]Entry, 0, len(friends))
	for _, f := range friends {
		if query != "" && !strings.Contains(strings.ToLower(f.Name), query) {
			continue
		}
		status := schedule.StatusOf(f, now)
		if filter.Status != "" && status != filter.Status {
			continue
		}
		entries = append(entries, Entry{
			Friend:       f,
			Status:       status,
			DaysUntilDue: schedule.DaysUntilDue(f, now),
			Initials:     schedule.Initials(f.Name),
			StreakActive: streak.IsActive(f, now),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Status.SortOrder() != b.Status.SortOrder() {
			return a.Status.SortOrder() < b.Status.SortOrder()
		}
		return a.DaysUntilDue < b.DaysUntilDue
	})

	return entries
}

// Counts aggregates the number of friends per status bucket at the given
// instant. The filter's status field is ignored so the summary always shows
// the full distribution.
func Counts(friends []*model.Friend, now time.Time) map[model.Status]int {
	counts := make(map[model.Status]int, 3)
	for _, f := range friends {
		counts[schedule.StatusOf(f, now)]++
	}
	return counts
}
