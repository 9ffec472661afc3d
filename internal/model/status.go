package model

// Status is the derived three-way urgency classification. It is computed on
// demand and never stored.
type Status string

const (
	StatusOverdue Status = "overdue"
	StatusDueSoon Status = "dueSoon"
	StatusOnTrack Status = "onTrack"
)

// SortOrder fixes the list ordering: overdue sorts first.
func (s Status) SortOrder() int {
	switch s {
	case StatusOverdue:
		return 0
	case StatusDueSoon:
		return 1
	default:
		return 2
	}
}

// Milestone is a derived event raised when a streak count exactly reaches a
// notable threshold immediately after an increment. It is never stored.
type Milestone int

const (
	MilestoneFirst   Milestone = 1
	MilestoneWeekly  Milestone = 7
	MilestoneMonthly Milestone = 30
	MilestoneCentury Milestone = 100
)

// MilestoneFor returns the milestone matching the given streak count exactly,
// or (0, false) when the count is not a threshold.
func MilestoneFor(count int) (Milestone, bool) {
	switch Milestone(count) {
	case MilestoneFirst, MilestoneWeekly, MilestoneMonthly, MilestoneCentury:
		return Milestone(count), true
	}
	return 0, false
}

// String names the milestone for logs and CLI output.
func (m Milestone) String() string {
	switch m {
	case MilestoneFirst:
		return "first"
	case MilestoneWeekly:
		return "weekly"
	case MilestoneMonthly:
		return "monthly"
	case MilestoneCentury:
		return "century"
	default:
		return "unknown"
	}
}
