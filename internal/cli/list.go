package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lowhung/wagwan/internal/config"
	"github.com/lowhung/wagwan/internal/model"
	"github.com/lowhung/wagwan/internal/roster"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List friends by urgency",
		Long:  "List friends sorted overdue first, then due soon, then on track.",
		Run:   runList,
	}

	cmd.Flags().StringP("query", "q", "", "Filter by name substring (case-insensitive)")
	cmd.Flags().StringP("status", "s", "", "Filter by status: overdue, dueSoon, onTrack")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	query, _ := cmd.Flags().GetString("query")
	statusStr, _ := cmd.Flags().GetString("status")

	filter := roster.Filter{Query: query}
	if statusStr != "" {
		switch model.Status(statusStr) {
		case model.StatusOverdue, model.StatusDueSoon, model.StatusOnTrack:
			filter.Status = model.Status(statusStr)
		default:
			exitErr("list", fmt.Errorf("unknown status %q", statusStr))
		}
	}

	tracker, s, _ := openTracker()
	defer s.Close()

	entries, counts, err := tracker.Roster(cmd.Context(), filter)
	if err != nil {
		exitErr("list", err)
	}

	if formatFlag == config.FormatJSON {
		printJSON(struct {
			Entries []roster.Entry       `json:"entries"`
			Counts  map[model.Status]int `json:"counts"`
		}{entries, counts})
		return
	}

	fmt.Printf("%d overdue, %d due soon, %d on track\n\n",
		counts[model.StatusOverdue], counts[model.StatusDueSoon], counts[model.StatusOnTrack])

	for _, e := range entries {
		fmt.Printf("%-8s  %-2s  %-24s  %s%s\n",
			e.Status, e.Initials, e.Friend.Name, dueLabel(e.DaysUntilDue), streakLabel(e))
	}
}

func dueLabel(days int) string {
	switch {
	case days == config.DaysUntilDueUndefined:
		return "due now"
	case days < 0:
		return fmt.Sprintf("%d days overdue", -days)
	case days == 0:
		return "due today"
	case days == 1:
		return "due tomorrow"
	default:
		return fmt.Sprintf("due in %d days", days)
	}
}

func streakLabel(e roster.Entry) string {
	if e.Friend.CurrentStreak == 0 {
		return ""
	}
	if !e.StreakActive {
		return fmt.Sprintf("  (streak %d, lapsed)", e.Friend.CurrentStreak)
	}
	return fmt.Sprintf("  (streak %d)", e.Friend.CurrentStreak)
}
