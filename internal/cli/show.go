package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lowhung/wagwan/internal/config"
	"github.com/lowhung/wagwan/internal/model"
	"github.com/lowhung/wagwan/internal/schedule"
	"github.com/lowhung/wagwan/internal/streak"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show [friend]",
		Short: "Show a friend's details and contact history",
		Args:  cobra.MinimumNArgs(1),
		Run:   runShow,
	}

	cmd.Flags().IntP("limit", "n", 10, "Number of recent contacts to show")

	RootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	tracker, s, _ := openTracker()
	defer s.Close()

	ctx := cmd.Context()
	f, err := tracker.Resolve(ctx, strings.Join(args, " "))
	if err != nil {
		exitErr("show", err)
	}

	f, logs, err := tracker.FriendDetail(ctx, f.ID)
	if err != nil {
		exitErr("show", err)
	}

	if formatFlag == config.FormatJSON {
		printJSON(struct {
			Friend *model.Friend       `json:"friend"`
			Logs   []*model.ContactLog `json:"logs"`
		}{f, logs})
		return
	}

	clock := schedule.RealClock{}
	now := clock.Now()
	status := schedule.StatusOf(f, now)

	fmt.Printf("%s  [%s]\n", f.Name, f.ID)
	if f.Phone != "" {
		fmt.Printf("  phone:    %s\n", f.Phone)
	}
	if f.Email != "" {
		fmt.Printf("  email:    %s\n", f.Email)
	}
	if f.Notes != "" {
		fmt.Printf("  notes:    %s\n", f.Notes)
	}
	fmt.Printf("  interval: every %d days\n", f.ReminderIntervalDays)
	fmt.Printf("  status:   %s, %s\n", status, dueLabel(schedule.DaysUntilDue(f, now)))
	if days, ok := schedule.DaysSinceLastContact(f, now); ok {
		fmt.Printf("  last:     %d days ago\n", days)
	} else {
		fmt.Printf("  last:     never contacted\n")
	}
	fmt.Printf("  streak:   %d current / %d longest", f.CurrentStreak, f.LongestStreak)
	if f.CurrentStreak > 0 && !streak.IsActive(f, now) {
		fmt.Print(" (lapsed)")
	}
	fmt.Println()

	if len(logs) == 0 {
		return
	}
	fmt.Println("\nRecent contacts:")
	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}
	for _, l := range logs {
		line := fmt.Sprintf("  %s  %s", l.ContactedAt.Format("2006-01-02"), l.Method)
		if l.Notes != "" {
			line += "  " + l.Notes
		}
		fmt.Println(line)
	}
}
