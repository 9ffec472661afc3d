package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lowhung/wagwan/internal/config"
	"github.com/lowhung/wagwan/internal/model"
	"github.com/lowhung/wagwan/internal/service"
)

func init() {
	cmd := &cobra.Command{
		Use:   "log [friend]",
		Short: "Log a contact with a friend",
		Long: "Record an interaction (by friend ID or exact name) and update the streak.\n" +
			"Methods: " + methodList() + ".",
		Args: cobra.MinimumNArgs(1),
		Run:  runLog,
	}

	cmd.Flags().StringP("method", "m", string(model.MethodCall), "How you got in touch")
	cmd.Flags().String("at", "", "Contact time (RFC3339 or YYYY-MM-DD; default now)")
	cmd.Flags().String("notes", "", "Free-text notes for this contact")

	RootCmd.AddCommand(cmd)
}

func methodList() string {
	names := make([]string, len(model.Methods))
	for i, m := range model.Methods {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

func runLog(cmd *cobra.Command, args []string) {
	methodStr, _ := cmd.Flags().GetString("method")
	atStr, _ := cmd.Flags().GetString("at")
	notes, _ := cmd.Flags().GetString("notes")

	method, err := model.ParseMethod(methodStr)
	if err != nil {
		exitErr("log", err)
	}

	var at time.Time
	if atStr != "" {
		at, err = parseWhen(atStr)
		if err != nil {
			exitErr("log", err)
		}
	}

	tracker, s, _ := openTracker()
	defer s.Close()

	ctx := cmd.Context()
	f, err := tracker.Resolve(ctx, strings.Join(args, " "))
	if err != nil {
		exitErr("log", err)
	}

	f, milestone, fired, err := tracker.LogContact(ctx, service.LogParams{
		FriendID: f.ID,
		At:       at,
		Method:   method,
		Notes:    notes,
	})
	if err != nil {
		exitErr("log", err)
	}

	if formatFlag == config.FormatJSON {
		printJSON(struct {
			Friend    *model.Friend `json:"friend"`
			Milestone string        `json:"milestone,omitempty"`
		}{f, milestoneName(milestone, fired)})
		return
	}

	fmt.Printf("Logged %s with %s (streak %d)\n", method, f.Name, f.CurrentStreak)
	if fired {
		fmt.Printf("Milestone reached: %s (%d)!\n", milestone, int(milestone))
	}
}

func milestoneName(m model.Milestone, fired bool) string {
	if !fired {
		return ""
	}
	return m.String()
}

func parseWhen(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}
