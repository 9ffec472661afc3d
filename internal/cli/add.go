package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lowhung/wagwan/internal/config"
	"github.com/lowhung/wagwan/internal/service"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a friend to track",
		Args:  cobra.MinimumNArgs(1),
		Run:   runAdd,
	}

	cmd.Flags().IntP("interval", "i", 0,
		fmt.Sprintf("Reminder interval in days (default %d; common choices: %v)",
			config.DefaultIntervalDays, config.SuggestedIntervals))
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("notes", "", "Free-text notes")
	cmd.Flags().String("photo", "", "Path to a photo file")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	interval, _ := cmd.Flags().GetInt("interval")
	phone, _ := cmd.Flags().GetString("phone")
	email, _ := cmd.Flags().GetString("email")
	notes, _ := cmd.Flags().GetString("notes")
	photoPath, _ := cmd.Flags().GetString("photo")

	var photo []byte
	if photoPath != "" {
		b, err := os.ReadFile(photoPath)
		if err != nil {
			exitErr("read photo", err)
		}
		photo = b
	}

	tracker, s, _ := openTracker()
	defer s.Close()

	f, err := tracker.AddFriend(cmd.Context(), service.AddParams{
		Name:         strings.Join(args, " "),
		Phone:        phone,
		Email:        email,
		Notes:        notes,
		Photo:        photo,
		IntervalDays: interval,
	})
	if err != nil {
		exitErr("add", err)
	}

	if formatFlag == config.FormatJSON {
		printJSON(f)
		return
	}
	fmt.Printf("Added %s (%s), checking in every %d days\n", f.Name, f.ID, f.ReminderIntervalDays)
}
