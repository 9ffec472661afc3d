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
		Use:   "edit [friend]",
		Short: "Edit a friend's details",
		Long: "Update a friend's fields. Only flags you pass are changed; changing the\n" +
			"interval re-derives the status immediately without touching the streak.",
		Args: cobra.MinimumNArgs(1),
		Run:  runEdit,
	}

	cmd.Flags().String("name", "", "New display name")
	cmd.Flags().IntP("interval", "i", 0, "New reminder interval in days")
	cmd.Flags().String("phone", "", "New phone number")
	cmd.Flags().String("email", "", "New email address")
	cmd.Flags().String("notes", "", "New free-text notes")
	cmd.Flags().String("photo", "", "Path to a new photo file")

	RootCmd.AddCommand(cmd)
}

func runEdit(cmd *cobra.Command, args []string) {
	tracker, s, _ := openTracker()
	defer s.Close()

	ctx := cmd.Context()
	f, err := tracker.Resolve(ctx, strings.Join(args, " "))
	if err != nil {
		exitErr("edit", err)
	}

	p := service.EditParams{ID: f.ID}
	if cmd.Flags().Changed("name") {
		v, _ := cmd.Flags().GetString("name")
		p.Name = &v
	}
	if cmd.Flags().Changed("interval") {
		v, _ := cmd.Flags().GetInt("interval")
		p.IntervalDays = &v
	}
	if cmd.Flags().Changed("phone") {
		v, _ := cmd.Flags().GetString("phone")
		p.Phone = &v
	}
	if cmd.Flags().Changed("email") {
		v, _ := cmd.Flags().GetString("email")
		p.Email = &v
	}
	if cmd.Flags().Changed("notes") {
		v, _ := cmd.Flags().GetString("notes")
		p.Notes = &v
	}
	if cmd.Flags().Changed("photo") {
		path, _ := cmd.Flags().GetString("photo")
		data, err := os.ReadFile(path)
		if err != nil {
			exitErr("read photo", err)
		}
		p.Photo = data
	}

	f, err = tracker.EditFriend(ctx, p)
	if err != nil {
		exitErr("edit", err)
	}

	if formatFlag == config.FormatJSON {
		printJSON(f)
		return
	}
	fmt.Printf("Updated %s (every %d days)\n", f.Name, f.ReminderIntervalDays)
}
