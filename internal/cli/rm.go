package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lowhung/wagwan/internal/config"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm [friend]",
		Short: "Remove a friend and their contact history",
		Long: "Delete a friend, their contact logs, and the reminder artifact. The\n" +
			"removal is held for a short undo window; press Ctrl-C to cancel it.",
		Args: cobra.MinimumNArgs(1),
		Run:  runRm,
	}

	cmd.Flags().Bool("now", false, "Skip the undo window and remove immediately")

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	immediate, _ := cmd.Flags().GetBool("now")

	tracker, s, _ := openTracker()
	defer s.Close()

	ctx := cmd.Context()
	f, err := tracker.Resolve(ctx, strings.Join(args, " "))
	if err != nil {
		exitErr("rm", err)
	}

	if immediate {
		if err := tracker.RemoveFriendNow(ctx, f.ID); err != nil {
			exitErr("rm", err)
		}
		fmt.Printf("Removed %s\n", f.Name)
		return
	}

	done, err := tracker.RemoveFriend(ctx, f.ID)
	if err != nil {
		exitErr("rm", err)
	}
	fmt.Printf("Removing %s in %s (Ctrl-C to undo)\n", f.Name, config.UndoWindow)

	// The interrupt that cancels the root context doubles as the undo
	// gesture while the window is open.
	select {
	case <-done:
		fmt.Printf("Removed %s\n", f.Name)
	case <-ctx.Done():
		if err := tracker.UndoRemove(f.ID); err != nil {
			exitErr("undo", err)
		}
		fmt.Printf("Kept %s\n", f.Name)
	}
}
