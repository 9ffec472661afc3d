// Package cli implements the wagwan CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lowhung/wagwan/internal/config"
	"github.com/lowhung/wagwan/internal/service"
	"github.com/lowhung/wagwan/internal/store"
)

var (
	dbPath     string
	formatFlag string
	debugMode  bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "wagwan",
	Short: "Keep up with the people who matter",
	Long: "A personal relationship tracker: register friends, set a contact cadence,\n" +
		"log interactions, and see who is overdue, with a streak to keep you honest.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging(debugMode)
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, config.FlagDB, "d", "", config.FlagDescDB)
	RootCmd.PersistentFlags().StringVarP(&formatFlag, config.FlagFormat, "f", config.FormatText, config.FlagDescFormat)
	RootCmd.PersistentFlags().BoolVar(&debugMode, config.FlagDebug, false, config.FlagDescDebug)
}

// setupLogging configures the default slog logger. Logs go to stderr so
// stdout stays clean for command output and --format json piping.
func setupLogging(debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, opts)))
}

func loadSettings() *config.Settings {
	s, err := config.LoadSettings("")
	if err != nil {
		exitErr("load config", err)
	}
	if dbPath != "" {
		s.DBPath = dbPath
	}
	return s
}

// openTracker wires the store and service layer for one command invocation.
// The reminder collaborator is only attached by commands that render the
// feed; everything else runs without calendar side effects.
func openTracker() (*service.Tracker, *store.SQLiteStore, *config.Settings) {
	settings := loadSettings()
	s, err := store.NewSQLiteStore(settings.DBPath)
	if err != nil {
		exitErr("open store", err)
	}
	tracker := service.NewTracker(service.Deps{
		Store:               s,
		DefaultIntervalDays: settings.DefaultIntervalDays,
	})
	return tracker, s, settings
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(config.ExitCodeError)
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		exitErr("encode json", err)
	}
	fmt.Println(string(b))
}
