package cli

import (
	"log/slog"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/lowhung/wagwan/internal/calendar"
	"github.com/lowhung/wagwan/internal/config"
	"github.com/lowhung/wagwan/internal/schedule"
	"github.com/lowhung/wagwan/internal/server"
	"github.com/lowhung/wagwan/internal/service"
	"github.com/lowhung/wagwan/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the reminder calendar as an ICS feed",
		Long: "Build an iCalendar feed with one reminder event per friend and serve it\n" +
			"over HTTP for calendar apps to subscribe to. The feed is rebuilt on a\n" +
			"schedule so due dates track newly logged contacts.",
		Run: runServe,
	}

	cmd.Flags().StringP("port", "p", "", "Port to listen on (overrides config)")

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, _ []string) {
	port, _ := cmd.Flags().GetString("port")

	settings := loadSettings()
	s, err := store.NewSQLiteStore(settings.DBPath)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	book := calendar.NewReminderBook()
	tracker := service.NewTracker(service.Deps{
		Store:               s,
		Reminders:           book,
		DefaultIntervalDays: settings.DefaultIntervalDays,
	})

	if port == "" {
		port = settings.ServerPort
	}
	srv := server.NewFeedServer(port)

	ctx := cmd.Context()
	refresh := func() {
		if err := tracker.SyncReminders(ctx); err != nil {
			slog.Error(config.MsgSyncFailed,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
			return
		}
		feed, err := book.Feed(schedule.RealClock{}.Now())
		if err != nil {
			slog.Error(config.MsgFeedBuildFail,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
			return
		}
		srv.Update(feed)
		slog.Info(config.MsgFeedRefreshed,
			config.LogKeyComponent, config.CompServer,
		)
	}
	refresh()

	c := cron.New()
	if _, err := c.AddFunc("@every "+settings.RefreshInterval().String(), refresh); err != nil {
		exitErr("schedule refresh", err)
	}
	c.Start()
	defer func() {
		stopCtx := c.Stop()
		<-stopCtx.Done()
	}()

	if err := srv.Start(ctx); err != nil {
		exitErr("serve", err)
	}
}
