package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/pomo/pkg/auth"
	"github.com/harrisonrobin/pomo/pkg/config"
	"github.com/harrisonrobin/pomo/pkg/google"
	"github.com/harrisonrobin/pomo/pkg/pending"
)

func newAuthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authorize pomo with Google Calendar",
		Long: `Run the OAuth flow again, replacing any cached token. Download the
OAuth client (Desktop app) from the Google Cloud Console and save it as
credentials.json in the pomo config directory first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.home()
			if err != nil {
				return err
			}
			if err := auth.RemoveToken(dir); err != nil {
				return err
			}
			srv, err := auth.GetCalendarService(cmd.Context(), dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Authentication successful.")

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if _, err := google.FindCalendarID(cmd.Context(), srv, cfg.Calendar); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Warning: %v. Create it or pick another with pomo set-calendar.\n", err)
			}
			return nil
		},
	}
}

func newSetCalendarCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-calendar <name>",
		Short: "Set the Google Calendar that receives intervals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.configPath()
			if err != nil {
				return err
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			cfg.Calendar = args[0]
			if err := config.Save(path, cfg); err != nil {
				return fmt.Errorf("error saving config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default calendar set to: %s\n", args[0])
			return nil
		},
	}
}

func newSyncCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Log intervals the calendar has not received yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			dir, err := a.home()
			if err != nil {
				return err
			}
			table, err := pending.NewTable(dir)
			if err != nil {
				return fmt.Errorf("failed to load pending intervals: %w", err)
			}
			if table.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to sync.")
				return nil
			}

			client, err := a.openCalendar(ctx, cfg)
			if err != nil {
				return err
			}
			store, err := a.openStore(cfg)
			if err != nil {
				return err
			}
			rec := google.NewRecorder(ctx, store, client, table, cfg.WorkDuration)
			synced, err := rec.Flush(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "Synced %d interval(s), %d pending.\n", synced, table.Len())
			return err
		},
	}
}

func newHistoryCmd(a *app) *cobra.Command {
	var since time.Duration
	cmd := &cobra.Command{
		Use:   "history <task-uuid>",
		Short: "Show a task's logged intervals from the calendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			client, err := a.openCalendar(ctx, cfg)
			if err != nil {
				return err
			}
			events, err := client.ListTaskIntervals(ctx, args[0], time.Now().Add(-since))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintf(out, "No intervals logged in the last %s.\n", since)
				return nil
			}
			for _, ev := range events {
				var start string
				if ev.Start != nil {
					start = ev.Start.DateTime
				}
				if t, err := time.Parse(time.RFC3339, start); err == nil {
					start = t.Local().Format("2006-01-02 15:04")
				}
				fmt.Fprintf(out, "%s  %s\n", start, ev.Summary)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&since, "since", 7*24*time.Hour, "how far back to look")
	return cmd
}
