// Package cli implements the pomo command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harrisonrobin/pomo/pkg/config"
	"github.com/harrisonrobin/pomo/pkg/taskwarrior"
)

// app carries what every command shares: the viper instance holding flag and
// POMO_* environment overrides, and the seams tests replace.
type app struct {
	v       *viper.Viper
	cfgFile string
	tasks   []string

	// runner replaces the task binary when set.
	runner taskwarrior.Runner
	// connect opens the calendar named in the config.
	connect calendarFactory
}

func newApp() *app {
	return &app{v: viper.New(), connect: connectCalendar}
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd(newApp()).ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pomo",
		Short: "Pomodoro timer for Taskwarrior tasks",
		Long: `pomo runs work/break intervals against a task and counts finished work
intervals on the task itself. Tasks come from Taskwarrior, where progress is
kept in the numeric UDAs pomodone and pomoest.

Finished intervals can be logged to a Google Calendar (calendar_log: true,
after pomo auth).

Quick start:
  pomo                         Pick a pending task and start the timer
  pomo run <uuid>              Start with a task already selected
  pomo estimate <uuid> 4       Add four intervals to the estimate
  pomo sync                    Push intervals the calendar missed`,
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTimer(cmd, args)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ~/.config/pomo/config.yaml)")
	flags.String("home", "", "directory for credentials and caches (default is ~/.config/pomo)")
	flags.Duration("work", 0, "work interval length (overrides work_duration)")
	flags.Duration("break", 0, "break interval length (overrides break_duration)")
	flags.String("calendar", "", "Google Calendar that receives intervals (overrides calendar)")
	flags.String("provider", "", "task source: taskwarrior or memory")
	flags.Bool("calendar-log", false, "log finished work intervals to the calendar")
	flags.StringArrayVar(&a.tasks, "task", nil, `task for the memory provider as "label:estimate" (repeatable)`)

	for key, flag := range map[string]string{
		"home":           "home",
		"work_duration":  "work",
		"break_duration": "break",
		"calendar":       "calendar",
		"provider":       "provider",
		"calendar_log":   "calendar-log",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}
	a.v.SetEnvPrefix("POMO")
	a.v.AutomaticEnv()

	cmd.AddCommand(newRunCmd(a))
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newEstimateCmd(a))
	cmd.AddCommand(newResetCmd(a))
	cmd.AddCommand(newAuthCmd(a))
	cmd.AddCommand(newSetCalendarCmd(a))
	cmd.AddCommand(newSyncCmd(a))
	cmd.AddCommand(newHistoryCmd(a))
	return cmd
}

// home is the directory holding the config file, OAuth files and caches.
func (a *app) home() (string, error) {
	if dir := a.v.GetString("home"); dir != "" {
		return dir, nil
	}
	return config.Dir()
}

func (a *app) configPath() (string, error) {
	if a.cfgFile != "" {
		return a.cfgFile, nil
	}
	dir, err := a.home()
	if err != nil {
		return "", fmt.Errorf("could not find configuration directory: %w", err)
	}
	return config.FileIn(dir), nil
}

// loadConfig reads the config file and applies flag and environment
// overrides on top of it.
func (a *app) loadConfig() (*config.Config, error) {
	path, err := a.configPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	// Only keys given by flag or environment override the file, so an
	// explicit false or empty value still wins.
	if a.v.IsSet("calendar") {
		cfg.Calendar = a.v.GetString("calendar")
	}
	if a.v.IsSet("provider") {
		cfg.Provider = a.v.GetString("provider")
	} else if len(a.tasks) > 0 {
		cfg.Provider = config.ProviderMemory
	}
	if a.v.IsSet("work_duration") {
		cfg.WorkDuration = a.v.GetDuration("work_duration")
	}
	if a.v.IsSet("break_duration") {
		cfg.BreakDuration = a.v.GetDuration("break_duration")
	}
	if a.v.IsSet("calendar_log") {
		cfg.CalendarLog = a.v.GetBool("calendar_log")
	}
	if a.v.IsSet("continue_on_switch") {
		cfg.ContinueOnSwitch = a.v.GetBool("continue_on_switch")
	}
	if a.v.IsSet("log_file") {
		cfg.LogFile = a.v.GetString("log_file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
