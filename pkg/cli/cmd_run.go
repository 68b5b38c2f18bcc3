package cli

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/harrisonrobin/pomo/pkg/pomodoro"
	"github.com/harrisonrobin/pomo/pkg/tui"
)

const defaultLogFile = "pomo.log"

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run [task-uuid]",
		Short: "Start the timer screen",
		Long: `Open the timer screen. With a task uuid the task is selected up front.

Keys: enter selects a task, s starts, p pauses, r resumes, x resets the task,
+/- change the estimate, ? shows all keys, q quits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTimer(cmd, args)
		},
	}
}

func (a *app) runTimer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	logFile := cfg.LogFile
	if logFile == "" {
		dir, err := a.home()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
		logFile = filepath.Join(dir, defaultLogFile)
	}
	f, err := tea.LogToFile(logFile, "pomo")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	b, err := a.openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	mode := pomodoro.BindReset
	if cfg.ContinueOnSwitch {
		mode = pomodoro.BindContinue
	}
	engine := pomodoro.NewEngine(b.provider, cfg.WorkDuration, cfg.BreakDuration)
	ctrl := pomodoro.NewController(engine, b.provider, mode)
	if len(args) == 1 {
		if err := ctrl.Select(args[0]); err != nil {
			return err
		}
	}

	p := tea.NewProgram(tui.New(ctrl, b.catalog), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("timer screen: %w", err)
	}
	return nil
}
