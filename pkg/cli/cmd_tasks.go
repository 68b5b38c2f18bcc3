package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/pomo/pkg/pomodoro"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List selectable tasks with their interval counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			store, err := a.openStore(cfg)
			if err != nil {
				return err
			}
			list, err := store.Tasks()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No pending tasks.")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDONE\tLABEL")
			for _, t := range list {
				label := t.Label
				if t.Done() {
					label = pomodoro.CompletedGlyph + " " + label
				}
				fmt.Fprintf(w, "%s\t%d/%d\t%s\n", t.ID, t.Completed, t.Estimated, label)
			}
			return w.Flush()
		},
	}
}

func newEstimateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "estimate <task-uuid> <delta>",
		Short: "Change a task's estimated intervals",
		Long: `Add delta to the task's estimated intervals. The estimate never drops
below one. Put negative deltas after --:

  pomo estimate <uuid> 2
  pomo estimate <uuid> -- -1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid delta %q: %w", args[1], err)
			}
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			store, err := a.openStore(cfg)
			if err != nil {
				return err
			}

			if _, err := store.Task(args[0]); err != nil {
				return err
			}
			if err := store.AdjustEstimatedIntervals(args[0], delta); err != nil {
				return err
			}
			task, err := store.Task(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d/%d\n", task.Label, task.Completed, task.Estimated)
			return nil
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <task-uuid>",
		Short: "Zero a task's completed and estimated intervals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			store, err := a.openStore(cfg)
			if err != nil {
				return err
			}

			task, err := store.Task(args[0])
			if err != nil {
				return err
			}
			if err := store.ResetTaskProgress(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset %s.\n", task.Label)
			return nil
		},
	}
}
