package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-checker/internal/timecalc"
)

var startNote string

var startCmd = &cobra.Command{
	Use:   "start <task>",
	Short: "Start a task, stopping the running one first",
	Args:  taskArg,
	RunE:  runStart,
}

func init() {
	startCmd.Flags().StringVarP(&startNote, "note", "n", "", "Optional note")
}

func taskArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	if strings.TrimSpace(args[0]) == "" {
		return errors.New("task name must not be empty")
	}
	return nil
}

func runStart(cmd *cobra.Command, args []string) error {
	task := args[0]

	var note *string
	if startNote != "" {
		n := startNote
		note = &n
	}

	started, closed, err := appTracker.StartTask(task, note)
	if err != nil {
		return err
	}
	if closed != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: auto-stopping running task %q (%s)\n",
			closed.Task, timecalc.FormatElapsed(closed.Duration(*closed.End)))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Started task %q at %s\n", started.Task, started.Start.Format("15:04:05"))
	return nil
}
