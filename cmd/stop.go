package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-checker/internal/timecalc"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running task and show today's summary",
	Args:  cobra.NoArgs,
	RunE:  runStop,
}

func runStop(cmd *cobra.Command, args []string) error {
	stopped, err := appTracker.StopTask()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Stopped task %q. Elapsed: %s\n",
		stopped.Task, timecalc.FormatElapsed(stopped.Duration(*stopped.End)))
	fmt.Fprintln(out)

	summary, err := appTracker.TodaySummary()
	if err != nil {
		return err
	}
	printSummary(out, summary)
	return nil
}
