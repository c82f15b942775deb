package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-checker/internal/apperr"
	"github.com/Tiliavir/time-checker/internal/timecalc"
	"github.com/Tiliavir/time-checker/internal/tracker"
)

const periodToday = "today"

var showCmd = &cobra.Command{
	Use:   "show [period]",
	Short: "Show the summary for a period (only \"today\" is supported)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	period := periodToday
	if len(args) == 1 {
		period = args[0]
	}
	if period != periodToday {
		return apperr.InvalidPeriod(period)
	}

	summary, err := appTracker.TodaySummary()
	if err != nil {
		return err
	}
	printSummary(cmd.OutOrStdout(), summary)
	return nil
}

// printSummary writes one line per task in alphabetical order plus a total.
func printSummary(w io.Writer, summary tracker.Summary) {
	if len(summary) == 0 {
		fmt.Fprintln(w, "No work recorded today.")
		return
	}

	fmt.Fprintln(w, "Today")
	fmt.Fprintln(w, "--------------------------------")
	for _, task := range summary.Tasks() {
		fmt.Fprintf(w, "%-20s%s\n", task, timecalc.FormatDuration(summary[task]))
	}
	fmt.Fprintln(w, "--------------------------------")
	fmt.Fprintf(w, "%-20s%s\n", "Total", timecalc.FormatDuration(summary.Total()))
}
