package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-checker/internal/timecalc"
	"github.com/Tiliavir/time-checker/internal/watch"
)

var statusWatch bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running task and today's summary",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVarP(&statusWatch, "watch", "w", false, "Keep running and refresh when the data file changes")
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if !statusWatch {
		return printStatus(out)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return watchStatus(ctx, out)
}

func watchStatus(ctx context.Context, out io.Writer) error {
	return watch.File(ctx, appStore.Path(), time.Minute, func() {
		// Clear the terminal and redraw from the top.
		fmt.Fprint(out, "\033[H\033[2J")
		if err := printStatus(out); err != nil {
			fmt.Fprintln(out, "Error:", err)
		}
	})
}

func printStatus(out io.Writer) error {
	active, err := appTracker.CurrentEntry()
	if err != nil {
		return err
	}

	if active != nil {
		now := appTracker.Now()
		fmt.Fprintln(out, "Running:")
		fmt.Fprintf(out, "  Task: %s\n", active.Task)
		fmt.Fprintf(out, "  Since: %s\n", active.Start.Local().Format("15:04"))
		fmt.Fprintf(out, "  Elapsed: %s\n", timecalc.FormatDurationHHMMSS(active.Duration(now)))
		if active.Note != nil {
			fmt.Fprintf(out, "  Note: %s\n", *active.Note)
		}
	} else {
		fmt.Fprintln(out, "No active task.")
	}
	fmt.Fprintln(out)

	summary, err := appTracker.TodaySummary()
	if err != nil {
		return err
	}
	printSummary(out, summary)
	return nil
}
