package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-checker/internal/model"
	"github.com/Tiliavir/time-checker/internal/timecalc"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List today's time entries",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	now := appTracker.Now()
	entries, err := appStore.EntriesForDay(now)
	if err != nil {
		return err
	}
	printList(cmd.OutOrStdout(), entries, now)
	return nil
}

// printList prints one line per entry in log order.
func printList(w io.Writer, entries model.Log, now time.Time) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}

	for _, e := range entries {
		startStr := e.Start.Local().Format("15:04")
		endStr := "ongoing"
		if e.End != nil {
			endStr = e.End.Local().Format("15:04")
		}
		fmt.Fprintf(w, "%s–%s  %s (%s)\n", startStr, endStr, e.Task, timecalc.FormatDuration(e.Duration(now)))
		if e.Note != nil {
			fmt.Fprintf(w, "             %s\n", *e.Note)
		}
	}
}
