package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/time-checker/internal/model"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export today's time entries to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, md")
}

func runExport(cmd *cobra.Command, args []string) error {
	now := appTracker.Now()
	entries, err := appStore.EntriesForDay(now)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch exportFormat {
	case "json":
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("error encoding JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case "md":
		printList(out, entries, now)
	case "csv":
		return writeCSV(out, entries, now)
	default:
		return fmt.Errorf("unknown export format %q (supported: csv, json, md)", exportFormat)
	}
	return nil
}

func writeCSV(w io.Writer, entries model.Log, now time.Time) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "task", "note", "start", "end", "duration_minutes"}); err != nil {
		return err
	}
	for _, e := range entries {
		note := ""
		if e.Note != nil {
			note = *e.Note
		}
		endStr := ""
		if e.End != nil {
			endStr = e.End.Format(time.RFC3339)
		}
		minutes := int64(e.Duration(now) / time.Minute)
		if minutes < 0 {
			minutes = 0
		}
		record := []string{
			e.Start.Local().Format("2006-01-02"),
			e.Task,
			note,
			e.Start.Format(time.RFC3339),
			endStr,
			fmt.Sprint(minutes),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
