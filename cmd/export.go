package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-trip-planner/internal/calendar"
	"github.com/Tiliavir/trivial-trip-planner/internal/storage"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a trip as iCalendar or JSON",
	Long: `Export a trip's dated itinerary items, notes and reminders.
Without --output the file is written to ~/.ttp/exports/<trip>/. Use --output - for stdout.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "ics", "Output format: ics, json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file, - for stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "ics" && exportFormat != "json" {
		return fmt.Errorf("unknown format %q, want ics or json", exportFormat)
	}

	days, err := a.projectTrip(cmd.Context(), tripID)
	if err != nil {
		return err
	}
	var ics []byte
	if exportFormat == "ics" {
		ics = []byte(calendar.ExportICS(days.Trip, days.Context, days.Buckets, a.now()))
	}

	if exportOutput == "-" {
		if exportFormat == "json" {
			return printJSON(cmd.OutOrStdout(), days)
		}
		_, err := cmd.OutOrStdout().Write(ics)
		return err
	}

	path := exportOutput
	if path == "" {
		base, err := storage.BaseDir()
		if err != nil {
			return err
		}
		path = storage.ExportPath(base, days.Trip.ID(), exportFormat, a.now())
	}
	if exportFormat == "json" {
		err = storage.SaveJSON(path, days)
	} else {
		err = storage.WriteFileAtomic(path, ics)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Exported %s to %s\n", okStyle.Sprint("✓"), days.Trip.Name, path)
	return nil
}
