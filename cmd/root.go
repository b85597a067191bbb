package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-trip-planner/internal/config"
	appLog "github.com/Tiliavir/trivial-trip-planner/internal/log"
)

var (
	configPath string
	jsonOutput bool
	pageLimit  int
	pageOffset int

	// a is built from the loaded config before any sub-command runs.
	a *app
)

var rootCmd = &cobra.Command{
	Use:   "ttp",
	Short: "Trivial Trip Planner – trips, itineraries, notes and reminders from the terminal",
	Long: `ttp manages travel plans against the travel planner API.
With backend calls disabled (the default) it works on built-in sample trips.
Configuration lives in ~/.ttp/config.json.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (default ~/.ttp/config.json)")
	pf.BoolVar(&jsonOutput, "json", false, "Print JSON instead of tables")
	pf.IntVar(&pageLimit, "limit", 0, "Page size for per-trip lists (default from config)")
	pf.IntVar(&pageOffset, "offset", 0, "Page offset for per-trip lists")

	rootCmd.AddCommand(tripsCmd)
	rootCmd.AddCommand(itineraryCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(remindersCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(syncCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	appLog.SetLevel(appLog.ParseLevel(cfg.LogLevel))
	a = newApp(cmd.Context(), cfg)
	return nil
}
