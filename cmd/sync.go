package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	appLog "github.com/Tiliavir/trivial-trip-planner/internal/log"
	"github.com/Tiliavir/trivial-trip-planner/internal/model"
	"github.com/Tiliavir/trivial-trip-planner/internal/store"
)

var (
	syncSchedule string
	syncOnce     bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reload trips (and one trip's data) on a schedule",
	Long: `Periodically reload the trip list and, with --trip, that trip's itinerary,
notes and reminders. The schedule accepts cron expressions and descriptors
such as "@every 1m" or "@hourly". Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&tripID, "trip", "", "Also reload this trip's itinerary, notes and reminders")
	syncCmd.Flags().StringVar(&syncSchedule, "schedule", "@every 1m", "Cron schedule")
	syncCmd.Flags().BoolVar(&syncOnce, "once", false, "Reload once and exit")
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	remove := a.trips.OnChange(func(s store.Snapshot[model.Trip]) {
		appLog.Debug("trips changed", "count", len(s.Items), "status", s.Status)
	})
	defer remove()

	if syncOnce {
		a.syncAll(ctx, tripID)
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(syncSchedule, func() { a.syncAll(ctx, tripID) }); err != nil {
		return fmt.Errorf("invalid --schedule %q: %w", syncSchedule, err)
	}

	appLog.Info("sync started", "schedule", syncSchedule, "trip", tripID, "backend", a.gate.Enabled())
	a.syncAll(ctx, tripID)
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	appLog.Info("sync stopped")
	return nil
}

// syncAll reloads the trip list and, when tripID is set, the trip's stores.
func (a *app) syncAll(ctx context.Context, tripID string) {
	trips := a.trips.Reload(ctx)
	logReload("trips", trips)
	if tripID == "" {
		return
	}
	logReload("itinerary", a.itinerary.SetScope(ctx, tripID))
	logReload("notes", a.notes.SetScope(ctx, tripID))
	logReload("reminders", a.reminders.SetScope(ctx, tripID))
}

func logReload[T model.Entity[T]](kind string, s store.Snapshot[T]) {
	if s.Err != nil {
		appLog.Error("reload failed, using sample data", s.Err, "kind", kind, "count", len(s.Items))
		return
	}
	appLog.Info("reloaded", "kind", kind, "count", len(s.Items), "mock", s.UsingMock)
}
