package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/Tiliavir/trivial-trip-planner/internal/api"
	"github.com/Tiliavir/trivial-trip-planner/internal/config"
	"github.com/Tiliavir/trivial-trip-planner/internal/model"
	"github.com/Tiliavir/trivial-trip-planner/internal/store"
)

var errTripRequired = errors.New("--trip is required")

// app holds the gate and one store per entity kind.
type app struct {
	cfg       config.Config
	gate      *api.Client
	loc       *time.Location
	now       func() time.Time
	trips     *store.Trips
	itinerary *store.Itinerary
	notes     *store.Notes
	reminders *store.Reminders
}

func newApp(ctx context.Context, cfg config.Config) *app {
	gate := api.New(ctx, cfg.API)
	opts := []store.Option{store.WithStoresConfig(cfg.Stores)}
	return &app{
		cfg:       cfg,
		gate:      gate,
		loc:       cfg.Calendar.Location(),
		now:       time.Now,
		trips:     store.NewTrips(gate, opts...),
		itinerary: store.NewItinerary(gate, opts...),
		notes:     store.NewNotes(gate, opts...),
		reminders: store.NewReminders(gate, opts...),
	}
}

// requestedPage is the --limit/--offset window. Zero values fall back to
// the store defaults.
func requestedPage() store.Pagination {
	return store.Pagination{Limit: pageLimit, Offset: pageOffset}
}

// loadScoped points s at tripID and loads the requested page.
func loadScoped[T model.Entity[T], P any](ctx context.Context, s *store.Store[T, P], tripID string) (store.Snapshot[T], error) {
	if tripID == "" {
		return store.Snapshot[T]{}, errTripRequired
	}
	return s.SetScopePage(ctx, tripID, requestedPage()), nil
}

// findTrip loads the trips and returns tripID.
func (a *app) findTrip(ctx context.Context, tripID string) (model.Trip, error) {
	if tripID == "" {
		return model.Trip{}, errTripRequired
	}
	snap := a.trips.Reload(ctx)
	if t, ok := snap.Find(tripID); ok {
		return t, nil
	}
	return a.trips.Get(ctx, tripID)
}

// wait lets background reloads started by failed mutations finish.
func (a *app) wait() {
	a.trips.Wait()
	a.itinerary.Wait()
	a.notes.Wait()
	a.reminders.Wait()
}
