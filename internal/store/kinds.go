package store

import (
	"github.com/Tiliavir/trivial-trip-planner/internal/api"
	"github.com/Tiliavir/trivial-trip-planner/internal/model"
	"github.com/Tiliavir/trivial-trip-planner/internal/normalize"
	"github.com/Tiliavir/trivial-trip-planner/internal/sample"
)

// Concrete store types.
type (
	Trips     = Store[model.Trip, model.TripPatch]
	Itinerary = Store[model.ItineraryItem, model.ItineraryPatch]
	Notes     = Store[model.Note, model.NotePatch]
	Reminders = Store[model.Reminder, model.ReminderPatch]
)

// TripKind is the /api/trips collection. The trips list is not paged.
var TripKind = Kind[model.Trip, model.TripPatch]{
	Name:           "trips",
	CollectionPath: func(string) string { return api.TripsPath() },
	ItemPath:       func(_, id string) string { return api.TripPath(id) },
	Normalize:      normalize.Trip,
	Samples:        func(string) []model.Trip { return sample.Trips() },
	Prepare:        model.PrepareTrip,
	Payload:        func(t model.Trip) any { return t.Payload() },
	Apply:          model.Trip.Apply,
}

// ItineraryKind is /api/trips/{id}/itinerary.
var ItineraryKind = Kind[model.ItineraryItem, model.ItineraryPatch]{
	Name:           "itinerary",
	Scoped:         true,
	Paged:          true,
	CollectionPath: childCollection("itinerary"),
	ItemPath:       childItem("itinerary"),
	Normalize:      normalize.ItineraryItem,
	Samples:        sample.Itinerary,
	Prepare:        model.PrepareItineraryItem,
	Payload:        func(it model.ItineraryItem) any { return it.Payload() },
	Apply:          model.ItineraryItem.Apply,
}

// NoteKind is /api/trips/{id}/notes.
var NoteKind = Kind[model.Note, model.NotePatch]{
	Name:           "notes",
	Scoped:         true,
	Paged:          true,
	CollectionPath: childCollection("notes"),
	ItemPath:       childItem("notes"),
	Normalize:      normalize.Note,
	Samples:        sample.Notes,
	Prepare:        model.PrepareNote,
	Payload:        func(n model.Note) any { return n.Payload() },
	Apply:          model.Note.Apply,
}

// ReminderKind is /api/trips/{id}/reminders.
var ReminderKind = Kind[model.Reminder, model.ReminderPatch]{
	Name:           "reminders",
	Scoped:         true,
	Paged:          true,
	CollectionPath: childCollection("reminders"),
	ItemPath:       childItem("reminders"),
	Normalize:      normalize.Reminder,
	Samples:        sample.Reminders,
	Prepare:        model.PrepareReminder,
	Payload:        func(r model.Reminder) any { return r.Payload() },
	Apply:          model.Reminder.Apply,
}

func childCollection(child string) func(string) string {
	return func(tripID string) string { return api.TripChildPath(tripID, child) }
}

func childItem(child string) func(string, string) string {
	return func(tripID, id string) string { return api.TripChildItemPath(tripID, child, id) }
}

// NewTrips returns the trips store.
func NewTrips(gate Gate, opts ...Option) *Trips {
	return New(TripKind, gate, opts...)
}

// NewItinerary returns an itinerary store; pass WithScope to select a trip.
func NewItinerary(gate Gate, opts ...Option) *Itinerary {
	return New(ItineraryKind, gate, opts...)
}

// NewNotes returns a notes store.
func NewNotes(gate Gate, opts ...Option) *Notes {
	return New(NoteKind, gate, opts...)
}

// NewReminders returns a reminders store.
func NewReminders(gate Gate, opts ...Option) *Reminders {
	return New(ReminderKind, gate, opts...)
}
