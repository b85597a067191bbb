package model_test

import (
	"encoding/json"
	"testing"

	"github.com/Tiliavir/trivial-trip-planner/internal/model"
)

func TestRef(t *testing.T) {
	c := model.Confirmed("t1")
	if c.IsPending() || c.State() != model.RefConfirmed || c.ID() != "t1" {
		t.Errorf("Confirmed(t1) = %v/%v", c.ID(), c.State())
	}
	p := model.Pending("tmp-1")
	if !p.IsPending() || p.State().String() != "pending" {
		t.Errorf("Pending state = %v", p.State())
	}
	if !(model.Ref{}).IsZero() {
		t.Error("zero Ref is not IsZero")
	}

	data, err := json.Marshal(model.Trip{Meta: model.Meta{Ref: p}, Name: "Banff Loop"})
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got["id"] != "tmp-1" {
		t.Errorf("id = %v, want tmp-1", got["id"])
	}
}

func TestApplyLeavesNilFieldsUnchanged(t *testing.T) {
	name := "Lisbon Long Weekend"
	trip := model.Trip{Name: "Lisbon Weekend", DateRange: "May 2–5, 2026", Destinations: []string{"Lisbon"}}
	got := trip.Apply(model.TripPatch{Name: &name})
	if got.Name != name || got.DateRange != trip.DateRange || len(got.Destinations) != 1 {
		t.Errorf("Apply = %+v", got)
	}

	day := "Day 3"
	it := model.ItineraryItem{Title: "Blue Lagoon", DayNumber: 2}.Apply(model.ItineraryPatch{Day: &day})
	if it.Day != day || it.DayNumber != 0 || it.Title != "Blue Lagoon" {
		t.Errorf("itinerary Apply = %+v", it)
	}

	done := true
	r := model.Reminder{Content: "Charge camera batteries"}.Apply(model.ReminderPatch{Done: &done})
	if !r.Done || r.Content != "Charge camera batteries" {
		t.Errorf("reminder Apply = %+v", r)
	}
}

func TestPrepareDefaults(t *testing.T) {
	trip := model.PrepareTrip(model.Trip{Name: "  "})
	if trip.Name != "New Trip" || trip.DateRange != "Dates TBD" || trip.Destinations == nil {
		t.Errorf("PrepareTrip = %+v", trip)
	}
	it := model.PrepareItineraryItem(model.ItineraryItem{Title: " Tsukiji "})
	if it.Title != "Tsukiji" {
		t.Errorf("PrepareItineraryItem title = %q, want Tsukiji", it.Title)
	}
	if got := model.PrepareItineraryItem(model.ItineraryItem{}).Title; got != "New item" {
		t.Errorf("empty title = %q, want New item", got)
	}
}

func TestPatchPayloadOmitsUnset(t *testing.T) {
	done := false
	data, err := json.Marshal(model.ReminderPatch{Done: &done})
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != `{"done":false}` {
		t.Errorf("payload = %s, want {\"done\":false}", got)
	}
}

func TestItineraryPatchNumericDay(t *testing.T) {
	label, n := "2", 2
	p := model.ItineraryPatch{Day: &label, DayNumber: &n}

	it := model.ItineraryItem{Title: "Tsukiji + Asakusa", Day: "Day 1"}.Apply(p)
	if it.Day != "2" || it.DayNumber != 2 {
		t.Errorf("Apply = %q/%d, want 2/2", it.Day, it.DayNumber)
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != `{"day":2}` {
		t.Errorf("payload = %s, want {\"day\":2}", got)
	}

	label = "Day 3"
	data, err = json.Marshal(model.ItineraryPatch{Day: &label})
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != `{"day":"Day 3"}` {
		t.Errorf("payload = %s, want {\"day\":\"Day 3\"}", got)
	}
}
