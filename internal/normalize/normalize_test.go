package normalize_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/trivial-trip-planner/internal/model"
	"github.com/Tiliavir/trivial-trip-planner/internal/normalize"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestItemsEnvelope(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want int
	}{
		{"bare array", []any{map[string]any{}, map[string]any{}}, 2},
		{"items object", map[string]any{"items": []any{map[string]any{}}}, 1},
		{"object without items", map[string]any{"data": []any{1}}, 0},
		{"items not a list", map[string]any{"items": "nope"}, 0},
		{"nil", nil, 0},
		{"string", "trips", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalize.Items(tt.raw)
			require.NotNil(t, got)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestTripAliasEquivalence(t *testing.T) {
	pairs := [][2]string{
		{`{"id":"x","name":"A"}`, `{"trip_id":"x","title":"A"}`},
		{`{"uuid":"x","start_date":"2026-04-12","end_date":"2026-04-20"}`, `{"id":"x","startDate":"2026-04-12","endDate":"2026-04-20"}`},
		{`{"id":"x","dateRange":"Apr"}`, `{"id":"x","date_range":"Apr"}`},
		{`{"id":"x","destinations":["Tokyo",{"name":"Kyoto"},""]}`, `{"id":"x","destinations":[{"name":"Tokyo"},"Kyoto",{"name":""}]}`},
	}
	for _, p := range pairs {
		assert.Equal(t, normalize.Trip(decode(t, p[0])), normalize.Trip(decode(t, p[1])), "%s vs %s", p[0], p[1])
	}
}

func TestTripDerivedFields(t *testing.T) {
	trip := normalize.Trip(decode(t, `{"id": 42, "start_date":"2026-04-12","end_date":"2026-04-20","destinations":["Tokyo", {"name":"Kyoto"}, {}]}`))
	assert.Equal(t, model.Confirmed("42"), trip.Ref)
	assert.Equal(t, "Untitled trip", trip.Name)
	assert.Equal(t, "2026-04-12–2026-04-20", trip.DateRange)
	assert.Equal(t, []string{"Tokyo", "Kyoto"}, trip.Destinations)

	assert.Equal(t, "2026-04-12", normalize.Trip(decode(t, `{"start_date":"2026-04-12"}`)).DateRange)
	assert.Equal(t, "2026-04-20", normalize.Trip(decode(t, `{"end_date":"2026-04-20"}`)).DateRange)
	assert.Equal(t, "Dates TBD", normalize.Trip(decode(t, `{}`)).DateRange)
}

func TestNonObjectInput(t *testing.T) {
	for _, raw := range []any{nil, "text", 12.0, []any{}} {
		trip := normalize.Trip(raw)
		assert.Equal(t, "", trip.ID())
		assert.Equal(t, "", trip.Name)
		assert.Equal(t, "", trip.DateRange)
		assert.Equal(t, []string{}, trip.Destinations)

		assert.Equal(t, model.ItineraryItem{}, normalize.ItineraryItem(raw))
		assert.Equal(t, model.Note{}, normalize.Note(raw))
		assert.Equal(t, model.Reminder{}, normalize.Reminder(raw))
	}
}

func TestItineraryAliasEquivalence(t *testing.T) {
	a := `{"id":"i1","title":"Museum","day":"Day 2","time":"10:00","notes":"tickets","start_at":"2026-04-13T10:00:00Z","end_at":"2026-04-13T12:00:00Z","location":"Ueno"}`
	b := `{"itinerary_item_id":"i1","summary":"Museum","dayLabel":"Day 2","atTime":"10:00","description":"tickets","startAt":"2026-04-13T10:00:00Z","end_time":"2026-04-13T12:00:00Z","place":"Ueno"}`
	assert.Equal(t, normalize.ItineraryItem(decode(t, a)), normalize.ItineraryItem(decode(t, b)))
}

func TestItineraryNumericFields(t *testing.T) {
	it := normalize.ItineraryItem(decode(t, `{"item_id":"i9","name":"Hike","day":2,"order":3}`))
	assert.Equal(t, "i9", it.ID())
	assert.Equal(t, "Hike", it.Title)
	assert.Equal(t, "2", it.Day)
	assert.Equal(t, 2, it.DayNumber)
	require.NotNil(t, it.Order)
	assert.Equal(t, 3, *it.Order)

	labelled := normalize.ItineraryItem(decode(t, `{"day":"2","order":"3"}`))
	assert.Equal(t, 0, labelled.DayNumber)
	assert.Nil(t, labelled.Order)
}

func TestItineraryEpochTimestamp(t *testing.T) {
	it := normalize.ItineraryItem(map[string]any{"start_at": json.Number("1776074400000")})
	assert.Equal(t, "2026-04-13T10:00:00Z", it.StartAt)
}

func TestNoteAliasEquivalence(t *testing.T) {
	a := `{"id":"n1","content":"Buy Suica","created_at":"2026-04-01","updated_at":"2026-04-02"}`
	b := `{"note_id":"n1","text":"Buy Suica","createdAt":"2026-04-01","updatedAt":"2026-04-02"}`
	c := `{"uuid":"n1","note":"Buy Suica","createdAt":"2026-04-01","updated_at":"2026-04-02"}`
	assert.Equal(t, normalize.Note(decode(t, a)), normalize.Note(decode(t, b)))
	assert.Equal(t, normalize.Note(decode(t, a)), normalize.Note(decode(t, c)))
}

func TestReminderAliasEquivalence(t *testing.T) {
	a := `{"id":"r1","content":"Passport","due_at":"2026-04-10","done":true}`
	b := `{"reminder_id":"r1","reminder":"Passport","remindAt":"2026-04-10","is_done":true}`
	assert.Equal(t, normalize.Reminder(decode(t, a)), normalize.Reminder(decode(t, b)))
}

func TestReminderDoneOnlyFromBooleans(t *testing.T) {
	assert.False(t, normalize.Reminder(decode(t, `{"done":"true"}`)).Done)
	assert.False(t, normalize.Reminder(decode(t, `{"done":1}`)).Done)
	assert.True(t, normalize.Reminder(decode(t, `{"done":"yes","is_done":true}`)).Done)
	assert.False(t, normalize.Reminder(decode(t, `{"done":false,"is_done":true}`)).Done)
}

func TestNullAliasFallsThrough(t *testing.T) {
	n := normalize.Note(decode(t, `{"id":null,"note_id":"n2","content":null,"text":"hi"}`))
	assert.Equal(t, "n2", n.ID())
	assert.Equal(t, "hi", n.Content)
}

func TestList(t *testing.T) {
	notes := normalize.List(decode(t, `{"items":[{"id":"a"},{"note_id":"b"}]}`), normalize.Note)
	require.Len(t, notes, 2)
	assert.Equal(t, "a", notes[0].ID())
	assert.Equal(t, "b", notes[1].ID())

	assert.Empty(t, normalize.List(nil, normalize.Trip))
}
