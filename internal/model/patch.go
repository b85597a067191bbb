package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Patches use nil to mean "leave unchanged". They are sent to the backend
// as-is, so the JSON names are the canonical field set.

// TripPatch is a partial update of a Trip.
type TripPatch struct {
	Name         *string  `json:"name,omitempty"`
	DateRange    *string  `json:"dateRange,omitempty"`
	StartDate    *string  `json:"start_date,omitempty"`
	EndDate      *string  `json:"end_date,omitempty"`
	Destinations []string `json:"destinations,omitempty"`
}

// Apply merges p into t.
func (t Trip) Apply(p TripPatch) Trip {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.DateRange != nil {
		t.DateRange = *p.DateRange
	}
	if p.StartDate != nil {
		t.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		t.EndDate = *p.EndDate
	}
	if p.Destinations != nil {
		t.Destinations = append([]string(nil), p.Destinations...)
	}
	return t
}

// ItineraryPatch is a partial update of an ItineraryItem.
type ItineraryPatch struct {
	Title    *string `json:"title,omitempty"`
	Day      *string `json:"day,omitempty"`
	Time     *string `json:"time,omitempty"`
	Notes    *string `json:"notes,omitempty"`
	StartAt  *string `json:"start_at,omitempty"`
	EndAt    *string `json:"end_at,omitempty"`
	Location *string `json:"location,omitempty"`
	// DayNumber sets a numeric day index and is sent as a numeric "day".
	DayNumber *int `json:"-"`
}

// MarshalJSON sends "day" as a number when DayNumber is set, matching the
// create payload.
func (p ItineraryPatch) MarshalJSON() ([]byte, error) {
	type fields ItineraryPatch
	out := struct {
		fields
		Day any `json:"day,omitempty"`
	}{fields: fields(p)}
	switch {
	case p.DayNumber != nil:
		out.Day = *p.DayNumber
	case p.Day != nil:
		out.Day = *p.Day
	}
	return json.Marshal(out)
}

// Apply merges p into it. Setting only Day clears the numeric day index.
func (it ItineraryItem) Apply(p ItineraryPatch) ItineraryItem {
	if p.Title != nil {
		it.Title = *p.Title
	}
	if p.Day != nil {
		it.Day = *p.Day
		it.DayNumber = 0
	}
	if p.DayNumber != nil {
		it.DayNumber = *p.DayNumber
		if p.Day == nil {
			it.Day = strconv.Itoa(*p.DayNumber)
		}
	}
	if p.Time != nil {
		it.Time = *p.Time
	}
	if p.Notes != nil {
		it.Notes = *p.Notes
	}
	if p.StartAt != nil {
		it.StartAt = *p.StartAt
	}
	if p.EndAt != nil {
		it.EndAt = *p.EndAt
	}
	if p.Location != nil {
		it.Location = *p.Location
	}
	return it
}

// NotePatch is a partial update of a Note.
type NotePatch struct {
	Content *string `json:"content,omitempty"`
}

// Apply merges p into n.
func (n Note) Apply(p NotePatch) Note {
	if p.Content != nil {
		n.Content = *p.Content
	}
	return n
}

// ReminderPatch is a partial update of a Reminder.
type ReminderPatch struct {
	Content *string `json:"content,omitempty"`
	DueAt   *string `json:"due_at,omitempty"`
	Done    *bool   `json:"done,omitempty"`
}

// Apply merges p into r.
func (r Reminder) Apply(p ReminderPatch) Reminder {
	if p.Content != nil {
		r.Content = *p.Content
	}
	if p.DueAt != nil {
		r.DueAt = *p.DueAt
	}
	if p.Done != nil {
		r.Done = *p.Done
	}
	return r
}

// Drafts are trimmed and defaulted before they become optimistic records.

// PrepareTrip applies the create-time defaults to a trip draft.
func PrepareTrip(d Trip) Trip {
	d.Name = orDefault(d.Name, "New Trip")
	d.DateRange = orDefault(d.DateRange, "Dates TBD")
	d.StartDate = strings.TrimSpace(d.StartDate)
	d.EndDate = strings.TrimSpace(d.EndDate)
	if d.Destinations == nil {
		d.Destinations = []string{}
	}
	return d
}

// PrepareItineraryItem applies the create-time defaults to an itinerary draft.
func PrepareItineraryItem(d ItineraryItem) ItineraryItem {
	d.Title = orDefault(d.Title, "New item")
	d.Day = strings.TrimSpace(d.Day)
	d.Time = strings.TrimSpace(d.Time)
	d.Notes = strings.TrimSpace(d.Notes)
	return d
}

// PrepareNote trims a note draft.
func PrepareNote(d Note) Note {
	d.Content = strings.TrimSpace(d.Content)
	return d
}

// PrepareReminder trims a reminder draft.
func PrepareReminder(d Reminder) Reminder {
	d.Content = strings.TrimSpace(d.Content)
	d.DueAt = strings.TrimSpace(d.DueAt)
	return d
}

func orDefault(s, def string) string {
	if v := strings.TrimSpace(s); v != "" {
		return v
	}
	return def
}

// TripPayload is the POST body for a new trip.
type TripPayload struct {
	Name         string   `json:"name"`
	DateRange    string   `json:"dateRange"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Destinations []string `json:"destinations"`
}

// Payload returns the canonical create body for t.
func (t Trip) Payload() TripPayload {
	return TripPayload{
		Name:         t.Name,
		DateRange:    t.DateRange,
		StartDate:    t.StartDate,
		EndDate:      t.EndDate,
		Destinations: t.Destinations,
	}
}

// ItineraryPayload is the POST body for a new itinerary item. Day is either
// the numeric index or the label.
type ItineraryPayload struct {
	Title    string `json:"title"`
	Day      any    `json:"day,omitempty"`
	Time     string `json:"time,omitempty"`
	Notes    string `json:"notes,omitempty"`
	StartAt  string `json:"start_at,omitempty"`
	EndAt    string `json:"end_at,omitempty"`
	Location string `json:"location,omitempty"`
}

// Payload returns the canonical create body for it.
func (it ItineraryItem) Payload() ItineraryPayload {
	p := ItineraryPayload{
		Title:    it.Title,
		Time:     it.Time,
		Notes:    it.Notes,
		StartAt:  it.StartAt,
		EndAt:    it.EndAt,
		Location: it.Location,
	}
	switch {
	case it.DayNumber > 0:
		p.Day = it.DayNumber
	case it.Day != "":
		p.Day = it.Day
	}
	return p
}

// NotePayload is the POST body for a new note.
type NotePayload struct {
	Content string `json:"content"`
}

// Payload returns the canonical create body for n.
func (n Note) Payload() NotePayload {
	return NotePayload{Content: n.Content}
}

// ReminderPayload is the POST body for a new reminder.
type ReminderPayload struct {
	Content string `json:"content"`
	DueAt   string `json:"due_at,omitempty"`
	Done    bool   `json:"done"`
}

// Payload returns the canonical create body for r.
func (r Reminder) Payload() ReminderPayload {
	return ReminderPayload{Content: r.Content, DueAt: r.DueAt, Done: r.Done}
}
