// Package calendar projects itinerary items, notes and reminders onto
// calendar days and builds the month grid they are shown in.
package calendar

import (
	"regexp"
	"slices"
	"strconv"
	"time"

	"github.com/Tiliavir/trivial-trip-planner/internal/model"
	"github.com/Tiliavir/trivial-trip-planner/internal/timecalc"
)

// Context carries what date derivation needs beyond the entity itself.
type Context struct {
	// TripStartDate anchors "Day N" itinerary entries. Optional.
	TripStartDate string
	// Location reduces timestamps to dates. Nil means time.Local.
	Location *time.Location
}

// ContextFor builds a Context from a trip.
func ContextFor(trip model.Trip, loc *time.Location) Context {
	return Context{TripStartDate: trip.StartDate, Location: loc}
}

var dayLabel = regexp.MustCompile(`(?i)day\s*(\d+)`)

// DateKeyForItinerary resolves an item's day. An explicit start (or end)
// timestamp wins; otherwise a numeric or "Day N" index is counted from the
// trip start date.
func DateKeyForItinerary(it model.ItineraryItem, c Context) (string, bool) {
	direct := it.StartAt
	if direct == "" {
		direct = it.EndAt
	}
	if key, ok := timecalc.ToDateKey(direct, c.Location); ok {
		return key, true
	}

	if c.TripStartDate == "" {
		return "", false
	}
	start, ok := timecalc.ToDateKey(c.TripStartDate, c.Location)
	if !ok {
		return "", false
	}

	if it.DayNumber > 0 {
		return timecalc.AddDays(start, it.DayNumber-1)
	}
	if m := dayLabel.FindStringSubmatch(it.Day); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return timecalc.AddDays(start, n-1)
		}
	}
	return "", false
}

// DateKeyForNote uses the creation time, then the update time.
func DateKeyForNote(n model.Note, c Context) (string, bool) {
	ts := n.CreatedAt
	if ts == "" {
		ts = n.UpdatedAt
	}
	return timecalc.ToDateKey(ts, c.Location)
}

// DateKeyForReminder uses the due time.
func DateKeyForReminder(r model.Reminder, c Context) (string, bool) {
	return timecalc.ToDateKey(r.DueAt, c.Location)
}

// Bucket groups the entities that fall on one day.
type Bucket struct {
	Itinerary []model.ItineraryItem `json:"itinerary"`
	Notes     []model.Note          `json:"notes"`
	Reminders []model.Reminder      `json:"reminders"`
}

// Counts summarises a Bucket.
type Counts struct {
	Itinerary int `json:"itinerary"`
	Notes     int `json:"notes"`
	Reminders int `json:"reminders"`
}

// Total is the number of entities on the day.
func (c Counts) Total() int { return c.Itinerary + c.Notes + c.Reminders }

// Buckets maps date keys to the entities on that day. Undated entities are
// left out.
type Buckets map[string]*Bucket

// Project buckets the three collections by day. Order within a bucket
// follows the input order.
func Project(c Context, itinerary []model.ItineraryItem, notes []model.Note, reminders []model.Reminder) Buckets {
	b := Buckets{}
	for _, it := range itinerary {
		if key, ok := DateKeyForItinerary(it, c); ok {
			b.at(key).Itinerary = append(b.at(key).Itinerary, it)
		}
	}
	for _, n := range notes {
		if key, ok := DateKeyForNote(n, c); ok {
			b.at(key).Notes = append(b.at(key).Notes, n)
		}
	}
	for _, r := range reminders {
		if key, ok := DateKeyForReminder(r, c); ok {
			b.at(key).Reminders = append(b.at(key).Reminders, r)
		}
	}
	return b
}

func (b Buckets) at(key string) *Bucket {
	bk, ok := b[key]
	if !ok {
		bk = &Bucket{}
		b[key] = bk
	}
	return bk
}

// Day returns the bucket for key, empty if nothing is on that day.
func (b Buckets) Day(key string) Bucket {
	if bk, ok := b[key]; ok {
		return *bk
	}
	return Bucket{}
}

// Keys returns the dated days in ascending order.
func (b Buckets) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// CountsByDate summarises every bucket.
func (b Buckets) CountsByDate() map[string]Counts {
	out := make(map[string]Counts, len(b))
	for k, v := range b {
		out[k] = Counts{
			Itinerary: len(v.Itinerary),
			Notes:     len(v.Notes),
			Reminders: len(v.Reminders),
		}
	}
	return out
}
