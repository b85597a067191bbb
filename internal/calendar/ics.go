package calendar

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/Tiliavir/trivial-trip-planner/internal/model"
	"github.com/Tiliavir/trivial-trip-planner/internal/timecalc"
)

const productID = "-//trivial-trip-planner//ttp//EN"

// ExportICS renders the dated entities of a trip as an iCalendar document.
// Itinerary items with timestamps become timed events; everything else is an
// all-day event on its bucket day.
func ExportICS(trip model.Trip, c Context, b Buckets, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	if trip.Name != "" {
		cal.SetName(trip.Name)
	}

	loc := c.Location
	if loc == nil {
		loc = time.Local
	}

	for _, key := range b.Keys() {
		day, ok := timecalc.ParseDateKey(key, loc)
		if !ok {
			continue
		}
		bucket := b[key]

		for _, it := range bucket.Itinerary {
			ev := cal.AddEvent(uid("itinerary", it.ID(), trip.ID()))
			ev.SetDtStampTime(now.UTC())
			ev.SetSummary(orText(it.Title, "Itinerary item"))
			if it.Notes != "" {
				ev.SetDescription(it.Notes)
			}
			if it.Location != "" {
				ev.SetLocation(it.Location)
			}
			start, timed := timecalc.ParseTimestamp(it.StartAt, loc)
			if !timed || len(strings.TrimSpace(it.StartAt)) == len(timecalc.DateKeyLayout) {
				allDay(ev, day)
				continue
			}
			ev.SetStartAt(start)
			if end, ok := timecalc.ParseTimestamp(it.EndAt, loc); ok && end.After(start) {
				ev.SetEndAt(end)
			} else {
				ev.SetEndAt(start.Add(time.Hour))
			}
		}

		for _, n := range bucket.Notes {
			ev := cal.AddEvent(uid("note", n.ID(), trip.ID()))
			ev.SetDtStampTime(now.UTC())
			ev.SetSummary("Note: " + orText(n.Content, "(empty)"))
			allDay(ev, day)
		}

		for _, r := range bucket.Reminders {
			ev := cal.AddEvent(uid("reminder", r.ID(), trip.ID()))
			ev.SetDtStampTime(now.UTC())
			prefix := "Reminder: "
			if r.Done {
				prefix = "Reminder (done): "
			}
			ev.SetSummary(prefix + orText(r.Content, "(empty)"))
			allDay(ev, day)
		}
	}
	return cal.Serialize()
}

func allDay(ev *ical.VEvent, day time.Time) {
	ev.SetAllDayStartAt(day)
	ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
}

func uid(kind, id, tripID string) string {
	return fmt.Sprintf("%s-%s-%s@ttp", tripID, kind, id)
}

func orText(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
