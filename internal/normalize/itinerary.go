package normalize

import "github.com/Tiliavir/trivial-trip-planner/internal/model"

// ItineraryItem coerces a backend itinerary payload.
func ItineraryItem(raw any) model.ItineraryItem {
	m, ok := raw.(map[string]any)
	if !ok {
		return model.ItineraryItem{}
	}

	it := model.ItineraryItem{
		Meta:     model.Meta{Ref: model.Confirmed(firstString(m, "id", "item_id", "itinerary_item_id", "uuid"))},
		Title:    firstString(m, "title", "name", "summary"),
		Time:     firstString(m, "time", "at_time", "atTime"),
		Notes:    firstString(m, "notes", "description"),
		StartAt:  timestamp(m, "start_at", "startAt", "start_time"),
		EndAt:    timestamp(m, "end_at", "endAt", "end_time"),
		Location: firstString(m, "location", "place"),
	}

	if v, ok := first(m, "day", "day_label", "dayLabel"); ok {
		it.Day = stringify(v)
		if _, isString := v.(string); !isString {
			if n, ok := integer(v); ok {
				it.DayNumber = n
			}
		}
	}
	if v, ok := m["order"]; ok {
		if n, ok := integer(v); ok {
			it.Order = &n
		}
	}
	return it
}
