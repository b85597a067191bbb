package normalize

import (
	"strings"

	"github.com/Tiliavir/trivial-trip-planner/internal/model"
)

// Trip coerces a backend trip payload. Backends may send
// {id, name, start_date, end_date, destinations: [...]} while the UI wants a
// display date range.
func Trip(raw any) model.Trip {
	m, ok := raw.(map[string]any)
	if !ok {
		return model.Trip{Destinations: []string{}}
	}

	name := "Untitled trip"
	if v, ok := first(m, "name", "title"); ok {
		name = stringify(v)
	}

	start := firstString(m, "start_date", "startDate")
	end := firstString(m, "end_date", "endDate")

	var dateRange string
	if v, ok := first(m, "dateRange", "date_range"); ok {
		dateRange = stringify(v)
	} else {
		switch {
		case start != "" && end != "":
			dateRange = start + "–" + end
		case start != "":
			dateRange = start
		case end != "":
			dateRange = end
		default:
			dateRange = "Dates TBD"
		}
	}

	return model.Trip{
		Meta:         model.Meta{Ref: model.Confirmed(firstString(m, "id", "trip_id", "uuid"))},
		Name:         name,
		DateRange:    dateRange,
		StartDate:    start,
		EndDate:      end,
		Destinations: destinations(m["destinations"]),
	}
}

// destinations accepts strings or {name} objects and drops blanks.
func destinations(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(list))
	for _, d := range list {
		var name string
		switch x := d.(type) {
		case string:
			name = x
		case map[string]any:
			name = firstString(x, "name")
		}
		if strings.TrimSpace(name) != "" {
			out = append(out, name)
		}
	}
	return out
}
