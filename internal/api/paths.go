package api

import "net/url"

// TripsPath is the trips collection endpoint.
func TripsPath() string { return "/api/trips" }

// TripPath is the endpoint of one trip.
func TripPath(tripID string) string {
	return "/api/trips/" + url.PathEscape(tripID)
}

// TripChildPath is a per-trip collection endpoint, e.g. /api/trips/t1/notes.
func TripChildPath(tripID, child string) string {
	return TripPath(tripID) + "/" + child
}

// TripChildItemPath is one entity under a per-trip collection.
func TripChildItemPath(tripID, child, itemID string) string {
	return TripChildPath(tripID, child) + "/" + url.PathEscape(itemID)
}
