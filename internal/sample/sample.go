// Package sample provides the built-in dataset the stores fall back to when
// the backend is disabled or unreachable.
package sample

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/trivial-trip-planner/internal/model"
)

//go:embed data.yaml
var raw []byte

type tripRecord struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	DateRange    string   `yaml:"date_range"`
	StartDate    string   `yaml:"start_date"`
	EndDate      string   `yaml:"end_date"`
	Destinations []string `yaml:"destinations"`
}

type itineraryRecord struct {
	ID    string `yaml:"id"`
	Day   string `yaml:"day"`
	Title string `yaml:"title"`
	Time  string `yaml:"time"`
}

// Destination is a destination search result.
type Destination struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	Country string `yaml:"country" json:"country"`
	Summary string `yaml:"summary" json:"summary"`
}

type dataset struct {
	Trips        []tripRecord                 `yaml:"trips"`
	Itinerary    map[string][]itineraryRecord `yaml:"itinerary"`
	Notes        map[string][]string          `yaml:"notes"`
	Reminders    map[string][]string          `yaml:"reminders"`
	Destinations []Destination                `yaml:"destinations"`
}

var load = sync.OnceValue(func() dataset {
	var d dataset
	if err := yaml.Unmarshal(raw, &d); err != nil {
		panic(fmt.Sprintf("sample: parsing embedded data: %v", err))
	}
	return d
})

func mockMeta(id string) model.Meta {
	return model.Meta{Ref: model.Confirmed(id), Mock: true}
}

// Trips returns a fresh copy of the sample trips.
func Trips() []model.Trip {
	recs := load().Trips
	out := make([]model.Trip, 0, len(recs))
	for _, r := range recs {
		out = append(out, model.Trip{
			Meta:         mockMeta(r.ID),
			Name:         r.Name,
			DateRange:    r.DateRange,
			StartDate:    r.StartDate,
			EndDate:      r.EndDate,
			Destinations: append([]string{}, r.Destinations...),
		})
	}
	return out
}

// Itinerary returns the sample itinerary of tripID, empty for unknown trips.
func Itinerary(tripID string) []model.ItineraryItem {
	recs := load().Itinerary[tripID]
	out := make([]model.ItineraryItem, 0, len(recs))
	for _, r := range recs {
		out = append(out, model.ItineraryItem{
			Meta:  mockMeta(r.ID),
			Day:   r.Day,
			Title: r.Title,
			Time:  r.Time,
		})
	}
	return out
}

// Notes converts the sample note texts of tripID into entities with ids of
// the form mock-<tripID>-<index>.
func Notes(tripID string) []model.Note {
	texts := load().Notes[tripID]
	out := make([]model.Note, 0, len(texts))
	for i, s := range texts {
		out = append(out, model.Note{Meta: mockMeta(mockID(tripID, i)), Content: s})
	}
	return out
}

// Reminders converts the sample reminder texts of tripID like Notes does.
// Sample reminders are never done.
func Reminders(tripID string) []model.Reminder {
	texts := load().Reminders[tripID]
	out := make([]model.Reminder, 0, len(texts))
	for i, s := range texts {
		out = append(out, model.Reminder{Meta: mockMeta(mockID(tripID, i)), Content: s})
	}
	return out
}

// SearchDestinations matches query case-insensitively against name, country
// and summary. An empty query returns every destination.
func SearchDestinations(query string) []Destination {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Destination
	for _, d := range load().Destinations {
		if q == "" ||
			strings.Contains(strings.ToLower(d.Name), q) ||
			strings.Contains(strings.ToLower(d.Country), q) ||
			strings.Contains(strings.ToLower(d.Summary), q) {
			out = append(out, d)
		}
	}
	return out
}

func mockID(tripID string, idx int) string {
	return fmt.Sprintf("mock-%s-%d", tripID, idx)
}
