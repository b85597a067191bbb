package model

// Meta holds the identity and the transient UI-only flags shared by every
// entity kind. Optimistic is set while a mutation is in flight; Mock is set
// when the record came from local sample data.
type Meta struct {
	Ref        Ref  `json:"id"`
	Optimistic bool `json:"optimistic,omitempty"`
	Mock       bool `json:"mock,omitempty"`
}

// ID is a shortcut for Ref.ID.
func (m Meta) ID() string { return m.Ref.ID() }

// Entity is implemented by every record a store can hold. WithMetadata
// returns a copy; entities are values and never mutated in place.
type Entity[T any] interface {
	Metadata() Meta
	WithMetadata(Meta) T
}

// Trip is a planned journey shown in the sidebar.
type Trip struct {
	Meta
	Name         string   `json:"name"`
	DateRange    string   `json:"dateRange"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Destinations []string `json:"destinations"`
}

func (t Trip) Metadata() Meta { return t.Meta }

func (t Trip) WithMetadata(m Meta) Trip {
	t.Meta = m
	return t
}

// ItineraryItem is a single planned activity within a trip. Day keeps the
// label as received ("Day 2"); DayNumber is set when the backend sent a
// numeric day index.
type ItineraryItem struct {
	Meta
	Title     string `json:"title"`
	Day       string `json:"day,omitempty"`
	DayNumber int    `json:"day_number,omitempty"`
	Time      string `json:"time,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Order     *int   `json:"order,omitempty"`
	StartAt   string `json:"start_at,omitempty"`
	EndAt     string `json:"end_at,omitempty"`
	Location  string `json:"location,omitempty"`
}

func (it ItineraryItem) Metadata() Meta { return it.Meta }

func (it ItineraryItem) WithMetadata(m Meta) ItineraryItem {
	it.Meta = m
	return it
}

// Note is free text attached to a trip.
type Note struct {
	Meta
	Content   string `json:"content"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

func (n Note) Metadata() Meta { return n.Meta }

func (n Note) WithMetadata(m Meta) Note {
	n.Meta = m
	return n
}

// Reminder is a to-do item attached to a trip, optionally due at a time.
type Reminder struct {
	Meta
	Content   string `json:"content"`
	DueAt     string `json:"due_at,omitempty"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

func (r Reminder) Metadata() Meta { return r.Meta }

func (r Reminder) WithMetadata(m Meta) Reminder {
	r.Meta = m
	return r
}
