package timecalc

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DateKeyLayout formats a calendar day key (YYYY-MM-DD).
	DateKeyLayout = "2006-01-02"
	// MonthKeyLayout formats a month key (YYYY-MM).
	MonthKeyLayout = "2006-01"

	humanDateLayout  = "Mon, Jan 2, 2006"
	monthLabelLayout = "January 2006"
)

// naiveLayouts are timestamp layouts without a zone; they are read in the
// caller's location.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	DateKeyLayout,
}

// NewTempID returns a single-use identifier for an optimistically created
// entity, e.g. "tmp-3f9a0c1d2e4b5a69".
func NewTempID() string {
	u := uuid.New()
	return "tmp-" + hex.EncodeToString(u[:8])
}

// ParseTimestamp parses RFC 3339 timestamps (converted to loc) and zoneless
// date or date-time strings (interpreted in loc).
func ParseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), true
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ToDateKey reduces a timestamp string to its calendar day in loc. ok is
// false for empty or unparseable input.
func ToDateKey(s string, loc *time.Location) (key string, ok bool) {
	t, ok := ParseTimestamp(s, loc)
	if !ok {
		return "", false
	}
	return t.Format(DateKeyLayout), true
}

// ParseDateKey parses a strict YYYY-MM-DD key at midnight in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateKeyLayout, key, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// AddDays shifts a date key by n days.
func AddDays(key string, n int) (string, bool) {
	t, ok := ParseDateKey(key, time.UTC)
	if !ok {
		return "", false
	}
	return t.AddDate(0, 0, n).Format(DateKeyLayout), true
}

// FormatDateKeyHuman renders a key like "Mon, Apr 13, 2026". Invalid keys
// are returned unchanged.
func FormatDateKeyHuman(key string) string {
	t, ok := ParseDateKey(key, time.UTC)
	if !ok {
		return key
	}
	return t.Format(humanDateLayout)
}

// ParseMonthKey validates a strict YYYY-MM key.
func ParseMonthKey(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	t, err := time.Parse(DateKeyLayout, raw+"-01")
	if err != nil {
		return "", false
	}
	return t.Format(MonthKeyLayout), true
}

// CurrentMonthKey returns the month key of now.
func CurrentMonthKey(now time.Time) string {
	return now.Format(MonthKeyLayout)
}

// AddMonths steps a month key by n months.
func AddMonths(monthKey string, n int) (string, bool) {
	key, ok := ParseMonthKey(monthKey)
	if !ok {
		return "", false
	}
	t, _ := time.Parse(MonthKeyLayout, key)
	return t.AddDate(0, n, 0).Format(MonthKeyLayout), true
}

// MonthInfo describes a calendar month.
type MonthInfo struct {
	Year  int
	Month time.Month
	Key   string
	Label string
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) MonthInfo {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return MonthInfo{
		Year:  start.Year(),
		Month: start.Month(),
		Key:   start.Format(MonthKeyLayout),
		Label: start.Format(monthLabelLayout),
	}
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	// Go's weekday: Sunday=0, Monday=1, …, Saturday=6
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // treat Sunday as 7 (ISO)
	}
	monday := StartOfDay(t.AddDate(0, 0, -(wd - 1)))
	sunday := monday.AddDate(0, 0, 6)
	sunday = time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 23, 59, 59, 0, t.Location())
	return monday, sunday
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
