package models

import (
	"sort"
	"time"
)

// HourStatus marks a single hour of a provider's day as bookable or not.
type HourStatus string

const (
	HourAvailable   HourStatus = "available"
	HourUnavailable HourStatus = "unavailable"
)

const (
	HoursPerDay = 24
	DaysPerWeek = 7
	// DateLayout is the canonical wire format for schedule dates.
	DateLayout = "2006-01-02"
)

// DaySchedule is one calendar day of a provider's availability grid.
// Hours is total: every key 0..23 is present once the record has passed
// through NormalizeHours, defaulting to unavailable.
type DaySchedule struct {
	Date      string             `json:"date"`
	DayName   string             `json:"dayName"`
	Employees int                `json:"employees"`
	Hours     map[int]HourStatus `json:"hours"`
}

// WeekSchedule is an ordered run of seven consecutive days.
type WeekSchedule []DaySchedule

// WeekStats aggregates the 7x24 grid by hour status.
type WeekStats struct {
	AvailableHours   int `json:"availableHours"`
	UnavailableHours int `json:"unavailableHours"`
}

// Clone returns a deep copy of the day record so callers can hand out
// snapshots without sharing the Hours map.
func (d DaySchedule) Clone() DaySchedule {
	out := d
	out.Hours = make(map[int]HourStatus, HoursPerDay)
	for h, status := range d.Hours {
		out.Hours[h] = status
	}
	return out
}

// Equal reports whether two day records carry the same date, staffing and
// hour-by-hour statuses.
func (d DaySchedule) Equal(other DaySchedule) bool {
	if d.Date != other.Date || d.Employees != other.Employees || len(d.Hours) != len(other.Hours) {
		return false
	}
	for h, status := range d.Hours {
		if other.Hours[h] != status {
			return false
		}
	}
	return true
}

// NormalizeHours backfills any missing hour with unavailable and drops keys
// outside 0..23.
func (d *DaySchedule) NormalizeHours() {
	normalized := make(map[int]HourStatus, HoursPerDay)
	for h := 0; h < HoursPerDay; h++ {
		status, ok := d.Hours[h]
		if !ok || status != HourAvailable {
			status = HourUnavailable
		}
		normalized[h] = status
	}
	d.Hours = normalized
}

// Clone deep-copies the whole week.
func (w WeekSchedule) Clone() WeekSchedule {
	out := make(WeekSchedule, len(w))
	for i, day := range w {
		out[i] = day.Clone()
	}
	return out
}

// NormalizeDate coerces the date or datetime representations the upstream
// API emits into the canonical YYYY-MM-DD form. Unparseable input is
// returned unchanged so a mismatch surfaces as a non-matching date rather
// than a silent drop.
func NormalizeDate(raw string) string {
	if len(raw) >= len(DateLayout) {
		if _, err := time.Parse(DateLayout, raw[:len(DateLayout)]); err == nil {
			return raw[:len(DateLayout)]
		}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(DateLayout)
		}
	}
	return raw
}

// DayNameFor derives the display weekday label from a canonical date.
// The label is presentational only and recomputed rather than trusted.
func DayNameFor(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}

// SortByDate orders day records by ascending date in place.
func SortByDate(days []DaySchedule) {
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
}
