package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	cases := map[string]string{
		"2026-03-02":           "2026-03-02",
		"2026-03-02T15:04:05Z": "2026-03-02",
		"2026-03-02 15:04:05":  "2026-03-02",
		"garbage":              "garbage",
	}
	for in, want := range cases {
		require.Equal(t, want, NormalizeDate(in), "input %q", in)
	}
}

func TestDayNameFor(t *testing.T) {
	require.Equal(t, "Monday", DayNameFor("2026-03-02"))
	require.Equal(t, "", DayNameFor("not-a-date"))
}

func TestNormalizeHours(t *testing.T) {
	day := DaySchedule{
		Date: "2026-03-02",
		Hours: map[int]HourStatus{
			3:  HourAvailable,
			99: HourAvailable,       // out of range, dropped
			5:  HourStatus("weird"), // unknown status, coerced
		},
	}
	day.NormalizeHours()

	require.Len(t, day.Hours, HoursPerDay)
	require.Equal(t, HourAvailable, day.Hours[3])
	require.Equal(t, HourUnavailable, day.Hours[5])
	require.Equal(t, HourUnavailable, day.Hours[0])
	_, hasOutOfRange := day.Hours[99]
	require.False(t, hasOutOfRange)
}

func TestDayScheduleCloneIsDeep(t *testing.T) {
	day := DaySchedule{Date: "2026-03-02", Employees: 2, Hours: map[int]HourStatus{1: HourAvailable}}
	clone := day.Clone()
	clone.Hours[1] = HourUnavailable

	require.Equal(t, HourAvailable, day.Hours[1])
}

func TestDayScheduleEqual(t *testing.T) {
	a := DaySchedule{Date: "2026-03-02", Employees: 2, Hours: map[int]HourStatus{1: HourAvailable}}
	b := a.Clone()
	require.True(t, a.Equal(b))

	b.Hours[1] = HourUnavailable
	require.False(t, a.Equal(b))

	c := a.Clone()
	c.Employees = 3
	require.False(t, a.Equal(c))
}

func TestSortByDate(t *testing.T) {
	days := []DaySchedule{{Date: "2026-03-05"}, {Date: "2026-03-02"}, {Date: "2026-03-04"}}
	SortByDate(days)
	require.Equal(t, "2026-03-02", days[0].Date)
	require.Equal(t, "2026-03-04", days[1].Date)
	require.Equal(t, "2026-03-05", days[2].Date)
}
