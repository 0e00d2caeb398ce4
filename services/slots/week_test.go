package slots

import (
	"testing"
	"time"

	"autoslot/models"

	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(models.DateLayout, s)
	require.NoError(t, err)
	return d
}

func TestBuildWeek_EmptyServerList(t *testing.T) {
	week := BuildWeek(mustDate(t, "2026-03-02"), nil)

	require.Len(t, week, models.DaysPerWeek)
	for i, day := range week {
		require.Equal(t, mustDate(t, "2026-03-02").AddDate(0, 0, i).Format(models.DateLayout), day.Date)
		require.Equal(t, 1, day.Employees)
		require.Len(t, day.Hours, models.HoursPerDay)
		for h := 0; h < models.HoursPerDay; h++ {
			require.Equal(t, models.HourUnavailable, day.Hours[h])
		}
	}
	require.Equal(t, "Monday", week[0].DayName)
	require.Equal(t, "Sunday", week[6].DayName)
}

func TestBuildWeek_MergesPartialServerDay(t *testing.T) {
	server := []models.DaySchedule{
		{
			Date:      "2026-03-04",
			Employees: 2,
			Hours: map[int]models.HourStatus{
				3: models.HourAvailable,
				9: models.HourAvailable,
			},
		},
	}

	week := BuildWeek(mustDate(t, "2026-03-02"), server)

	day := week[2]
	require.Equal(t, "2026-03-04", day.Date)
	require.Equal(t, 2, day.Employees)
	require.Equal(t, models.HourAvailable, day.Hours[3])
	require.Equal(t, models.HourAvailable, day.Hours[9])

	unavailable := 0
	for h := 0; h < models.HoursPerDay; h++ {
		if day.Hours[h] == models.HourUnavailable {
			unavailable++
		}
	}
	require.Equal(t, 22, unavailable)
}

func TestBuildWeek_NormalizesDatetimeDates(t *testing.T) {
	server := []models.DaySchedule{
		{Date: "2026-03-03T00:00:00Z", Employees: 3},
	}

	week := BuildWeek(mustDate(t, "2026-03-02"), server)
	require.Equal(t, 3, week[1].Employees)
}

func TestBuildWeek_IgnoresDaysOutsideWindow(t *testing.T) {
	server := []models.DaySchedule{
		{Date: "2026-02-01", Employees: 9},
		{Date: "2026-04-01", Employees: 9},
	}

	week := BuildWeek(mustDate(t, "2026-03-02"), server)
	for _, day := range week {
		require.Equal(t, 1, day.Employees)
	}
}

func TestBuildWeek_DoesNotAliasServerHours(t *testing.T) {
	server := []models.DaySchedule{
		{Date: "2026-03-02", Employees: 1, Hours: map[int]models.HourStatus{5: models.HourAvailable}},
	}

	week := BuildWeek(mustDate(t, "2026-03-02"), server)
	week[0].Hours[5] = models.HourUnavailable

	require.Equal(t, models.HourAvailable, server[0].Hours[5])
}

func TestComputeWeekStats_Conservation(t *testing.T) {
	week := BuildWeek(mustDate(t, "2026-03-02"), []models.DaySchedule{
		{Date: "2026-03-05", Hours: map[int]models.HourStatus{0: models.HourAvailable, 12: models.HourAvailable}},
	})

	stats := ComputeWeekStats(week)
	require.Equal(t, 2, stats.AvailableHours)
	require.Equal(t, models.DaysPerWeek*models.HoursPerDay, stats.AvailableHours+stats.UnavailableHours)
}
