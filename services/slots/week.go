package slots

import (
	"time"

	"autoslot/models"
)

// WeekDates returns the seven consecutive canonical dates starting at the
// anchor date.
func WeekDates(weekStart time.Time) []string {
	dates := make([]string, models.DaysPerWeek)
	for i := 0; i < models.DaysPerWeek; i++ {
		dates[i] = weekStart.AddDate(0, 0, i).Format(models.DateLayout)
	}
	return dates
}

// BuildWeek merges the platform's day-records into a complete, gap-free
// 7-day schedule for the week anchored at weekStart. Days the platform does
// not know about are synthesized with one employee and every hour
// unavailable; known days have missing hours backfilled as unavailable. The
// operation is total over any input, including an empty server list.
func BuildWeek(weekStart time.Time, serverDays []models.DaySchedule) models.WeekSchedule {
	byDate := make(map[string]models.DaySchedule, len(serverDays))
	for _, day := range serverDays {
		byDate[models.NormalizeDate(day.Date)] = day
	}

	week := make(models.WeekSchedule, 0, models.DaysPerWeek)
	for _, date := range WeekDates(weekStart) {
		day := models.DaySchedule{Date: date, Employees: 1}
		if src, ok := byDate[date]; ok {
			day.Employees = src.Employees
			if day.Employees < 1 {
				day.Employees = 1
			}
			day.Hours = src.Hours
		}
		day.DayName = models.DayNameFor(date)
		// NormalizeHours rebuilds the map, so the server record is never
		// aliased by the editable week.
		day.NormalizeHours()
		week = append(week, day)
	}
	return week
}

// ComputeWeekStats counts the 7x24 grid by status. The two counts always
// sum to 168 for a merged week. Stats are recomputed on demand, never
// cached across mutations.
func ComputeWeekStats(week models.WeekSchedule) models.WeekStats {
	var stats models.WeekStats
	for _, day := range week {
		for _, status := range day.Hours {
			if status == models.HourAvailable {
				stats.AvailableHours++
			} else {
				stats.UnavailableHours++
			}
		}
	}
	return stats
}
