package utils

import "time"

// AddBusinessDays advances a date by the given number of weekdays, skipping
// Saturdays and Sundays
func AddBusinessDays(date time.Time, days int) time.Time {
	result := date
	count := 0
	for count < days {
		result = result.AddDate(0, 0, 1)
		if result.Weekday() != time.Saturday && result.Weekday() != time.Sunday {
			count++
		}
	}
	return result
}

// AddMonths advances a date by calendar months
func AddMonths(date time.Time, months int) time.Time {
	return date.AddDate(0, months, 0)
}

// MonthKey formats a time as the calendar-month bucket key used across the
// ledger and metrics history, e.g. "2026-08"
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthStart returns the first instant of the month monthOffset months before
// the given time (0 = current month)
func MonthStart(now time.Time, monthOffset int) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -monthOffset, 0)
}
