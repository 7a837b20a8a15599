// Package calendar holds the date arithmetic used to bound per-day fare grid
// queries.
package calendar

import "time"

// MonthsBetween lists the first day of every month from dateMin's month up to
// and including dateMax's month. dateMin's day is normalized to 1 before the
// comparison, so the month containing dateMin is always included.
func MonthsBetween(dateMin, dateMax time.Time) []time.Time {
	current := time.Date(dateMin.Year(), dateMin.Month(), 1, 0, 0, 0, 0, dateMin.Location())

	var firstDays []time.Time
	for !current.After(dateMax) {
		firstDays = append(firstDays, current)
		current = current.AddDate(0, 1, 0)
	}

	return firstDays
}

func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay widens a date-only bound to 23:59 of the same day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 0, 0, t.Location())
}
