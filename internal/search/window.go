package search

import (
	"time"

	"github.com/dharmasatrya/tripfinder/internal/calendar"
	"github.com/dharmasatrya/tripfinder/internal/models"
)

// Window bounds one search phase: a date range plus a price ceiling. DateMax
// is widened to end-of-day (23:59) at filter time, so date-only bounds admit
// departures any time on the last day.
type Window struct {
	DateMin      time.Time
	DateMax      time.Time
	PriceCeiling float64
}

func (w Window) Contains(leg models.Leg) bool {
	if leg.Price == nil || *leg.Price > w.PriceCeiling {
		return false
	}
	if leg.DepartureTime.Before(w.DateMin) {
		return false
	}
	if leg.DepartureTime.After(calendar.EndOfDay(w.DateMax)) {
		return false
	}
	return true
}

// returnWindow derives the window for the return phase from an outbound leg:
// the earliest return is daysMin days after arrival floored to midnight (or
// hoursMin hours after arrival when daysMin is zero), the latest is daysMax
// days after arrival clipped to the overall search end, and the budget is
// whatever the outbound leg left over. A window that closes before it opens
// reports ok=false and yields no candidates.
func returnWindow(outbound models.Leg, p models.SearchParams) (Window, bool) {
	var dateMin time.Time
	if p.DaysMin == 0 {
		dateMin = outbound.ArrivalTime.Add(time.Duration(p.HoursMin) * time.Hour)
	} else {
		dateMin = calendar.StartOfDay(calendar.AddDays(outbound.ArrivalTime, p.DaysMin))
	}

	dateMax := calendar.AddDays(outbound.ArrivalTime, p.DaysMax)
	if p.DateMax.Before(dateMax) {
		dateMax = p.DateMax
	}
	dateMax = calendar.EndOfDay(dateMax)

	if dateMax.Before(dateMin) {
		return Window{}, false
	}

	return Window{
		DateMin:      dateMin,
		DateMax:      dateMax,
		PriceCeiling: p.PriceMax - outbound.PriceValue(),
	}, true
}
