package search

import (
	"context"
	"log"

	"github.com/dharmasatrya/tripfinder/internal/calendar"
	"github.com/dharmasatrya/tripfinder/internal/models"
)

// alternativeLegs expands one representative leg into every day-level
// alternative for the same route that fits the window. It walks each month
// overlapping the window, pulls the per-day grid, filters it, and enriches
// the surviving entries with the representative's route identity (grid
// records carry only price and dates). An empty result is a valid outcome.
func (s *Searcher) alternativeLegs(ctx context.Context, rep models.Leg, w Window) []models.Leg {
	var alternatives []models.Leg

	for _, month := range calendar.MonthsBetween(w.DateMin, w.DateMax) {
		grid, err := s.source.CheapestPerDay(ctx, rep.Departure.IATA, rep.Arrival.IATA, month)
		if err != nil {
			log.Printf("day grid %s-%s %s unavailable: %v",
				rep.Departure.IATA, rep.Arrival.IATA, month.Format("2006-01"), err)
			continue
		}

		for _, leg := range grid.Outbound {
			if !w.Contains(leg) {
				continue
			}
			alternatives = append(alternatives, leg.Enrich(rep.Departure, rep.Arrival))
		}
	}

	return alternatives
}
