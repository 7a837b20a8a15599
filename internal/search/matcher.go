// Package search implements the trip-combination search: outbound discovery,
// per-day grid expansion, derived return windows, and trip synthesis.
package search

import (
	"context"
	"log"
	"time"

	"github.com/dharmasatrya/tripfinder/internal/calendar"
	"github.com/dharmasatrya/tripfinder/internal/fares"
	"github.com/dharmasatrya/tripfinder/internal/models"
)

type Searcher struct {
	source fares.Source
}

func NewSearcher(source fares.Source) *Searcher {
	return &Searcher{source: source}
}

// SearchReturn finds round trips within the date window and budget. With a
// single home airport it matches the round-trip day grid directly; with
// several it runs the two-phase outbound/return search. Results come back
// sorted by total price, cheapest first.
func (s *Searcher) SearchReturn(ctx context.Context, p models.SearchParams) []models.Trip {
	var trips []models.Trip
	if len(p.HomeAirports) == 1 {
		trips = s.searchSingleOrigin(ctx, p)
	} else {
		trips = s.searchMultiOrigin(ctx, p)
	}

	SortByTotalPrice(trips)
	return trips
}

// SearchOneWay runs only the outbound phase over the full window and wraps
// each alternative in a trip with no inbound leg.
func (s *Searcher) SearchOneWay(ctx context.Context, p models.SearchParams) []models.Trip {
	window := Window{
		DateMin:      p.DateMin,
		DateMax:      p.DateMax,
		PriceCeiling: p.PriceMax - p.PriceLowest,
	}

	legs := s.outboundAlternatives(ctx, p, window)
	trips := make([]models.Trip, 0, len(legs))
	for _, leg := range legs {
		trips = append(trips, models.NewOneWay(leg))
	}

	SortByTotalPrice(trips)
	return trips
}

// searchMultiOrigin is the two-phase strategy. Phase 1 discovers outbound
// alternatives across all home airports, with the window end pulled back by
// daysMin to leave room for the return and the ceiling narrowed by the
// lowest-expected-fare hint. Phase 2 derives a return window per outbound
// leg and repeats the expansion in the opposite direction; every pairing
// becomes a trip.
func (s *Searcher) searchMultiOrigin(ctx context.Context, p models.SearchParams) []models.Trip {
	outWindow := Window{
		DateMin:      p.DateMin,
		DateMax:      calendar.AddDays(p.DateMax, -p.DaysMin),
		PriceCeiling: p.PriceMax - p.PriceLowest,
	}

	var trips []models.Trip
	for _, outbound := range s.outboundAlternatives(ctx, p, outWindow) {
		window, ok := returnWindow(outbound, p)
		if !ok {
			continue
		}

		q := fares.Query{
			HomeAirports: []string{outbound.Arrival.IATA},
			DestAirports: p.HomeAirports,
			DateMin:      window.DateMin,
			DateMax:      window.DateMax,
			PriceCeiling: window.PriceCeiling,
		}
		for _, rep := range s.cheapestFares(ctx, q) {
			for _, inbound := range s.alternativeLegs(ctx, rep, window) {
				trips = append(trips, models.NewRoundTrip(outbound, inbound))
			}
		}
	}

	return trips
}

// outboundAlternatives runs the coarse representative query for the given
// window and expands every representative over it.
func (s *Searcher) outboundAlternatives(ctx context.Context, p models.SearchParams, w Window) []models.Leg {
	q := fares.Query{
		HomeAirports: p.HomeAirports,
		DestAirports: p.DestAirports,
		DestCountry:  p.DestCountry,
		DateMin:      w.DateMin,
		DateMax:      w.DateMax,
		PriceCeiling: w.PriceCeiling,
	}

	var legs []models.Leg
	for _, rep := range s.cheapestFares(ctx, q) {
		legs = append(legs, s.alternativeLegs(ctx, rep, w)...)
	}
	return legs
}

// searchSingleOrigin seeds routes with representative fares and matches the
// combined outbound/inbound day grids by index offset: an outbound on day i
// pairs with inbounds on days i+daysMin through i+daysMax.
func (s *Searcher) searchSingleOrigin(ctx context.Context, p models.SearchParams) []models.Trip {
	q := fares.Query{
		HomeAirports: p.HomeAirports,
		DestAirports: p.DestAirports,
		DestCountry:  p.DestCountry,
		DateMin:      p.DateMin,
		DateMax:      p.DateMax,
		PriceCeiling: p.PriceMax - p.PriceLowest,
	}

	var trips []models.Trip
	for _, rep := range s.cheapestFares(ctx, q) {
		trips = append(trips, s.matchRoundTripGrid(ctx, rep, p)...)
	}
	return trips
}

// matchRoundTripGrid collects both grid arrays over the same month set, so
// the outbound and inbound slices share their day indexing, then scans the
// duration offsets. Offsets past the end of the inbound array are skipped.
func (s *Searcher) matchRoundTripGrid(ctx context.Context, rep models.Leg, p models.SearchParams) []models.Trip {
	var outbounds, inbounds []models.Leg
	for _, month := range calendar.MonthsBetween(p.DateMin, p.DateMax) {
		grid, err := s.source.CheapestPerDay(ctx, rep.Departure.IATA, rep.Arrival.IATA, month)
		if err != nil {
			log.Printf("day grid %s-%s %s unavailable: %v",
				rep.Departure.IATA, rep.Arrival.IATA, month.Format("2006-01"), err)
			continue
		}
		outbounds = append(outbounds, grid.Outbound...)
		inbounds = append(inbounds, grid.Inbound...)
	}

	dateMax := calendar.EndOfDay(p.DateMax)

	var trips []models.Trip
	for i, outbound := range outbounds {
		if outbound.Unavailable || outbound.Price == nil {
			continue
		}
		if outbound.DepartureTime.Before(p.DateMin) || outbound.DepartureTime.After(dateMax) {
			continue
		}
		if *outbound.Price-p.PriceLowest > p.PriceMax {
			continue
		}

		earliestReturn := outbound.ArrivalTime.Add(time.Duration(p.HoursMin) * time.Hour)

		for j := p.DaysMin; j <= p.DaysMax; j++ {
			if i+j >= len(inbounds) {
				break
			}
			inbound := inbounds[i+j]
			if inbound.Unavailable || inbound.Price == nil {
				continue
			}
			if inbound.DepartureTime.Before(earliestReturn) {
				continue
			}
			if *outbound.Price+*inbound.Price > p.PriceMax {
				continue
			}

			trips = append(trips, models.NewRoundTrip(
				outbound.Enrich(rep.Departure, rep.Arrival),
				inbound.Enrich(rep.Arrival, rep.Departure),
			))
		}
	}

	return trips
}

// cheapestFares degrades a failed coarse query to an empty result so one bad
// upstream call does not abort the whole search.
func (s *Searcher) cheapestFares(ctx context.Context, q fares.Query) []models.Leg {
	legs, err := s.source.CheapestFares(ctx, q)
	if err != nil {
		log.Printf("cheapest fares query failed: %v", err)
		return nil
	}
	return legs
}
