package models

import "time"

type Airport struct {
	IATA string `json:"iata"`
	City string `json:"city"`
}

// Label renders the airport the way trips are reported, e.g. "Krakow/KRK".
func (a Airport) Label() string {
	return a.City + "/" + a.IATA
}

// Leg is one directional flight offer. Grid records arrive without airport
// identity and get it attached during enrichment; a Leg is not mutated after
// that point. Price stays nil for days the fare feed has no offer.
type Leg struct {
	Departure     Airport   `json:"departure_airport"`
	Arrival       Airport   `json:"arrival_airport"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	Price         *float64  `json:"price,omitempty"`
	Unavailable   bool      `json:"unavailable,omitempty"`
}

// Enrich returns a copy of the leg carrying the given route identity.
func (l Leg) Enrich(departure, arrival Airport) Leg {
	l.Departure = departure
	l.Arrival = arrival
	return l
}

// PriceValue returns the fare value, or 0 when no price is set.
func (l Leg) PriceValue() float64 {
	if l.Price == nil {
		return 0
	}
	return *l.Price
}
