package models

import "time"

// Trip pairs an outbound leg with an optional inbound leg. A nil inbound
// means a one-way result. Trips are value records; only the matcher creates
// them.
type Trip struct {
	Outbound   Leg     `json:"outbound"`
	Inbound    *Leg    `json:"inbound,omitempty"`
	TotalPrice float64 `json:"total_price"`
}

func NewRoundTrip(outbound, inbound Leg) Trip {
	return Trip{
		Outbound:   outbound,
		Inbound:    &inbound,
		TotalPrice: outbound.PriceValue() + inbound.PriceValue(),
	}
}

func NewOneWay(outbound Leg) Trip {
	return Trip{
		Outbound:   outbound,
		TotalPrice: outbound.PriceValue(),
	}
}

type TripLeg struct {
	Home        string    `json:"home"`
	Destination string    `json:"destination"`
	Takeoff     time.Time `json:"takeoff"`
	Landing     time.Time `json:"landing"`
	Price       float64   `json:"price"`
}

type TripSummary struct {
	Outbound   TripLeg  `json:"outbound"`
	Inbound    *TripLeg `json:"inbound,omitempty"`
	TotalPrice float64  `json:"totalPrice"`
}

// Summary flattens the trip into the reported shape with "City/IATA" labels.
func (t Trip) Summary() TripSummary {
	s := TripSummary{
		Outbound:   legSummary(t.Outbound),
		TotalPrice: t.TotalPrice,
	}
	if t.Inbound != nil {
		in := legSummary(*t.Inbound)
		s.Inbound = &in
	}
	return s
}

func legSummary(l Leg) TripLeg {
	return TripLeg{
		Home:        l.Departure.Label(),
		Destination: l.Arrival.Label(),
		Takeoff:     l.DepartureTime,
		Landing:     l.ArrivalTime,
		Price:       l.PriceValue(),
	}
}

func Summaries(trips []Trip) []TripSummary {
	out := make([]TripSummary, len(trips))
	for i, t := range trips {
		out[i] = t.Summary()
	}
	return out
}
