package models

import "time"

const dateLayout = "2006-01-02"

// SearchRequest is the wire-level input: dates as ISO calendar dates, the
// rest as received from the CLI or the HTTP API.
type SearchRequest struct {
	HomeAirports []string `json:"home_airports"`
	DestAirports []string `json:"dest_airports,omitempty"`
	DestCountry  string   `json:"dest_country,omitempty"`
	DateMin      string   `json:"date_min"`
	DateMax      string   `json:"date_max"`
	DaysMin      int      `json:"days_min"`
	DaysMax      int      `json:"days_max"`
	HoursMin     int      `json:"hours_min"`
	PriceMax     float64  `json:"price_max"`
	PriceLowest  float64  `json:"price_lowest"`
	Passengers   int      `json:"passengers"`
	Currency     string   `json:"currency"`
	OneWay       bool     `json:"one_way,omitempty"`
}

// SearchParams is the validated, typed form consumed by the matcher.
type SearchParams struct {
	HomeAirports []string
	DestAirports []string
	DestCountry  string
	DateMin      time.Time
	DateMax      time.Time
	DaysMin      int
	DaysMax      int
	HoursMin     int
	PriceMax     float64
	PriceLowest  float64
	Passengers   int
	Currency     string
}

func (r *SearchRequest) Validate() error {
	if len(r.HomeAirports) == 0 {
		return ErrMissingHomeAirports
	}
	if len(r.DestAirports) > 0 && r.DestCountry != "" {
		return ErrDestConflict
	}
	if r.DateMin == "" || r.DateMax == "" {
		return ErrMissingDates
	}
	if r.DaysMin < 0 || r.DaysMax < r.DaysMin {
		return ErrBadDuration
	}
	if r.PriceMax <= 0 {
		return ErrMissingPriceMax
	}
	if r.PriceLowest < 0 || r.PriceLowest >= r.PriceMax {
		return ErrBadPriceLowest
	}
	if r.Passengers <= 0 {
		r.Passengers = 1
	}
	if r.Currency == "" {
		r.Currency = "EUR"
	}
	return nil
}

// Params parses the request into its typed form. Validate must have passed.
func (r *SearchRequest) Params() (SearchParams, error) {
	dateMin, err := time.Parse(dateLayout, r.DateMin)
	if err != nil {
		return SearchParams{}, ErrBadDate
	}
	dateMax, err := time.Parse(dateLayout, r.DateMax)
	if err != nil {
		return SearchParams{}, ErrBadDate
	}
	if dateMax.Before(dateMin) {
		return SearchParams{}, ErrBadDateOrder
	}
	return SearchParams{
		HomeAirports: r.HomeAirports,
		DestAirports: r.DestAirports,
		DestCountry:  r.DestCountry,
		DateMin:      dateMin,
		DateMax:      dateMax,
		DaysMin:      r.DaysMin,
		DaysMax:      r.DaysMax,
		HoursMin:     r.HoursMin,
		PriceMax:     r.PriceMax,
		PriceLowest:  r.PriceLowest,
		Passengers:   r.Passengers,
		Currency:     r.Currency,
	}, nil
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingHomeAirports ValidationError = "at least one home airport is required"
	ErrDestConflict        ValidationError = "dest_airports and dest_country are mutually exclusive"
	ErrMissingDates        ValidationError = "date_min and date_max are required"
	ErrBadDate             ValidationError = "dates must be in YYYY-MM-DD format"
	ErrBadDateOrder        ValidationError = "date_max must not be before date_min"
	ErrBadDuration         ValidationError = "trip duration bounds require 0 <= days_min <= days_max"
	ErrMissingPriceMax     ValidationError = "price_max is required and must be positive"
	ErrBadPriceLowest      ValidationError = "price_lowest must be non-negative and below price_max"
)
