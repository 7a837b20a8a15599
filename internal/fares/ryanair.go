package fares

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dharmasatrya/tripfinder/internal/models"
	"github.com/dharmasatrya/tripfinder/internal/ratelimit"
)

const (
	DefaultBaseURL = "https://services-api.ryanair.com/farfnd/v4/"

	EndpointFares = "fares"
	EndpointGrid  = "grid"

	fareTimeLayout = "2006-01-02T15:04:05"
	fareDateLayout = "2006-01-02"
)

// Client talks to the Ryanair fare-finder API. It owns transport concerns
// only: encoding queries, decoding payloads, per-endpoint rate limiting, and
// request counting. Retry and caching live in wrappers around it.
type Client struct {
	baseURL  string
	currency string
	http     *http.Client
	limiter  *ratelimit.EndpointLimiter
}

type ClientOption func(*Client)

func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

func WithLimiter(l *ratelimit.EndpointLimiter) ClientOption {
	return func(c *Client) { c.limiter = l }
}

func NewClient(currency string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		currency: currency,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if !strings.HasSuffix(c.baseURL, "/") {
		c.baseURL += "/"
	}
	return c
}

// WithCurrency returns a copy of the client querying in the given currency.
// The underlying transport, limiter, and base URL are shared.
func (c *Client) WithCurrency(currency string) *Client {
	clone := *c
	clone.currency = currency
	return &clone
}

// Upstream payload shapes. Departure times are local to the airport and
// carry no offset; they are parsed as-is.

type oneWayFaresResponse struct {
	Fares []struct {
		Outbound apiLeg `json:"outbound"`
	} `json:"fares"`
}

type cheapestPerDayResponse struct {
	Outbound *apiGrid `json:"outbound"`
	Inbound  *apiGrid `json:"inbound"`
}

type apiGrid struct {
	Fares []apiLeg `json:"fares"`
}

type apiLeg struct {
	DepartureAirport *apiAirport `json:"departureAirport"`
	ArrivalAirport   *apiAirport `json:"arrivalAirport"`
	DepartureDate    string      `json:"departureDate"`
	ArrivalDate      string      `json:"arrivalDate"`
	Price            *apiPrice   `json:"price"`
	Unavailable      bool        `json:"unavailable"`
}

type apiAirport struct {
	IATACode string `json:"iataCode"`
	City     struct {
		Name string `json:"name"`
	} `json:"city"`
}

type apiPrice struct {
	Value float64 `json:"value"`
}

func (c *Client) CheapestFares(ctx context.Context, q Query) ([]models.Leg, error) {
	params := url.Values{}
	params.Set("currency", c.currency)
	params.Set("outboundDepartureDateFrom", q.DateMin.Format(fareDateLayout))
	params.Set("outboundDepartureDateTo", q.DateMax.Format(fareDateLayout))
	params.Set("priceValueTo", strconv.Itoa(int(q.PriceCeiling)))

	if len(q.HomeAirports) == 1 {
		params.Set("departureAirportIataCode", q.HomeAirports[0])
	} else {
		for _, iata := range q.HomeAirports {
			params.Add("departureAirportIataCodes", iata)
		}
	}
	if q.DestCountry != "" {
		params.Set("arrivalCountryCode", q.DestCountry)
	} else {
		for _, iata := range q.DestAirports {
			params.Add("arrivalAirportIataCodes", iata)
		}
	}

	var resp oneWayFaresResponse
	if err := c.get(ctx, EndpointFares, "oneWayFares", params, &resp); err != nil {
		return nil, err
	}

	legs := make([]models.Leg, 0, len(resp.Fares))
	for _, f := range resp.Fares {
		leg, ok := toLeg(f.Outbound)
		if !ok {
			continue
		}
		legs = append(legs, leg)
	}
	return legs, nil
}

func (c *Client) CheapestPerDay(ctx context.Context, homeIATA, destIATA string, month time.Time) (DayGrid, error) {
	params := url.Values{}
	params.Set("currency", c.currency)
	params.Set("outboundMonthOfDate", month.Format(fareDateLayout))

	path := fmt.Sprintf("oneWayFares/%s/%s/cheapestPerDay", homeIATA, destIATA)

	var resp cheapestPerDayResponse
	if err := c.get(ctx, EndpointGrid, path, params, &resp); err != nil {
		return DayGrid{}, err
	}

	return DayGrid{
		Outbound: gridLegs(resp.Outbound),
		Inbound:  gridLegs(resp.Inbound),
	}, nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, endpoint); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	MetricsFrom(ctx).IncRequests()

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fare source request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fare source returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding fare source response: %w", err)
	}
	return nil
}

func gridLegs(g *apiGrid) []models.Leg {
	if g == nil {
		return nil
	}
	legs := make([]models.Leg, 0, len(g.Fares))
	for _, f := range g.Fares {
		// Grid slots with no offer still occupy their day index, so
		// unparseable entries are kept as unavailable placeholders.
		leg, ok := toLeg(f)
		if !ok {
			leg = models.Leg{Unavailable: true}
		}
		legs = append(legs, leg)
	}
	return legs
}

func toLeg(f apiLeg) (models.Leg, bool) {
	leg := models.Leg{Unavailable: f.Unavailable}

	if f.DepartureDate != "" {
		dep, err := parseFareTime(f.DepartureDate)
		if err != nil {
			return models.Leg{}, false
		}
		leg.DepartureTime = dep
	}
	if f.ArrivalDate != "" {
		arr, err := parseFareTime(f.ArrivalDate)
		if err != nil {
			return models.Leg{}, false
		}
		leg.ArrivalTime = arr
	}
	if f.DepartureDate == "" && !f.Unavailable {
		return models.Leg{}, false
	}

	if f.Price != nil {
		v := f.Price.Value
		leg.Price = &v
	}
	if f.DepartureAirport != nil {
		leg.Departure = models.Airport{
			IATA: f.DepartureAirport.IATACode,
			City: f.DepartureAirport.City.Name,
		}
	}
	if f.ArrivalAirport != nil {
		leg.Arrival = models.Airport{
			IATA: f.ArrivalAirport.IATACode,
			City: f.ArrivalAirport.City.Name,
		}
	}
	return leg, true
}

func parseFareTime(s string) (time.Time, error) {
	if t, err := time.Parse(fareTimeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(fareDateLayout, s)
}
