package fares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oneWayFaresPayload = `{
  "fares": [
    {
      "outbound": {
        "departureAirport": {"iataCode": "KRK", "city": {"name": "Krakow"}},
        "arrivalAirport": {"iataCode": "FCO", "city": {"name": "Rome"}},
        "departureDate": "2024-06-10T06:25:00",
        "arrivalDate": "2024-06-10T08:20:00",
        "price": {"value": 89.99}
      }
    }
  ]
}`

const cheapestPerDayPayload = `{
  "outbound": {
    "fares": [
      {"day": "2024-06-01", "departureDate": "2024-06-01T06:00:00", "arrivalDate": "2024-06-01T08:00:00", "price": {"value": 45.5}, "unavailable": false},
      {"day": "2024-06-02", "price": null, "unavailable": true}
    ]
  },
  "inbound": {
    "fares": [
      {"day": "2024-06-01", "departureDate": "2024-06-01T18:00:00", "arrivalDate": "2024-06-01T20:00:00", "price": {"value": 30}, "unavailable": false}
    ]
  }
}`

func testServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, NewClient("EUR", WithBaseURL(server.URL+"/"))
}

func TestCheapestFaresDecodesPayload(t *testing.T) {
	var gotQuery url.Values
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oneWayFares", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Write([]byte(oneWayFaresPayload))
	})

	legs, err := client.CheapestFares(context.Background(), Query{
		HomeAirports: []string{"KRK", "KTW"},
		DestCountry:  "IT",
		DateMin:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		DateMax:      time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC),
		PriceCeiling: 280,
	})

	require.NoError(t, err)
	require.Len(t, legs, 1)
	assert.Equal(t, "KRK", legs[0].Departure.IATA)
	assert.Equal(t, "Krakow", legs[0].Departure.City)
	assert.Equal(t, "FCO", legs[0].Arrival.IATA)
	assert.Equal(t, 89.99, legs[0].PriceValue())
	assert.Equal(t, time.Date(2024, 6, 10, 6, 25, 0, 0, time.UTC), legs[0].DepartureTime)

	assert.Equal(t, "EUR", gotQuery.Get("currency"))
	assert.Equal(t, []string{"KRK", "KTW"}, gotQuery["departureAirportIataCodes"])
	assert.Equal(t, "IT", gotQuery.Get("arrivalCountryCode"))
	assert.Equal(t, "2024-06-01", gotQuery.Get("outboundDepartureDateFrom"))
	assert.Equal(t, "2024-06-28", gotQuery.Get("outboundDepartureDateTo"))
	assert.Equal(t, "280", gotQuery.Get("priceValueTo"))
}

func TestCheapestFaresSingleHomeUsesSingularParam(t *testing.T) {
	var gotQuery url.Values
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{}`))
	})

	_, err := client.CheapestFares(context.Background(), Query{
		HomeAirports: []string{"FCO"},
		DestAirports: []string{"KRK", "KTW"},
		DateMin:      time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
		DateMax:      time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		PriceCeiling: 250,
	})

	require.NoError(t, err)
	assert.Equal(t, "FCO", gotQuery.Get("departureAirportIataCode"))
	assert.Empty(t, gotQuery["departureAirportIataCodes"])
	assert.Equal(t, []string{"KRK", "KTW"}, gotQuery["arrivalAirportIataCodes"])
}

func TestCheapestFaresMissingFaresKeyIsEmpty(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": "no results"}`))
	})

	legs, err := client.CheapestFares(context.Background(), Query{
		HomeAirports: []string{"KRK"},
		DateMin:      time.Now(),
		DateMax:      time.Now(),
	})

	require.NoError(t, err)
	assert.Empty(t, legs)
}

func TestCheapestPerDayDecodesGrid(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oneWayFares/KRK/FCO/cheapestPerDay", r.URL.Path)
		assert.Equal(t, "2024-06-01", r.URL.Query().Get("outboundMonthOfDate"))
		w.Write([]byte(cheapestPerDayPayload))
	})

	grid, err := client.CheapestPerDay(context.Background(), "KRK", "FCO",
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, grid.Outbound, 2)
	require.Len(t, grid.Inbound, 1)

	assert.Equal(t, 45.5, grid.Outbound[0].PriceValue())
	assert.False(t, grid.Outbound[0].Unavailable)
	assert.Nil(t, grid.Outbound[1].Price)
	assert.True(t, grid.Outbound[1].Unavailable)
	assert.Equal(t, 30.0, grid.Inbound[0].PriceValue())
}

func TestCheapestPerDayMissingInboundIsEmpty(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"outbound": {"fares": []}}`))
	})

	grid, err := client.CheapestPerDay(context.Background(), "KRK", "FCO",
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Empty(t, grid.Outbound)
	assert.Empty(t, grid.Inbound)
}

func TestRequestCounting(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	metrics := &Metrics{}
	ctx := WithMetrics(context.Background(), metrics)

	q := Query{HomeAirports: []string{"KRK"}, DateMin: time.Now(), DateMax: time.Now()}
	_, err := client.CheapestFares(ctx, q)
	require.NoError(t, err)
	_, err = client.CheapestPerDay(ctx, "KRK", "FCO", time.Now())
	require.NoError(t, err)

	assert.Equal(t, 2, metrics.Requests)

	// No metrics on the context is fine; calls still work.
	_, err = client.CheapestFares(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 2, metrics.Requests)
}

func TestNon200StatusIsAnError(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.CheapestFares(context.Background(), Query{
		HomeAirports: []string{"KRK"},
		DateMin:      time.Now(),
		DateMax:      time.Now(),
	})
	assert.Error(t, err)
}

func TestWithCurrencySharesTransport(t *testing.T) {
	var gotCurrency string
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotCurrency = r.URL.Query().Get("currency")
		w.Write([]byte(`{}`))
	})

	pln := client.WithCurrency("PLN")
	_, err := pln.CheapestFares(context.Background(), Query{
		HomeAirports: []string{"KRK"},
		DateMin:      time.Now(),
		DateMax:      time.Now(),
	})

	require.NoError(t, err)
	assert.Equal(t, "PLN", gotCurrency)
}
