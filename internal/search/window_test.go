package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/tripfinder/internal/models"
)

func TestReturnWindowDerivation(t *testing.T) {
	outbound := models.Leg{
		ArrivalTime: at(2024, 6, 10, 18, 0),
		Price:       price(120),
	}
	params := models.SearchParams{
		DateMax:  date(2024, 6, 30),
		DaysMin:  3,
		DaysMax:  5,
		PriceMax: 400,
	}

	w, ok := returnWindow(outbound, params)
	require.True(t, ok)
	assert.Equal(t, at(2024, 6, 13, 0, 0), w.DateMin)
	assert.Equal(t, at(2024, 6, 15, 23, 59), w.DateMax)
	assert.Equal(t, 280.0, w.PriceCeiling)
}

func TestReturnWindowClippedByOverallDateMax(t *testing.T) {
	outbound := models.Leg{
		ArrivalTime: at(2024, 6, 28, 18, 0),
		Price:       price(100),
	}
	params := models.SearchParams{
		DateMax:  date(2024, 6, 30),
		DaysMin:  1,
		DaysMax:  7,
		PriceMax: 400,
	}

	w, ok := returnWindow(outbound, params)
	require.True(t, ok)
	assert.Equal(t, at(2024, 6, 30, 23, 59), w.DateMax)
}

func TestReturnWindowHoursMinWhenDaysMinZero(t *testing.T) {
	outbound := models.Leg{
		ArrivalTime: at(2024, 6, 10, 18, 0),
		Price:       price(100),
	}
	params := models.SearchParams{
		DateMax:  date(2024, 6, 30),
		DaysMin:  0,
		DaysMax:  2,
		HoursMin: 6,
		PriceMax: 400,
	}

	w, ok := returnWindow(outbound, params)
	require.True(t, ok)
	assert.Equal(t, at(2024, 6, 11, 0, 0), w.DateMin)
}

func TestReturnWindowMalformedYieldsNotOK(t *testing.T) {
	// Arrival so late that daysMin pushes the window past the overall end.
	outbound := models.Leg{
		ArrivalTime: at(2024, 6, 29, 23, 0),
		Price:       price(100),
	}
	params := models.SearchParams{
		DateMax:  date(2024, 6, 30),
		DaysMin:  3,
		DaysMax:  5,
		PriceMax: 400,
	}

	_, ok := returnWindow(outbound, params)
	assert.False(t, ok)
}

func TestWindowContains(t *testing.T) {
	w := Window{
		DateMin:      date(2024, 6, 1),
		DateMax:      date(2024, 6, 30),
		PriceCeiling: 100,
	}

	cases := []struct {
		name string
		leg  models.Leg
		want bool
	}{
		{"in window", gridLeg(at(2024, 6, 15, 12, 0), at(2024, 6, 15, 14, 0), price(99)), true},
		{"no price", gridLeg(at(2024, 6, 15, 12, 0), at(2024, 6, 15, 14, 0), nil), false},
		{"over ceiling", gridLeg(at(2024, 6, 15, 12, 0), at(2024, 6, 15, 14, 0), price(101)), false},
		{"before window", gridLeg(at(2024, 5, 31, 12, 0), at(2024, 5, 31, 14, 0), price(50)), false},
		// The date-only upper bound admits any departure on the last day.
		{"last day evening", gridLeg(at(2024, 6, 30, 22, 30), at(2024, 6, 30, 23, 30), price(50)), true},
		{"after window", gridLeg(at(2024, 7, 1, 0, 30), at(2024, 7, 1, 2, 0), price(50)), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, w.Contains(tc.leg))
		})
	}
}

func TestWindowContainsAtBounds(t *testing.T) {
	w := Window{
		DateMin:      date(2024, 6, 1),
		DateMax:      date(2024, 6, 30),
		PriceCeiling: 100,
	}

	assert.True(t, w.Contains(gridLeg(date(2024, 6, 1), at(2024, 6, 1, 2, 0), price(100))))
	assert.True(t, w.Contains(gridLeg(at(2024, 6, 30, 23, 59), time.Time{}, price(100))))
}
