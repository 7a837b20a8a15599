// Package fares defines the read-only fare source contract the trip search
// depends on, plus the Ryanair implementation of it.
package fares

import (
	"context"
	"time"

	"github.com/dharmasatrya/tripfinder/internal/models"
)

// Query constrains a coarse cheapest-fare lookup. DestAirports and
// DestCountry are mutually exclusive; both empty means any destination.
type Query struct {
	HomeAirports []string
	DestAirports []string
	DestCountry  string
	DateMin      time.Time
	DateMax      time.Time
	PriceCeiling float64
}

// DayGrid is one calendar month of per-day fares for a single route, aligned
// by day-of-month index. Inbound is populated only by sources that support
// round-trip grid queries; otherwise it stays empty.
type DayGrid struct {
	Outbound []models.Leg
	Inbound  []models.Leg
}

// Source is the fare-search collaborator. Both operations resolve "no
// results" to empty slices, never to errors; errors signal transport
// failures only.
type Source interface {
	// CheapestFares returns one representative (cheapest) leg per
	// origin/destination pair satisfying the query.
	CheapestFares(ctx context.Context, q Query) ([]models.Leg, error)

	// CheapestPerDay returns the day-indexed fare grid for the month
	// containing the given date.
	CheapestPerDay(ctx context.Context, homeIATA, destIATA string, month time.Time) (DayGrid, error)
}

// Metrics counts upstream requests for one search invocation. It is carried
// through the call chain on the context instead of living in process-wide
// state.
type Metrics struct {
	Requests int
}

func (m *Metrics) IncRequests() {
	if m != nil {
		m.Requests++
	}
}

type metricsKey struct{}

func WithMetrics(ctx context.Context, m *Metrics) context.Context {
	return context.WithValue(ctx, metricsKey{}, m)
}

func MetricsFrom(ctx context.Context) *Metrics {
	m, _ := ctx.Value(metricsKey{}).(*Metrics)
	return m
}
