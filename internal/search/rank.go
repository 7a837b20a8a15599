package search

import (
	"sort"

	"github.com/dharmasatrya/tripfinder/internal/models"
)

// SortByTotalPrice orders trips cheapest first. The sort is stable so ties
// keep their discovery order; there is no secondary key and no dedup.
func SortByTotalPrice(trips []models.Trip) {
	sort.SliceStable(trips, func(i, j int) bool {
		return trips[i].TotalPrice < trips[j].TotalPrice
	})
}
