package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/tripfinder/internal/fares"
	"github.com/dharmasatrya/tripfinder/internal/models"
	"github.com/dharmasatrya/tripfinder/internal/search"
)

type SearchHandler struct {
	newSource func(currency string) fares.Source
}

// NewSearchHandler takes a factory instead of a source because the fare
// source is currency-scoped and the currency arrives with each request.
func NewSearchHandler(newSource func(currency string) fares.Source) *SearchHandler {
	return &SearchHandler{newSource: newSource}
}

func (h *SearchHandler) Search(c echo.Context) error {
	startTime := time.Now()

	var req models.SearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	params, err := req.Params()
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	metrics := &fares.Metrics{}
	ctx := fares.WithMetrics(c.Request().Context(), metrics)
	searcher := search.NewSearcher(h.newSource(params.Currency))

	var trips []models.Trip
	if req.OneWay {
		trips = searcher.SearchOneWay(ctx, params)
	} else {
		trips = searcher.SearchReturn(ctx, params)
	}

	return c.JSON(http.StatusOK, models.SearchResponse{
		SearchCriteria: req,
		Metadata: models.SearchMetadata{
			SearchID:     uuid.NewString(),
			TotalResults: len(trips),
			APIRequests:  metrics.Requests,
			SearchTimeMs: time.Since(startTime).Milliseconds(),
		},
		Trips: models.Summaries(trips),
	})
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
