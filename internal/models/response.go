package models

type SearchMetadata struct {
	SearchID     string `json:"search_id"`
	TotalResults int    `json:"total_results"`
	APIRequests  int    `json:"api_requests"`
	SearchTimeMs int64  `json:"search_time_ms"`
}

type SearchResponse struct {
	SearchCriteria SearchRequest  `json:"search_criteria"`
	Metadata       SearchMetadata `json:"metadata"`
	Trips          []TripSummary  `json:"trips"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
