package models

// Pagination holds paging metadata returned alongside every list response.
// TotalPages is ceil(Total / Limit).
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// HealthCheckResponse returns the health check response, exciting
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}
