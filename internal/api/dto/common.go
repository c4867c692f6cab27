package dto

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PaginationInfo describes the window returned by a list endpoint
type PaginationInfo struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// HealthResponse is returned by GET /
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
