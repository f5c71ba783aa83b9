package dto

import "sales-intel-scryper/internal/entity"

// IntelligenceResponse wraps the composed SEC intelligence for one company.
type IntelligenceResponse struct {
	Data *entity.SECData `json:"data"`
}

// NotApplicableResponse is returned when the company is not a regulated filer.
type NotApplicableResponse struct {
	Company string `json:"company"`
	Message string `json:"message"`
}

// ErrorResponse represents a standard error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}
