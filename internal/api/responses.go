package api

import "nutribook/internal/validation"

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type ValidationErrorResponse struct {
	Error  string                  `json:"error" example:"invalid fields: date"`
	Fields []validation.FieldError `json:"fields"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
