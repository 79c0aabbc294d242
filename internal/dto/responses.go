package dto

import (
	"github.com/ignatzorin/homeservice-backend/internal/models"
)

// ErrorResponse represents a standardized error payload
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a standardized success payload
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PaginatedProfessionalsResponse represents a page of the professional directory
type PaginatedProfessionalsResponse struct {
	Professionals []models.PublicUser `json:"professionals"`
	Total         int                 `json:"total"`
	Limit         int                 `json:"limit"`
	Offset        int                 `json:"offset"`
}
