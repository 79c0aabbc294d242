package dto

// LocationRequest represents the work site address of a service request
type LocationRequest struct {
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	ZipCode string `json:"zip_code" binding:"required"`
}

// CreateServiceRequest represents the request to create a service request
type CreateServiceRequest struct {
	Title         string          `json:"title" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	Category      string          `json:"category" binding:"required"`
	Urgency       string          `json:"urgency"`
	Location      LocationRequest `json:"location" binding:"required"`
	BudgetMin     *float64        `json:"budget_min"`
	BudgetMax     *float64        `json:"budget_max"`
	ScheduledDate *string         `json:"scheduled_date"`
}

// SendToProfessionalRequest represents the request to route a service request
type SendToProfessionalRequest struct {
	ProfessionalID string `json:"professional_id" binding:"required"`
}

// UpdateRequestStatusRequest represents the request to move a service request
// to a new status
type UpdateRequestStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateProfileRequest represents the request to update the current user profile
type UpdateProfileRequest struct {
	DisplayName string   `json:"display_name"`
	Phone       *string  `json:"phone"`
	Skills      []string `json:"skills"`
}
