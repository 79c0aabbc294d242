package models

import (
	"time"

	"github.com/google/uuid"
)

// Location описывает адрес выполнения работ.
type Location struct {
	Address string `db:"location_address" json:"address"`
	City    string `db:"location_city" json:"city"`
	State   string `db:"location_state" json:"state"`
	ZipCode string `db:"location_zip_code" json:"zip_code"`
}

// ServiceRequest описывает заявку заказчика на бытовую услугу.
// ProfessionalID пуст, пока заказчик не направил заявку исполнителю.
type ServiceRequest struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	HomeownerID    uuid.UUID  `db:"homeowner_id" json:"homeowner_id"`
	ProfessionalID *uuid.UUID `db:"professional_id" json:"professional_id,omitempty"`
	Title          string     `db:"title" json:"title"`
	Description    string     `db:"description" json:"description"`
	Category       string     `db:"category" json:"category"`
	Urgency        string     `db:"urgency" json:"urgency"`
	Status         string     `db:"status" json:"status"`
	Location       Location   `json:"location"`
	BudgetMin      *float64   `db:"budget_min" json:"budget_min,omitempty"`
	BudgetMax      *float64   `db:"budget_max" json:"budget_max,omitempty"`
	ScheduledDate  *time.Time `db:"scheduled_date" json:"scheduled_date,omitempty"`
	CompletedDate  *time.Time `db:"completed_date" json:"completed_date,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}
