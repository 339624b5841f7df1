package domain

import (
	"time"

	"github.com/google/uuid"
)

type Tenant struct {
	ID          uuid.UUID `json:"id"`
	SocietyID   uuid.UUID `json:"society_id"`
	Name        string    `json:"name"`
	UnitNumber  string    `json:"unit_number"`
	Phone       string    `json:"phone"`
	Email       *string   `json:"email,omitempty"`
	MoveInDate  time.Time `json:"move_in_date"`
	MonthlyRent float64   `json:"monthly_rent"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	TenantStatusActive = "active"
	TenantStatusFormer = "former"
)
