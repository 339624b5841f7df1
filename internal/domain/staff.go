package domain

import (
	"time"

	"github.com/google/uuid"
)

type StaffMember struct {
	ID        uuid.UUID `json:"id"`
	SocietyID uuid.UUID `json:"society_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone"`
	Salary    float64   `json:"salary"`
	Status    string    `json:"status"`
	JoinedAt  time.Time `json:"joined_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	StaffStatusActive   = "active"
	StaffStatusInactive = "inactive"
)
