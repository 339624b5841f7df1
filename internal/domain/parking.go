package domain

import (
	"time"

	"github.com/google/uuid"
)

type ParkingSlot struct {
	ID             uuid.UUID  `json:"id"`
	SocietyID      uuid.UUID  `json:"society_id"`
	SlotNumber     string     `json:"slot_number"`
	SlotType       string     `json:"slot_type"`
	Status         string     `json:"status"`
	AssignedUserID *uuid.UUID `json:"assigned_user_id,omitempty"`
	AssignedUnit   *string    `json:"assigned_unit,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type ParkingPayment struct {
	ID        uuid.UUID  `json:"id"`
	SocietyID uuid.UUID  `json:"society_id"`
	SlotID    uuid.UUID  `json:"slot_id"`
	UserID    uuid.UUID  `json:"user_id"`
	Period    string     `json:"period"`
	Amount    float64    `json:"amount"`
	Status    string     `json:"status"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

const (
	SlotTypeCar     = "car"
	SlotTypeBike    = "bike"
	SlotTypeVisitor = "visitor"
)

const (
	SlotStatusAvailable = "available"
	SlotStatusOccupied  = "occupied"
)

const (
	ParkingPaymentPending = "PENDING"
	ParkingPaymentPaid    = "PAID"
)
