package domain

import (
	"time"

	"github.com/google/uuid"
)

// PropertyLead - входящий запрос по объявлению, ожидающий обработки
type PropertyLead struct {
	ID           uuid.UUID  `json:"id"`
	SocietyID    uuid.UUID  `json:"society_id"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	Email        *string    `json:"email,omitempty"`
	PropertyType string     `json:"property_type"`
	Budget       *float64   `json:"budget,omitempty"`
	Status       string     `json:"status"`
	AssignedTo   *uuid.UUID `json:"assigned_to,omitempty"`
	Notes        string     `json:"notes"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type ServiceBooking struct {
	ID          uuid.UUID `json:"id"`
	SocietyID   uuid.UUID `json:"society_id"`
	UserID      uuid.UUID `json:"user_id"`
	ServiceType string    `json:"service_type"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type RentalAgreement struct {
	ID          uuid.UUID `json:"id"`
	SocietyID   uuid.UUID `json:"society_id"`
	UserID      uuid.UUID `json:"user_id"`
	UnitNumber  string    `json:"unit_number"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	MonthlyRent float64   `json:"monthly_rent"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	LeadStatusOpen      = "OPEN"
	LeadStatusContacted = "CONTACTED"
	LeadStatusClosed    = "CLOSED"
)

const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusPaid      = "PAID"
	BookingStatusCancelled = "CANCELLED"
)

const (
	AgreementStatusDraft      = "DRAFT"
	AgreementStatusActive     = "ACTIVE"
	AgreementStatusExpired    = "EXPIRED"
	AgreementStatusTerminated = "TERMINATED"
)
