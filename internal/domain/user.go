package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `json:"id"`
	SocietyID    uuid.UUID  `json:"society_id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	DisplayName  string     `json:"display_name"`
	Phone        *string    `json:"phone,omitempty"`
	UnitNumber   *string    `json:"unit_number,omitempty"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	IsSuspended  bool       `json:"is_suspended"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type UserSession struct {
	ID               uuid.UUID  `json:"id"`
	UserID           uuid.UUID  `json:"user_id"`
	RefreshTokenHash string     `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
	ExpiresAt        time.Time  `json:"expires_at"`
	RevokedAt        *time.Time `json:"revoked_at,omitempty"`
	RevokedReason    *string    `json:"revoked_reason,omitempty"`
	IPAddress        *string    `json:"ip_address,omitempty"`
	UserAgent        *string    `json:"user_agent,omitempty"`
}

type NotificationSettings struct {
	UserID          uuid.UUID `json:"user_id"`
	ChatEnabled     bool      `json:"chat_enabled"`
	BookingsEnabled bool      `json:"bookings_enabled"`
	PaymentsEnabled bool      `json:"payments_enabled"`
	EmailEnabled    bool      `json:"email_enabled"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

const (
	RoleResident = "resident"
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
)
