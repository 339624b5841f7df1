package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Kind      string    `json:"kind"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	NotificationKindChat    = "chat"
	NotificationKindBooking = "booking"
	NotificationKindPayment = "payment"
	NotificationKindSystem  = "system"
)
