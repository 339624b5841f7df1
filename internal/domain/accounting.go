package domain

import (
	"time"

	"github.com/google/uuid"
)

type Transaction struct {
	ID            uuid.UUID `json:"id"`
	SocietyID     uuid.UUID `json:"society_id"`
	Type          string    `json:"type"`
	Category      string    `json:"category"`
	Amount        float64   `json:"amount"`
	Description   string    `json:"description"`
	PaymentMethod string    `json:"payment_method"`
	Date          time.Time `json:"date"`
	CreatedBy     uuid.UUID `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type TransactionStats struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	Balance      float64 `json:"balance"`
}

type Vendor struct {
	ID          uuid.UUID `json:"id"`
	SocietyID   uuid.UUID `json:"society_id"`
	Name        string    `json:"name"`
	ServiceType string    `json:"service_type"`
	Phone       string    `json:"phone"`
	Email       *string   `json:"email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type VendorInvoice struct {
	ID            uuid.UUID `json:"id"`
	SocietyID     uuid.UUID `json:"society_id"`
	VendorID      uuid.UUID `json:"vendor_id"`
	InvoiceNumber string    `json:"invoice_number"`
	Amount        float64   `json:"amount"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	DueDate       time.Time `json:"due_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

const (
	InvoiceStatusPending  = "PENDING"
	InvoiceStatusApproved = "APPROVED"
	InvoiceStatusPaid     = "PAID"
	InvoiceStatusRejected = "REJECTED"
)
