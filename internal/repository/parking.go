package repository

import (
	"context"
	"errors"
	"time"

	"society_hub/internal/domain"
	"society_hub/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	apperrors "society_hub/pkg/errors"
)

type ParkingRepository interface {
	CreateSlot(ctx context.Context, slot *domain.ParkingSlot) error
	GetSlotByID(ctx context.Context, id uuid.UUID) (*domain.ParkingSlot, error)
	UpdateSlot(ctx context.Context, slot *domain.ParkingSlot) error
	DeleteSlot(ctx context.Context, id uuid.UUID) error
	ListSlotsBySociety(ctx context.Context, societyID uuid.UUID) ([]*domain.ParkingSlot, error)
	CreatePayment(ctx context.Context, payment *domain.ParkingPayment) error
	GetPaymentByID(ctx context.Context, id uuid.UUID) (*domain.ParkingPayment, error)
	SetPaymentStatus(ctx context.Context, id uuid.UUID, status string, paidAt *time.Time) error
	ListPaymentsBySociety(ctx context.Context, societyID uuid.UUID) ([]*domain.ParkingPayment, error)
}

type parkingRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewParkingRepository(db *pgxpool.Pool, log logger.Logger) ParkingRepository {
	return &parkingRepository{db: db, log: log}
}

func (r *parkingRepository) CreateSlot(ctx context.Context, slot *domain.ParkingSlot) error {
	query := `
		INSERT INTO parking_slots (id, society_id, slot_number, slot_type, status, assigned_user_id, assigned_unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		slot.ID, slot.SocietyID, slot.SlotNumber, slot.SlotType, slot.Status,
		slot.AssignedUserID, slot.AssignedUnit, time.Now(),
	).Scan(&slot.CreatedAt, &slot.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create parking slot", "error", err)
		return err
	}

	return nil
}

func (r *parkingRepository) GetSlotByID(ctx context.Context, id uuid.UUID) (*domain.ParkingSlot, error) {
	query := `
		SELECT id, society_id, slot_number, slot_type, status, assigned_user_id, assigned_unit, created_at, updated_at
		FROM parking_slots
		WHERE id = $1
	`

	slot := &domain.ParkingSlot{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&slot.ID, &slot.SocietyID, &slot.SlotNumber, &slot.SlotType, &slot.Status,
		&slot.AssignedUserID, &slot.AssignedUnit, &slot.CreatedAt, &slot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.log.Error("Failed to get parking slot", "error", err, "slot_id", id)
		return nil, err
	}

	return slot, nil
}

func (r *parkingRepository) UpdateSlot(ctx context.Context, slot *domain.ParkingSlot) error {
	query := `
		UPDATE parking_slots
		SET slot_number = $2, slot_type = $3, status = $4, assigned_user_id = $5, assigned_unit = $6, updated_at = $7
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		slot.ID, slot.SlotNumber, slot.SlotType, slot.Status,
		slot.AssignedUserID, slot.AssignedUnit, time.Now(),
	).Scan(&slot.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		r.log.Error("Failed to update parking slot", "error", err, "slot_id", slot.ID)
		return err
	}

	return nil
}

func (r *parkingRepository) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM parking_slots WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete parking slot", "error", err, "slot_id", id)
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *parkingRepository) ListSlotsBySociety(ctx context.Context, societyID uuid.UUID) ([]*domain.ParkingSlot, error) {
	query := `
		SELECT id, society_id, slot_number, slot_type, status, assigned_user_id, assigned_unit, created_at, updated_at
		FROM parking_slots
		WHERE society_id = $1
		ORDER BY slot_number
	`

	rows, err := r.db.Query(ctx, query, societyID)
	if err != nil {
		r.log.Error("Failed to list parking slots", "error", err, "society_id", societyID)
		return nil, err
	}
	defer rows.Close()

	var slots []*domain.ParkingSlot
	for rows.Next() {
		slot := &domain.ParkingSlot{}
		err := rows.Scan(
			&slot.ID, &slot.SocietyID, &slot.SlotNumber, &slot.SlotType, &slot.Status,
			&slot.AssignedUserID, &slot.AssignedUnit, &slot.CreatedAt, &slot.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan parking slot", "error", err)
			return nil, err
		}
		slots = append(slots, slot)
	}

	return slots, rows.Err()
}

func (r *parkingRepository) CreatePayment(ctx context.Context, payment *domain.ParkingPayment) error {
	query := `
		INSERT INTO parking_payments (id, society_id, slot_id, user_id, period, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		payment.ID, payment.SocietyID, payment.SlotID, payment.UserID,
		payment.Period, payment.Amount, payment.Status, time.Now(),
	).Scan(&payment.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create parking payment", "error", err)
		return err
	}

	return nil
}

func (r *parkingRepository) GetPaymentByID(ctx context.Context, id uuid.UUID) (*domain.ParkingPayment, error) {
	query := `
		SELECT id, society_id, slot_id, user_id, period, amount, status, paid_at, created_at
		FROM parking_payments
		WHERE id = $1
	`

	payment := &domain.ParkingPayment{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&payment.ID, &payment.SocietyID, &payment.SlotID, &payment.UserID,
		&payment.Period, &payment.Amount, &payment.Status, &payment.PaidAt, &payment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.log.Error("Failed to get parking payment", "error", err, "payment_id", id)
		return nil, err
	}

	return payment, nil
}

func (r *parkingRepository) SetPaymentStatus(ctx context.Context, id uuid.UUID, status string, paidAt *time.Time) error {
	query := `UPDATE parking_payments SET status = $2, paid_at = $3 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status, paidAt)
	if err != nil {
		r.log.Error("Failed to set parking payment status", "error", err, "payment_id", id)
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *parkingRepository) ListPaymentsBySociety(ctx context.Context, societyID uuid.UUID) ([]*domain.ParkingPayment, error) {
	query := `
		SELECT id, society_id, slot_id, user_id, period, amount, status, paid_at, created_at
		FROM parking_payments
		WHERE society_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, societyID)
	if err != nil {
		r.log.Error("Failed to list parking payments", "error", err, "society_id", societyID)
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.ParkingPayment
	for rows.Next() {
		payment := &domain.ParkingPayment{}
		err := rows.Scan(
			&payment.ID, &payment.SocietyID, &payment.SlotID, &payment.UserID,
			&payment.Period, &payment.Amount, &payment.Status, &payment.PaidAt, &payment.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan parking payment", "error", err)
			return nil, err
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}
