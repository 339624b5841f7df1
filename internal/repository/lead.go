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

type LeadRepository interface {
	CreateLead(ctx context.Context, lead *domain.PropertyLead) error
	GetLeadByID(ctx context.Context, id uuid.UUID) (*domain.PropertyLead, error)
	UpdateLead(ctx context.Context, lead *domain.PropertyLead) error
	SetLeadStatus(ctx context.Context, id uuid.UUID, status string, assignedTo *uuid.UUID) error
	ListLeadsBySociety(ctx context.Context, societyID uuid.UUID) ([]*domain.PropertyLead, error)

	CreateBooking(ctx context.Context, booking *domain.ServiceBooking) error
	GetBookingByID(ctx context.Context, id uuid.UUID) (*domain.ServiceBooking, error)
	SetBookingStatus(ctx context.Context, id uuid.UUID, status string) error
	ListBookingsBySociety(ctx context.Context, societyID uuid.UUID) ([]*domain.ServiceBooking, error)

	CreateAgreement(ctx context.Context, agreement *domain.RentalAgreement) error
	GetAgreementByID(ctx context.Context, id uuid.UUID) (*domain.RentalAgreement, error)
	SetAgreementStatus(ctx context.Context, id uuid.UUID, status string) error
	ListAgreementsBySociety(ctx context.Context, societyID uuid.UUID) ([]*domain.RentalAgreement, error)
}

type leadRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewLeadRepository(db *pgxpool.Pool, log logger.Logger) LeadRepository {
	return &leadRepository{db: db, log: log}
}

func (r *leadRepository) CreateLead(ctx context.Context, lead *domain.PropertyLead) error {
	query := `
		INSERT INTO property_leads (id, society_id, name, phone, email, property_type, budget, status, assigned_to, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		lead.ID, lead.SocietyID, lead.Name, lead.Phone, lead.Email, lead.PropertyType,
		lead.Budget, lead.Status, lead.AssignedTo, lead.Notes, time.Now(),
	).Scan(&lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create property lead", "error", err)
		return err
	}

	return nil
}

func (r *leadRepository) GetLeadByID(ctx context.Context, id uuid.UUID) (*domain.PropertyLead, error) {
	query := `
		SELECT id, society_id, name, phone, email, property_type, budget, status, assigned_to, notes, created_at, updated_at
		FROM property_leads
		WHERE id = $1
	`

	lead := &domain.PropertyLead{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&lead.ID, &lead.SocietyID, &lead.Name, &lead.Phone, &lead.Email, &lead.PropertyType,
		&lead.Budget, &lead.Status, &lead.AssignedTo, &lead.Notes, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.log.Error("Failed to get property lead", "error", err, "lead_id", id)
		return nil, err
	}

	return lead, nil
}

func (r *leadRepository) UpdateLead(ctx context.Context, lead *domain.PropertyLead) error {
	query := `
		UPDATE property_leads
		SET name = $2, phone = $3, email = $4, property_type = $5, budget = $6, notes = $7, updated_at = $8
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		lead.ID, lead.Name, lead.Phone, lead.Email, lead.PropertyType, lead.Budget, lead.Notes, time.Now(),
	).Scan(&lead.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		r.log.Error("Failed to update property lead", "error", err, "lead_id", lead.ID)
		return err
	}

	return nil
}

func (r *leadRepository) SetLeadStatus(ctx context.Context, id uuid.UUID, status string, assignedTo *uuid.UUID) error {
	query := `UPDATE property_leads SET status = $2, assigned_to = COALESCE($3, assigned_to), updated_at = $4 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status, assignedTo, time.Now())
	if err != nil {
		r.log.Error("Failed to set lead status", "error", err, "lead_id", id)
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *leadRepository) ListLeadsBySociety(ctx context.Context, societyID uuid.UUID) ([]*domain.PropertyLead, error) {
	query := `
		SELECT id, society_id, name, phone, email, property_type, budget, status, assigned_to, notes, created_at, updated_at
		FROM property_leads
		WHERE society_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, societyID)
	if err != nil {
		r.log.Error("Failed to list property leads", "error", err, "society_id", societyID)
		return nil, err
	}
	defer rows.Close()

	var leads []*domain.PropertyLead
	for rows.Next() {
		lead := &domain.PropertyLead{}
		err := rows.Scan(
			&lead.ID, &lead.SocietyID, &lead.Name, &lead.Phone, &lead.Email, &lead.PropertyType,
			&lead.Budget, &lead.Status, &lead.AssignedTo, &lead.Notes, &lead.CreatedAt, &lead.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan property lead", "error", err)
			return nil, err
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

func (r *leadRepository) CreateBooking(ctx context.Context, booking *domain.ServiceBooking) error {
	query := `
		INSERT INTO service_bookings (id, society_id, user_id, service_type, scheduled_at, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		booking.ID, booking.SocietyID, booking.UserID, booking.ServiceType,
		booking.ScheduledAt, booking.Amount, booking.Status, time.Now(),
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create service booking", "error", err)
		return err
	}

	return nil
}

func (r *leadRepository) GetBookingByID(ctx context.Context, id uuid.UUID) (*domain.ServiceBooking, error) {
	query := `
		SELECT id, society_id, user_id, service_type, scheduled_at, amount, status, created_at, updated_at
		FROM service_bookings
		WHERE id = $1
	`

	booking := &domain.ServiceBooking{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID, &booking.SocietyID, &booking.UserID, &booking.ServiceType,
		&booking.ScheduledAt, &booking.Amount, &booking.Status, &booking.CreatedAt, &booking.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.log.Error("Failed to get service booking", "error", err, "booking_id", id)
		return nil, err
	}

	return booking, nil
}

func (r *leadRepository) SetBookingStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE service_bookings SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		r.log.Error("Failed to set booking status", "error", err, "booking_id", id)
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *leadRepository) ListBookingsBySociety(ctx context.Context, societyID uuid.UUID) ([]*domain.ServiceBooking, error) {
	query := `
		SELECT id, society_id, user_id, service_type, scheduled_at, amount, status, created_at, updated_at
		FROM service_bookings
		WHERE society_id = $1
		ORDER BY scheduled_at DESC
	`

	rows, err := r.db.Query(ctx, query, societyID)
	if err != nil {
		r.log.Error("Failed to list service bookings", "error", err, "society_id", societyID)
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.ServiceBooking
	for rows.Next() {
		booking := &domain.ServiceBooking{}
		err := rows.Scan(
			&booking.ID, &booking.SocietyID, &booking.UserID, &booking.ServiceType,
			&booking.ScheduledAt, &booking.Amount, &booking.Status, &booking.CreatedAt, &booking.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan service booking", "error", err)
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func (r *leadRepository) CreateAgreement(ctx context.Context, agreement *domain.RentalAgreement) error {
	query := `
		INSERT INTO rental_agreements (id, society_id, user_id, unit_number, start_date, end_date, monthly_rent, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		agreement.ID, agreement.SocietyID, agreement.UserID, agreement.UnitNumber,
		agreement.StartDate, agreement.EndDate, agreement.MonthlyRent, agreement.Status, time.Now(),
	).Scan(&agreement.CreatedAt, &agreement.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create rental agreement", "error", err)
		return err
	}

	return nil
}

func (r *leadRepository) GetAgreementByID(ctx context.Context, id uuid.UUID) (*domain.RentalAgreement, error) {
	query := `
		SELECT id, society_id, user_id, unit_number, start_date, end_date, monthly_rent, status, created_at, updated_at
		FROM rental_agreements
		WHERE id = $1
	`

	agreement := &domain.RentalAgreement{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&agreement.ID, &agreement.SocietyID, &agreement.UserID, &agreement.UnitNumber,
		&agreement.StartDate, &agreement.EndDate, &agreement.MonthlyRent, &agreement.Status,
		&agreement.CreatedAt, &agreement.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.log.Error("Failed to get rental agreement", "error", err, "agreement_id", id)
		return nil, err
	}

	return agreement, nil
}

func (r *leadRepository) SetAgreementStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE rental_agreements SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		r.log.Error("Failed to set agreement status", "error", err, "agreement_id", id)
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *leadRepository) ListAgreementsBySociety(ctx context.Context, societyID uuid.UUID) ([]*domain.RentalAgreement, error) {
	query := `
		SELECT id, society_id, user_id, unit_number, start_date, end_date, monthly_rent, status, created_at, updated_at
		FROM rental_agreements
		WHERE society_id = $1
		ORDER BY start_date DESC
	`

	rows, err := r.db.Query(ctx, query, societyID)
	if err != nil {
		r.log.Error("Failed to list rental agreements", "error", err, "society_id", societyID)
		return nil, err
	}
	defer rows.Close()

	var agreements []*domain.RentalAgreement
	for rows.Next() {
		agreement := &domain.RentalAgreement{}
		err := rows.Scan(
			&agreement.ID, &agreement.SocietyID, &agreement.UserID, &agreement.UnitNumber,
			&agreement.StartDate, &agreement.EndDate, &agreement.MonthlyRent, &agreement.Status,
			&agreement.CreatedAt, &agreement.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan rental agreement", "error", err)
			return nil, err
		}
		agreements = append(agreements, agreement)
	}

	return agreements, rows.Err()
}
