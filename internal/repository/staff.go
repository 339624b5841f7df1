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

type StaffRepository interface {
	Create(ctx context.Context, staff *domain.StaffMember) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StaffMember, error)
	Update(ctx context.Context, staff *domain.StaffMember) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListBySociety(ctx context.Context, societyID uuid.UUID) ([]*domain.StaffMember, error)
}

type staffRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewStaffRepository(db *pgxpool.Pool, log logger.Logger) StaffRepository {
	return &staffRepository{db: db, log: log}
}

func (r *staffRepository) Create(ctx context.Context, staff *domain.StaffMember) error {
	query := `
		INSERT INTO staff_members (id, society_id, name, role, phone, salary, status, joined_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		staff.ID, staff.SocietyID, staff.Name, staff.Role, staff.Phone,
		staff.Salary, staff.Status, staff.JoinedAt, time.Now(),
	).Scan(&staff.CreatedAt, &staff.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create staff member", "error", err)
		return err
	}

	return nil
}

func (r *staffRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.StaffMember, error) {
	query := `
		SELECT id, society_id, name, role, phone, salary, status, joined_at, created_at, updated_at
		FROM staff_members
		WHERE id = $1
	`

	staff := &domain.StaffMember{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&staff.ID, &staff.SocietyID, &staff.Name, &staff.Role, &staff.Phone,
		&staff.Salary, &staff.Status, &staff.JoinedAt, &staff.CreatedAt, &staff.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.log.Error("Failed to get staff member", "error", err, "staff_id", id)
		return nil, err
	}

	return staff, nil
}

func (r *staffRepository) Update(ctx context.Context, staff *domain.StaffMember) error {
	query := `
		UPDATE staff_members
		SET name = $2, role = $3, phone = $4, salary = $5, status = $6, updated_at = $7
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		staff.ID, staff.Name, staff.Role, staff.Phone, staff.Salary, staff.Status, time.Now(),
	).Scan(&staff.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		r.log.Error("Failed to update staff member", "error", err, "staff_id", staff.ID)
		return err
	}

	return nil
}

func (r *staffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM staff_members WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete staff member", "error", err, "staff_id", id)
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *staffRepository) ListBySociety(ctx context.Context, societyID uuid.UUID) ([]*domain.StaffMember, error) {
	query := `
		SELECT id, society_id, name, role, phone, salary, status, joined_at, created_at, updated_at
		FROM staff_members
		WHERE society_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, societyID)
	if err != nil {
		r.log.Error("Failed to list staff members", "error", err, "society_id", societyID)
		return nil, err
	}
	defer rows.Close()

	var members []*domain.StaffMember
	for rows.Next() {
		staff := &domain.StaffMember{}
		err := rows.Scan(
			&staff.ID, &staff.SocietyID, &staff.Name, &staff.Role, &staff.Phone,
			&staff.Salary, &staff.Status, &staff.JoinedAt, &staff.CreatedAt, &staff.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan staff member", "error", err)
			return nil, err
		}
		members = append(members, staff)
	}

	return members, rows.Err()
}
