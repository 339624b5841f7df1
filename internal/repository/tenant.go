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

type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	Update(ctx context.Context, tenant *domain.Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListBySociety(ctx context.Context, societyID uuid.UUID) ([]*domain.Tenant, error)
}

type tenantRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewTenantRepository(db *pgxpool.Pool, log logger.Logger) TenantRepository {
	return &tenantRepository{db: db, log: log}
}

func (r *tenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	query := `
		INSERT INTO tenants (id, society_id, name, unit_number, phone, email, move_in_date, monthly_rent, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		tenant.ID, tenant.SocietyID, tenant.Name, tenant.UnitNumber, tenant.Phone,
		tenant.Email, tenant.MoveInDate, tenant.MonthlyRent, tenant.Status, time.Now(),
	).Scan(&tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create tenant", "error", err)
		return err
	}

	return nil
}

func (r *tenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	query := `
		SELECT id, society_id, name, unit_number, phone, email, move_in_date, monthly_rent, status, created_at, updated_at
		FROM tenants
		WHERE id = $1
	`

	tenant := &domain.Tenant{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&tenant.ID, &tenant.SocietyID, &tenant.Name, &tenant.UnitNumber, &tenant.Phone,
		&tenant.Email, &tenant.MoveInDate, &tenant.MonthlyRent, &tenant.Status,
		&tenant.CreatedAt, &tenant.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.log.Error("Failed to get tenant", "error", err, "tenant_id", id)
		return nil, err
	}

	return tenant, nil
}

func (r *tenantRepository) Update(ctx context.Context, tenant *domain.Tenant) error {
	query := `
		UPDATE tenants
		SET name = $2, unit_number = $3, phone = $4, email = $5, move_in_date = $6, monthly_rent = $7, status = $8, updated_at = $9
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		tenant.ID, tenant.Name, tenant.UnitNumber, tenant.Phone, tenant.Email,
		tenant.MoveInDate, tenant.MonthlyRent, tenant.Status, time.Now(),
	).Scan(&tenant.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		r.log.Error("Failed to update tenant", "error", err, "tenant_id", tenant.ID)
		return err
	}

	return nil
}

func (r *tenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete tenant", "error", err, "tenant_id", id)
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *tenantRepository) ListBySociety(ctx context.Context, societyID uuid.UUID) ([]*domain.Tenant, error) {
	query := `
		SELECT id, society_id, name, unit_number, phone, email, move_in_date, monthly_rent, status, created_at, updated_at
		FROM tenants
		WHERE society_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, societyID)
	if err != nil {
		r.log.Error("Failed to list tenants", "error", err, "society_id", societyID)
		return nil, err
	}
	defer rows.Close()

	var tenants []*domain.Tenant
	for rows.Next() {
		tenant := &domain.Tenant{}
		err := rows.Scan(
			&tenant.ID, &tenant.SocietyID, &tenant.Name, &tenant.UnitNumber, &tenant.Phone,
			&tenant.Email, &tenant.MoveInDate, &tenant.MonthlyRent, &tenant.Status,
			&tenant.CreatedAt, &tenant.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan tenant", "error", err)
			return nil, err
		}
		tenants = append(tenants, tenant)
	}

	return tenants, rows.Err()
}
