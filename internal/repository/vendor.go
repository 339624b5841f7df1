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

type VendorRepository interface {
	Create(ctx context.Context, vendor *domain.Vendor) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vendor, error)
	Update(ctx context.Context, vendor *domain.Vendor) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListBySociety(ctx context.Context, societyID uuid.UUID) ([]*domain.Vendor, error)
	CreateInvoice(ctx context.Context, invoice *domain.VendorInvoice) error
	GetInvoiceByID(ctx context.Context, id uuid.UUID) (*domain.VendorInvoice, error)
	SetInvoiceStatus(ctx context.Context, id uuid.UUID, status string) error
	ListInvoicesBySociety(ctx context.Context, societyID uuid.UUID) ([]*domain.VendorInvoice, error)
}

type vendorRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewVendorRepository(db *pgxpool.Pool, log logger.Logger) VendorRepository {
	return &vendorRepository{db: db, log: log}
}

func (r *vendorRepository) Create(ctx context.Context, vendor *domain.Vendor) error {
	query := `
		INSERT INTO vendors (id, society_id, name, service_type, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		vendor.ID, vendor.SocietyID, vendor.Name, vendor.ServiceType,
		vendor.Phone, vendor.Email, time.Now(),
	).Scan(&vendor.CreatedAt, &vendor.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create vendor", "error", err)
		return err
	}

	return nil
}

func (r *vendorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vendor, error) {
	query := `
		SELECT id, society_id, name, service_type, phone, email, created_at, updated_at
		FROM vendors
		WHERE id = $1
	`

	vendor := &domain.Vendor{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&vendor.ID, &vendor.SocietyID, &vendor.Name, &vendor.ServiceType,
		&vendor.Phone, &vendor.Email, &vendor.CreatedAt, &vendor.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.log.Error("Failed to get vendor", "error", err, "vendor_id", id)
		return nil, err
	}

	return vendor, nil
}

func (r *vendorRepository) Update(ctx context.Context, vendor *domain.Vendor) error {
	query := `
		UPDATE vendors
		SET name = $2, service_type = $3, phone = $4, email = $5, updated_at = $6
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		vendor.ID, vendor.Name, vendor.ServiceType, vendor.Phone, vendor.Email, time.Now(),
	).Scan(&vendor.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		r.log.Error("Failed to update vendor", "error", err, "vendor_id", vendor.ID)
		return err
	}

	return nil
}

func (r *vendorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete vendor", "error", err, "vendor_id", id)
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *vendorRepository) ListBySociety(ctx context.Context, societyID uuid.UUID) ([]*domain.Vendor, error) {
	query := `
		SELECT id, society_id, name, service_type, phone, email, created_at, updated_at
		FROM vendors
		WHERE society_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, societyID)
	if err != nil {
		r.log.Error("Failed to list vendors", "error", err, "society_id", societyID)
		return nil, err
	}
	defer rows.Close()

	var vendors []*domain.Vendor
	for rows.Next() {
		vendor := &domain.Vendor{}
		err := rows.Scan(
			&vendor.ID, &vendor.SocietyID, &vendor.Name, &vendor.ServiceType,
			&vendor.Phone, &vendor.Email, &vendor.CreatedAt, &vendor.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan vendor", "error", err)
			return nil, err
		}
		vendors = append(vendors, vendor)
	}

	return vendors, rows.Err()
}

func (r *vendorRepository) CreateInvoice(ctx context.Context, invoice *domain.VendorInvoice) error {
	query := `
		INSERT INTO vendor_invoices (id, society_id, vendor_id, invoice_number, amount, description, status, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		invoice.ID, invoice.SocietyID, invoice.VendorID, invoice.InvoiceNumber,
		invoice.Amount, invoice.Description, invoice.Status, invoice.DueDate, time.Now(),
	).Scan(&invoice.CreatedAt, &invoice.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create vendor invoice", "error", err)
		return err
	}

	return nil
}

func (r *vendorRepository) GetInvoiceByID(ctx context.Context, id uuid.UUID) (*domain.VendorInvoice, error) {
	query := `
		SELECT id, society_id, vendor_id, invoice_number, amount, description, status, due_date, created_at, updated_at
		FROM vendor_invoices
		WHERE id = $1
	`

	invoice := &domain.VendorInvoice{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&invoice.ID, &invoice.SocietyID, &invoice.VendorID, &invoice.InvoiceNumber,
		&invoice.Amount, &invoice.Description, &invoice.Status, &invoice.DueDate,
		&invoice.CreatedAt, &invoice.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.log.Error("Failed to get vendor invoice", "error", err, "invoice_id", id)
		return nil, err
	}

	return invoice, nil
}

func (r *vendorRepository) SetInvoiceStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE vendor_invoices SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		r.log.Error("Failed to set invoice status", "error", err, "invoice_id", id)
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *vendorRepository) ListInvoicesBySociety(ctx context.Context, societyID uuid.UUID) ([]*domain.VendorInvoice, error) {
	query := `
		SELECT id, society_id, vendor_id, invoice_number, amount, description, status, due_date, created_at, updated_at
		FROM vendor_invoices
		WHERE society_id = $1
		ORDER BY due_date DESC
	`

	rows, err := r.db.Query(ctx, query, societyID)
	if err != nil {
		r.log.Error("Failed to list vendor invoices", "error", err, "society_id", societyID)
		return nil, err
	}
	defer rows.Close()

	var invoices []*domain.VendorInvoice
	for rows.Next() {
		invoice := &domain.VendorInvoice{}
		err := rows.Scan(
			&invoice.ID, &invoice.SocietyID, &invoice.VendorID, &invoice.InvoiceNumber,
			&invoice.Amount, &invoice.Description, &invoice.Status, &invoice.DueDate,
			&invoice.CreatedAt, &invoice.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan vendor invoice", "error", err)
			return nil, err
		}
		invoices = append(invoices, invoice)
	}

	return invoices, rows.Err()
}
