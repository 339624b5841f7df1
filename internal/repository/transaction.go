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

type TransactionRepository interface {
	Create(ctx context.Context, t *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	Update(ctx context.Context, t *domain.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListBySociety(ctx context.Context, societyID uuid.UUID) ([]*domain.Transaction, error)
	GetStats(ctx context.Context, societyID uuid.UUID) (*domain.TransactionStats, error)
}

type transactionRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, log logger.Logger) TransactionRepository {
	return &transactionRepository{db: db, log: log}
}

func (r *transactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, society_id, type, category, amount, description, payment_method, date, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		t.ID, t.SocietyID, t.Type, t.Category, t.Amount, t.Description,
		t.PaymentMethod, t.Date, t.CreatedBy, time.Now(),
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create transaction", "error", err)
		return err
	}

	return nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `
		SELECT id, society_id, type, category, amount, description, payment_method, date, created_by, created_at, updated_at
		FROM transactions
		WHERE id = $1
	`

	t := &domain.Transaction{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.SocietyID, &t.Type, &t.Category, &t.Amount, &t.Description,
		&t.PaymentMethod, &t.Date, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.log.Error("Failed to get transaction", "error", err, "transaction_id", id)
		return nil, err
	}

	return t, nil
}

func (r *transactionRepository) Update(ctx context.Context, t *domain.Transaction) error {
	query := `
		UPDATE transactions
		SET type = $2, category = $3, amount = $4, description = $5, payment_method = $6, date = $7, updated_at = $8
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		t.ID, t.Type, t.Category, t.Amount, t.Description, t.PaymentMethod, t.Date, time.Now(),
	).Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		r.log.Error("Failed to update transaction", "error", err, "transaction_id", t.ID)
		return err
	}

	return nil
}

func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete transaction", "error", err, "transaction_id", id)
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *transactionRepository) ListBySociety(ctx context.Context, societyID uuid.UUID) ([]*domain.Transaction, error) {
	query := `
		SELECT id, society_id, type, category, amount, description, payment_method, date, created_by, created_at, updated_at
		FROM transactions
		WHERE society_id = $1
		ORDER BY date DESC, created_at DESC
	`

	rows, err := r.db.Query(ctx, query, societyID)
	if err != nil {
		r.log.Error("Failed to list transactions", "error", err, "society_id", societyID)
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		t := &domain.Transaction{}
		err := rows.Scan(
			&t.ID, &t.SocietyID, &t.Type, &t.Category, &t.Amount, &t.Description,
			&t.PaymentMethod, &t.Date, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan transaction", "error", err)
			return nil, err
		}
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}

func (r *transactionRepository) GetStats(ctx context.Context, societyID uuid.UUID) (*domain.TransactionStats, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)
		FROM transactions
		WHERE society_id = $1
	`

	stats := &domain.TransactionStats{}
	err := r.db.QueryRow(ctx, query, societyID).Scan(&stats.TotalIncome, &stats.TotalExpense)
	if err != nil {
		r.log.Error("Failed to get transaction stats", "error", err, "society_id", societyID)
		return nil, err
	}

	stats.Balance = stats.TotalIncome - stats.TotalExpense
	return stats, nil
}
