package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"society_hub/internal/domain"
	"society_hub/pkg/logger"

	apperrors "society_hub/pkg/errors"
)

type mockTransactionRepo struct {
	transactions map[uuid.UUID]*domain.Transaction
}

func newMockTransactionRepo(transactions ...*domain.Transaction) *mockTransactionRepo {
	m := &mockTransactionRepo{transactions: map[uuid.UUID]*domain.Transaction{}}
	for _, t := range transactions {
		m.transactions[t.ID] = t
	}
	return m
}

func (m *mockTransactionRepo) Create(_ context.Context, t *domain.Transaction) error {
	m.transactions[t.ID] = t
	return nil
}

func (m *mockTransactionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Transaction, error) {
	t, ok := m.transactions[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return t, nil
}

func (m *mockTransactionRepo) Update(_ context.Context, t *domain.Transaction) error {
	m.transactions[t.ID] = t
	return nil
}

func (m *mockTransactionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.transactions, id)
	return nil
}

func (m *mockTransactionRepo) ListBySociety(_ context.Context, societyID uuid.UUID) ([]*domain.Transaction, error) {
	var result []*domain.Transaction
	for _, t := range m.transactions {
		if t.SocietyID == societyID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *mockTransactionRepo) GetStats(_ context.Context, _ uuid.UUID) (*domain.TransactionStats, error) {
	return &domain.TransactionStats{}, nil
}

func validTransactionInput() TransactionInput {
	return TransactionInput{
		Type:          domain.TransactionTypeExpense,
		Category:      "Maintenance",
		Amount:        1500,
		PaymentMethod: "UPI",
		Date:          time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	}
}

func TestTransactionCrossSocietyForbidden(t *testing.T) {
	user := testUser(uuid.New())
	foreign := &domain.Transaction{
		ID:        uuid.New(),
		SocietyID: uuid.New(),
		Type:      domain.TransactionTypeExpense,
		Category:  "Maintenance",
		Amount:    500,
	}

	repo := newMockTransactionRepo(foreign)
	svc := NewTransactionService(repo, logger.New("error"))

	err := svc.Delete(context.Background(), user, foreign.ID)
	require.ErrorIs(t, err, apperrors.ErrForbidden)
	require.Equal(t, http.StatusForbidden, apperrors.HTTPStatusFromError(err))
	require.Contains(t, repo.transactions, foreign.ID)

	_, err = svc.Update(context.Background(), user, foreign.ID, validTransactionInput())
	require.ErrorIs(t, err, apperrors.ErrForbidden)
	require.Equal(t, http.StatusForbidden, apperrors.HTTPStatusFromError(err))
}

func TestTransactionInputValidation(t *testing.T) {
	user := testUser(uuid.New())
	svc := NewTransactionService(newMockTransactionRepo(), logger.New("error"))

	cases := []struct {
		name   string
		mutate func(*TransactionInput)
	}{
		{"bad type", func(in *TransactionInput) { in.Type = "transfer" }},
		{"empty category", func(in *TransactionInput) { in.Category = "" }},
		{"zero amount", func(in *TransactionInput) { in.Amount = 0 }},
		{"zero date", func(in *TransactionInput) { in.Date = time.Time{} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validTransactionInput()
			tc.mutate(&input)

			_, err := svc.Create(context.Background(), user, input)
			require.Error(t, err)
			// Ошибки валидации отображаются в 400, а не в 500
			require.Equal(t, http.StatusBadRequest, apperrors.HTTPStatusFromError(err))
		})
	}
}
