package service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"society_hub/internal/domain"
	"society_hub/internal/repository"
	"society_hub/pkg/logger"

	apperrors "society_hub/pkg/errors"
)

type TransactionService interface {
	Create(ctx context.Context, user *domain.User, input TransactionInput) (*domain.Transaction, error)
	Update(ctx context.Context, user *domain.User, id uuid.UUID, input TransactionInput) (*domain.Transaction, error)
	Delete(ctx context.Context, user *domain.User, id uuid.UUID) error
	// List возвращает отфильтрованный список и сводку по всему обществу
	List(ctx context.Context, societyID uuid.UUID, filter ListFilter) ([]*domain.Transaction, *domain.TransactionStats, error)
	Export(ctx context.Context, societyID uuid.UUID, filter ListFilter) (*CSVExport, error)
}

type TransactionInput struct {
	Type          string
	Category      string
	Amount        float64
	Description   string
	PaymentMethod string
	Date          time.Time
}

type transactionService struct {
	txRepo repository.TransactionRepository
	log    logger.Logger
}

func NewTransactionService(txRepo repository.TransactionRepository, log logger.Logger) TransactionService {
	return &transactionService{txRepo: txRepo, log: log}
}

func (in TransactionInput) validate() error {
	if in.Type != domain.TransactionTypeIncome && in.Type != domain.TransactionTypeExpense {
		return apperrors.BadRequest("type must be income or expense")
	}
	if in.Category == "" {
		return apperrors.BadRequest("category is required")
	}
	if in.Amount <= 0 {
		return apperrors.BadRequest("amount must be positive")
	}
	if in.Date.IsZero() {
		return apperrors.BadRequest("date is required")
	}
	return nil
}

func (s *transactionService) Create(ctx context.Context, user *domain.User, input TransactionInput) (*domain.Transaction, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	t := &domain.Transaction{
		ID:            uuid.New(),
		SocietyID:     user.SocietyID,
		Type:          input.Type,
		Category:      input.Category,
		Amount:        input.Amount,
		Description:   input.Description,
		PaymentMethod: input.PaymentMethod,
		Date:          input.Date,
		CreatedBy:     user.ID,
	}

	if err := s.txRepo.Create(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *transactionService) Update(ctx context.Context, user *domain.User, id uuid.UUID, input TransactionInput) (*domain.Transaction, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	t, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.SocietyID != user.SocietyID {
		return nil, apperrors.ErrForbidden
	}

	t.Type = input.Type
	t.Category = input.Category
	t.Amount = input.Amount
	t.Description = input.Description
	t.PaymentMethod = input.PaymentMethod
	t.Date = input.Date

	if err := s.txRepo.Update(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *transactionService) Delete(ctx context.Context, user *domain.User, id uuid.UUID) error {
	t, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t.SocietyID != user.SocietyID {
		return apperrors.ErrForbidden
	}

	return s.txRepo.Delete(ctx, id)
}

func (s *transactionService) List(ctx context.Context, societyID uuid.UUID, filter ListFilter) ([]*domain.Transaction, *domain.TransactionStats, error) {
	transactions, err := s.txRepo.ListBySociety(ctx, societyID)
	if err != nil {
		return nil, nil, err
	}

	stats, err := s.txRepo.GetStats(ctx, societyID)
	if err != nil {
		return nil, nil, err
	}

	return FilterTransactions(transactions, filter), stats, nil
}

// FilterTransactions - чистая функция фильтрации: текстовый поиск по
// описанию/категории/способу оплаты AND точные фильтры по типу и категории
func FilterTransactions(transactions []*domain.Transaction, filter ListFilter) []*domain.Transaction {
	result := make([]*domain.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if !matchesQuery(filter.Query, t.Description, t.Category, t.PaymentMethod) {
			continue
		}
		if !matchesExact(filter.Type, t.Type) {
			continue
		}
		if !matchesExact(filter.Category, t.Category) {
			continue
		}
		result = append(result, t)
	}
	return result
}

func (s *transactionService) Export(ctx context.Context, societyID uuid.UUID, filter ListFilter) (*CSVExport, error) {
	transactions, err := s.txRepo.ListBySociety(ctx, societyID)
	if err != nil {
		return nil, err
	}

	filtered := FilterTransactions(transactions, filter)

	header := []string{"Date", "Type", "Category", "Amount", "Description", "Payment Method"}
	rows := make([][]string, 0, len(filtered))
	for _, t := range filtered {
		rows = append(rows, []string{
			t.Date.Format("2006-01-02"),
			t.Type,
			t.Category,
			strconv.FormatFloat(t.Amount, 'f', 2, 64),
			t.Description,
			t.PaymentMethod,
		})
	}

	return &CSVExport{
		Filename: exportFilename("transactions", time.Now()),
		Content:  buildCSV(header, rows),
	}, nil
}
