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

type TenantService interface {
	Create(ctx context.Context, user *domain.User, input TenantInput) (*domain.Tenant, error)
	Update(ctx context.Context, user *domain.User, id uuid.UUID, input TenantInput) (*domain.Tenant, error)
	Delete(ctx context.Context, user *domain.User, id uuid.UUID) error
	List(ctx context.Context, societyID uuid.UUID, filter ListFilter) ([]*domain.Tenant, error)
	Export(ctx context.Context, societyID uuid.UUID, filter ListFilter) (*CSVExport, error)
}

type TenantInput struct {
	Name        string
	UnitNumber  string
	Phone       string
	Email       *string
	MoveInDate  time.Time
	MonthlyRent float64
	Status      string
}

type tenantService struct {
	tenantRepo repository.TenantRepository
	auditSvc   AuditService
	log        logger.Logger
}

func NewTenantService(tenantRepo repository.TenantRepository, auditSvc AuditService, log logger.Logger) TenantService {
	return &tenantService{tenantRepo: tenantRepo, auditSvc: auditSvc, log: log}
}

func (in TenantInput) validate() error {
	if in.Name == "" {
		return apperrors.BadRequest("name is required")
	}
	if in.UnitNumber == "" {
		return apperrors.BadRequest("unit number is required")
	}
	if in.Phone == "" {
		return apperrors.BadRequest("phone is required")
	}
	if in.MonthlyRent < 0 {
		return apperrors.BadRequest("monthly rent cannot be negative")
	}
	if in.Status != domain.TenantStatusActive && in.Status != domain.TenantStatusFormer {
		return apperrors.BadRequest("status must be active or former")
	}
	return nil
}

func (s *tenantService) Create(ctx context.Context, user *domain.User, input TenantInput) (*domain.Tenant, error) {
	if input.Status == "" {
		input.Status = domain.TenantStatusActive
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	tenant := &domain.Tenant{
		ID:          uuid.New(),
		SocietyID:   user.SocietyID,
		Name:        input.Name,
		UnitNumber:  input.UnitNumber,
		Phone:       input.Phone,
		Email:       input.Email,
		MoveInDate:  input.MoveInDate,
		MonthlyRent: input.MonthlyRent,
		Status:      input.Status,
	}

	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	return tenant, nil
}

func (s *tenantService) Update(ctx context.Context, user *domain.User, id uuid.UUID, input TenantInput) (*domain.Tenant, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant.SocietyID != user.SocietyID {
		return nil, apperrors.ErrForbidden
	}

	tenant.Name = input.Name
	tenant.UnitNumber = input.UnitNumber
	tenant.Phone = input.Phone
	tenant.Email = input.Email
	tenant.MoveInDate = input.MoveInDate
	tenant.MonthlyRent = input.MonthlyRent
	tenant.Status = input.Status

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}

	return tenant, nil
}

func (s *tenantService) Delete(ctx context.Context, user *domain.User, id uuid.UUID) error {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tenant.SocietyID != user.SocietyID {
		return apperrors.ErrForbidden
	}

	if err := s.tenantRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.auditSvc.LogEvent(ctx, &user.ID, user.Role, &user.SocietyID, domain.EventTypeTenantDeleted,
		map[string]interface{}{"tenant_id": id.String(), "name": tenant.Name}); err != nil {
		s.log.Warn("Failed to write audit log", "error", err)
	}

	return nil
}

func (s *tenantService) List(ctx context.Context, societyID uuid.UUID, filter ListFilter) ([]*domain.Tenant, error) {
	tenants, err := s.tenantRepo.ListBySociety(ctx, societyID)
	if err != nil {
		return nil, err
	}
	return FilterTenants(tenants, filter), nil
}

func FilterTenants(tenants []*domain.Tenant, filter ListFilter) []*domain.Tenant {
	result := make([]*domain.Tenant, 0, len(tenants))
	for _, t := range tenants {
		email := ""
		if t.Email != nil {
			email = *t.Email
		}
		if !matchesQuery(filter.Query, t.Name, t.UnitNumber, t.Phone, email) {
			continue
		}
		if !matchesExact(filter.Status, t.Status) {
			continue
		}
		result = append(result, t)
	}
	return result
}

func (s *tenantService) Export(ctx context.Context, societyID uuid.UUID, filter ListFilter) (*CSVExport, error) {
	tenants, err := s.tenantRepo.ListBySociety(ctx, societyID)
	if err != nil {
		return nil, err
	}

	filtered := FilterTenants(tenants, filter)

	header := []string{"Name", "Unit", "Phone", "Email", "Move In Date", "Monthly Rent", "Status"}
	rows := make([][]string, 0, len(filtered))
	for _, t := range filtered {
		email := ""
		if t.Email != nil {
			email = *t.Email
		}
		rows = append(rows, []string{
			t.Name,
			t.UnitNumber,
			t.Phone,
			email,
			t.MoveInDate.Format("2006-01-02"),
			strconv.FormatFloat(t.MonthlyRent, 'f', 2, 64),
			t.Status,
		})
	}

	return &CSVExport{
		Filename: exportFilename("tenants", time.Now()),
		Content:  buildCSV(header, rows),
	}, nil
}
