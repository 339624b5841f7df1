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

type VendorService interface {
	Create(ctx context.Context, user *domain.User, input VendorInput) (*domain.Vendor, error)
	Update(ctx context.Context, user *domain.User, id uuid.UUID, input VendorInput) (*domain.Vendor, error)
	Delete(ctx context.Context, user *domain.User, id uuid.UUID) error
	List(ctx context.Context, societyID uuid.UUID, filter ListFilter) ([]*domain.Vendor, error)
	Export(ctx context.Context, societyID uuid.UUID, filter ListFilter) (*CSVExport, error)

	CreateInvoice(ctx context.Context, user *domain.User, input InvoiceInput) (*domain.VendorInvoice, error)
	// SetInvoiceStatus допускает только переходы PENDING->APPROVED/REJECTED и APPROVED->PAID
	SetInvoiceStatus(ctx context.Context, user *domain.User, id uuid.UUID, status string) (*domain.VendorInvoice, error)
	ListInvoices(ctx context.Context, societyID uuid.UUID, filter ListFilter) ([]*domain.VendorInvoice, error)
}

type VendorInput struct {
	Name        string
	ServiceType string
	Phone       string
	Email       *string
}

type InvoiceInput struct {
	VendorID      uuid.UUID
	InvoiceNumber string
	Amount        float64
	Description   string
	DueDate       time.Time
}

type vendorService struct {
	vendorRepo repository.VendorRepository
	auditSvc   AuditService
	log        logger.Logger
}

func NewVendorService(vendorRepo repository.VendorRepository, auditSvc AuditService, log logger.Logger) VendorService {
	return &vendorService{vendorRepo: vendorRepo, auditSvc: auditSvc, log: log}
}

func (in VendorInput) validate() error {
	if in.Name == "" {
		return apperrors.BadRequest("name is required")
	}
	if in.ServiceType == "" {
		return apperrors.BadRequest("service type is required")
	}
	if in.Phone == "" {
		return apperrors.BadRequest("phone is required")
	}
	return nil
}

func (s *vendorService) Create(ctx context.Context, user *domain.User, input VendorInput) (*domain.Vendor, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	vendor := &domain.Vendor{
		ID:          uuid.New(),
		SocietyID:   user.SocietyID,
		Name:        input.Name,
		ServiceType: input.ServiceType,
		Phone:       input.Phone,
		Email:       input.Email,
	}

	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, err
	}

	return vendor, nil
}

func (s *vendorService) Update(ctx context.Context, user *domain.User, id uuid.UUID, input VendorInput) (*domain.Vendor, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor.SocietyID != user.SocietyID {
		return nil, apperrors.ErrForbidden
	}

	vendor.Name = input.Name
	vendor.ServiceType = input.ServiceType
	vendor.Phone = input.Phone
	vendor.Email = input.Email

	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, err
	}

	return vendor, nil
}

func (s *vendorService) Delete(ctx context.Context, user *domain.User, id uuid.UUID) error {
	vendor, err := s.vendorRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if vendor.SocietyID != user.SocietyID {
		return apperrors.ErrForbidden
	}

	return s.vendorRepo.Delete(ctx, id)
}

func (s *vendorService) List(ctx context.Context, societyID uuid.UUID, filter ListFilter) ([]*domain.Vendor, error) {
	vendors, err := s.vendorRepo.ListBySociety(ctx, societyID)
	if err != nil {
		return nil, err
	}
	return FilterVendors(vendors, filter), nil
}

func FilterVendors(vendors []*domain.Vendor, filter ListFilter) []*domain.Vendor {
	result := make([]*domain.Vendor, 0, len(vendors))
	for _, v := range vendors {
		email := ""
		if v.Email != nil {
			email = *v.Email
		}
		if !matchesQuery(filter.Query, v.Name, v.ServiceType, v.Phone, email) {
			continue
		}
		if !matchesExact(filter.Type, v.ServiceType) {
			continue
		}
		result = append(result, v)
	}
	return result
}

func (s *vendorService) Export(ctx context.Context, societyID uuid.UUID, filter ListFilter) (*CSVExport, error) {
	vendors, err := s.vendorRepo.ListBySociety(ctx, societyID)
	if err != nil {
		return nil, err
	}

	filtered := FilterVendors(vendors, filter)

	header := []string{"Name", "Service Type", "Phone", "Email"}
	rows := make([][]string, 0, len(filtered))
	for _, v := range filtered {
		email := ""
		if v.Email != nil {
			email = *v.Email
		}
		rows = append(rows, []string{v.Name, v.ServiceType, v.Phone, email})
	}

	return &CSVExport{
		Filename: exportFilename("vendors", time.Now()),
		Content:  buildCSV(header, rows),
	}, nil
}

func (s *vendorService) CreateInvoice(ctx context.Context, user *domain.User, input InvoiceInput) (*domain.VendorInvoice, error) {
	if input.InvoiceNumber == "" {
		return nil, apperrors.BadRequest("invoice number is required")
	}
	if input.Amount <= 0 {
		return nil, apperrors.BadRequest("amount must be positive")
	}

	vendor, err := s.vendorRepo.GetByID(ctx, input.VendorID)
	if err != nil {
		return nil, err
	}
	if vendor.SocietyID != user.SocietyID {
		return nil, apperrors.ErrForbidden
	}

	invoice := &domain.VendorInvoice{
		ID:            uuid.New(),
		SocietyID:     user.SocietyID,
		VendorID:      input.VendorID,
		InvoiceNumber: input.InvoiceNumber,
		Amount:        input.Amount,
		Description:   input.Description,
		Status:        domain.InvoiceStatusPending,
		DueDate:       input.DueDate,
	}

	if err := s.vendorRepo.CreateInvoice(ctx, invoice); err != nil {
		return nil, err
	}

	return invoice, nil
}

func validInvoiceTransition(from, to string) bool {
	switch from {
	case domain.InvoiceStatusPending:
		return to == domain.InvoiceStatusApproved || to == domain.InvoiceStatusRejected
	case domain.InvoiceStatusApproved:
		return to == domain.InvoiceStatusPaid
	default:
		return false
	}
}

func (s *vendorService) SetInvoiceStatus(ctx context.Context, user *domain.User, id uuid.UUID, status string) (*domain.VendorInvoice, error) {
	invoice, err := s.vendorRepo.GetInvoiceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.SocietyID != user.SocietyID {
		return nil, apperrors.ErrForbidden
	}

	if !validInvoiceTransition(invoice.Status, status) {
		return nil, apperrors.BadRequest("invalid status transition: " + invoice.Status + " -> " + status)
	}

	if err := s.vendorRepo.SetInvoiceStatus(ctx, id, status); err != nil {
		return nil, err
	}
	invoice.Status = status

	if err := s.auditSvc.LogEvent(ctx, &user.ID, user.Role, &user.SocietyID, domain.EventTypeInvoiceStatusSet,
		map[string]interface{}{"invoice_id": id.String(), "status": status}); err != nil {
		s.log.Warn("Failed to write audit log", "error", err)
	}

	return invoice, nil
}

func (s *vendorService) ListInvoices(ctx context.Context, societyID uuid.UUID, filter ListFilter) ([]*domain.VendorInvoice, error) {
	invoices, err := s.vendorRepo.ListInvoicesBySociety(ctx, societyID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.VendorInvoice, 0, len(invoices))
	for _, inv := range invoices {
		if !matchesQuery(filter.Query, inv.InvoiceNumber, inv.Description, strconv.FormatFloat(inv.Amount, 'f', 2, 64)) {
			continue
		}
		if !matchesExact(filter.Status, inv.Status) {
			continue
		}
		result = append(result, inv)
	}
	return result, nil
}
