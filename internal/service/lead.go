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

type LeadService interface {
	CreateLead(ctx context.Context, user *domain.User, input LeadInput) (*domain.PropertyLead, error)
	UpdateLead(ctx context.Context, user *domain.User, id uuid.UUID, input LeadInput) (*domain.PropertyLead, error)
	// SetLeadStatus: OPEN -> CONTACTED -> CLOSED, без возврата назад
	SetLeadStatus(ctx context.Context, user *domain.User, id uuid.UUID, status string, assignedTo *uuid.UUID) (*domain.PropertyLead, error)
	ListLeads(ctx context.Context, societyID uuid.UUID, filter ListFilter) ([]*domain.PropertyLead, error)
	ExportLeads(ctx context.Context, societyID uuid.UUID, filter ListFilter) (*CSVExport, error)

	CreateBooking(ctx context.Context, user *domain.User, input BookingInput) (*domain.ServiceBooking, error)
	SetBookingStatus(ctx context.Context, user *domain.User, id uuid.UUID, status string) (*domain.ServiceBooking, error)
	ListBookings(ctx context.Context, societyID uuid.UUID, filter ListFilter) ([]*domain.ServiceBooking, error)

	CreateAgreement(ctx context.Context, user *domain.User, input AgreementInput) (*domain.RentalAgreement, error)
	SetAgreementStatus(ctx context.Context, user *domain.User, id uuid.UUID, status string) (*domain.RentalAgreement, error)
	ListAgreements(ctx context.Context, societyID uuid.UUID, filter ListFilter) ([]*domain.RentalAgreement, error)
}

type LeadInput struct {
	Name         string
	Phone        string
	Email        *string
	PropertyType string
	Budget       *float64
	Notes        string
}

type BookingInput struct {
	ServiceType string
	ScheduledAt time.Time
	Amount      float64
}

type AgreementInput struct {
	UserID      uuid.UUID
	UnitNumber  string
	StartDate   time.Time
	EndDate     time.Time
	MonthlyRent float64
}

type leadService struct {
	leadRepo repository.LeadRepository
	notifSvc NotificationService
	auditSvc AuditService
	log      logger.Logger
}

func NewLeadService(leadRepo repository.LeadRepository, notifSvc NotificationService, auditSvc AuditService, log logger.Logger) LeadService {
	return &leadService{
		leadRepo: leadRepo,
		notifSvc: notifSvc,
		auditSvc: auditSvc,
		log:      log,
	}
}

func (in LeadInput) validate() error {
	if in.Name == "" {
		return apperrors.BadRequest("name is required")
	}
	if in.Phone == "" {
		return apperrors.BadRequest("phone is required")
	}
	if in.PropertyType == "" {
		return apperrors.BadRequest("property type is required")
	}
	return nil
}

func (s *leadService) CreateLead(ctx context.Context, user *domain.User, input LeadInput) (*domain.PropertyLead, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	lead := &domain.PropertyLead{
		ID:           uuid.New(),
		SocietyID:    user.SocietyID,
		Name:         input.Name,
		Phone:        input.Phone,
		Email:        input.Email,
		PropertyType: input.PropertyType,
		Budget:       input.Budget,
		Status:       domain.LeadStatusOpen,
		Notes:        input.Notes,
	}

	if err := s.leadRepo.CreateLead(ctx, lead); err != nil {
		return nil, err
	}

	return lead, nil
}

func (s *leadService) UpdateLead(ctx context.Context, user *domain.User, id uuid.UUID, input LeadInput) (*domain.PropertyLead, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	lead, err := s.leadRepo.GetLeadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead.SocietyID != user.SocietyID {
		return nil, apperrors.ErrForbidden
	}

	lead.Name = input.Name
	lead.Phone = input.Phone
	lead.Email = input.Email
	lead.PropertyType = input.PropertyType
	lead.Budget = input.Budget
	lead.Notes = input.Notes

	if err := s.leadRepo.UpdateLead(ctx, lead); err != nil {
		return nil, err
	}

	return lead, nil
}

func validLeadTransition(from, to string) bool {
	switch from {
	case domain.LeadStatusOpen:
		return to == domain.LeadStatusContacted || to == domain.LeadStatusClosed
	case domain.LeadStatusContacted:
		return to == domain.LeadStatusClosed
	default:
		return false
	}
}

func (s *leadService) SetLeadStatus(ctx context.Context, user *domain.User, id uuid.UUID, status string, assignedTo *uuid.UUID) (*domain.PropertyLead, error) {
	lead, err := s.leadRepo.GetLeadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead.SocietyID != user.SocietyID {
		return nil, apperrors.ErrForbidden
	}

	if !validLeadTransition(lead.Status, status) {
		return nil, apperrors.BadRequest("invalid status transition: " + lead.Status + " -> " + status)
	}

	if err := s.leadRepo.SetLeadStatus(ctx, id, status, assignedTo); err != nil {
		return nil, err
	}
	lead.Status = status
	if assignedTo != nil {
		lead.AssignedTo = assignedTo
	}

	if err := s.auditSvc.LogEvent(ctx, &user.ID, user.Role, &user.SocietyID, domain.EventTypeStatusChanged,
		map[string]interface{}{"entity": "property_lead", "lead_id": id.String(), "status": status}); err != nil {
		s.log.Warn("Failed to write audit log", "error", err)
	}

	return lead, nil
}

func (s *leadService) ListLeads(ctx context.Context, societyID uuid.UUID, filter ListFilter) ([]*domain.PropertyLead, error) {
	leads, err := s.leadRepo.ListLeadsBySociety(ctx, societyID)
	if err != nil {
		return nil, err
	}
	return FilterLeads(leads, filter), nil
}

func FilterLeads(leads []*domain.PropertyLead, filter ListFilter) []*domain.PropertyLead {
	result := make([]*domain.PropertyLead, 0, len(leads))
	for _, lead := range leads {
		email := ""
		if lead.Email != nil {
			email = *lead.Email
		}
		if !matchesQuery(filter.Query, lead.Name, lead.Phone, email, lead.Notes) {
			continue
		}
		if !matchesExact(filter.Type, lead.PropertyType) {
			continue
		}
		if !matchesExact(filter.Status, lead.Status) {
			continue
		}
		result = append(result, lead)
	}
	return result
}

func (s *leadService) ExportLeads(ctx context.Context, societyID uuid.UUID, filter ListFilter) (*CSVExport, error) {
	leads, err := s.leadRepo.ListLeadsBySociety(ctx, societyID)
	if err != nil {
		return nil, err
	}

	filtered := FilterLeads(leads, filter)

	header := []string{"Name", "Phone", "Email", "Property Type", "Budget", "Status", "Notes"}
	rows := make([][]string, 0, len(filtered))
	for _, lead := range filtered {
		email := ""
		if lead.Email != nil {
			email = *lead.Email
		}
		budget := ""
		if lead.Budget != nil {
			budget = strconv.FormatFloat(*lead.Budget, 'f', 2, 64)
		}
		rows = append(rows, []string{lead.Name, lead.Phone, email, lead.PropertyType, budget, lead.Status, lead.Notes})
	}

	return &CSVExport{
		Filename: exportFilename("leads", time.Now()),
		Content:  buildCSV(header, rows),
	}, nil
}

func (s *leadService) CreateBooking(ctx context.Context, user *domain.User, input BookingInput) (*domain.ServiceBooking, error) {
	if input.ServiceType == "" {
		return nil, apperrors.BadRequest("service type is required")
	}
	if input.ScheduledAt.IsZero() {
		return nil, apperrors.BadRequest("scheduled time is required")
	}
	if input.Amount < 0 {
		return nil, apperrors.BadRequest("amount cannot be negative")
	}

	booking := &domain.ServiceBooking{
		ID:          uuid.New(),
		SocietyID:   user.SocietyID,
		UserID:      user.ID,
		ServiceType: input.ServiceType,
		ScheduledAt: input.ScheduledAt,
		Amount:      input.Amount,
		Status:      domain.BookingStatusPending,
	}

	if err := s.leadRepo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

func validBookingTransition(from, to string) bool {
	switch from {
	case domain.BookingStatusPending:
		return to == domain.BookingStatusConfirmed || to == domain.BookingStatusCancelled
	case domain.BookingStatusConfirmed:
		return to == domain.BookingStatusPaid || to == domain.BookingStatusCancelled
	default:
		return false
	}
}

func (s *leadService) SetBookingStatus(ctx context.Context, user *domain.User, id uuid.UUID, status string) (*domain.ServiceBooking, error) {
	booking, err := s.leadRepo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.SocietyID != user.SocietyID {
		return nil, apperrors.ErrForbidden
	}

	if !validBookingTransition(booking.Status, status) {
		return nil, apperrors.BadRequest("invalid status transition: " + booking.Status + " -> " + status)
	}

	if err := s.leadRepo.SetBookingStatus(ctx, id, status); err != nil {
		return nil, err
	}
	booking.Status = status

	if err := s.notifSvc.Notify(ctx, booking.UserID, "Booking "+status,
		"Your "+booking.ServiceType+" booking is now "+status, domain.NotificationKindBooking); err != nil {
		s.log.Warn("Failed to notify booking owner", "error", err)
	}

	return booking, nil
}

func (s *leadService) ListBookings(ctx context.Context, societyID uuid.UUID, filter ListFilter) ([]*domain.ServiceBooking, error) {
	bookings, err := s.leadRepo.ListBookingsBySociety(ctx, societyID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.ServiceBooking, 0, len(bookings))
	for _, b := range bookings {
		if !matchesQuery(filter.Query, b.ServiceType) {
			continue
		}
		if !matchesExact(filter.Type, b.ServiceType) {
			continue
		}
		if !matchesExact(filter.Status, b.Status) {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (s *leadService) CreateAgreement(ctx context.Context, user *domain.User, input AgreementInput) (*domain.RentalAgreement, error) {
	if input.UnitNumber == "" {
		return nil, apperrors.BadRequest("unit number is required")
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return nil, apperrors.BadRequest("start and end dates are required")
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, apperrors.BadRequest("end date must be after start date")
	}
	if input.MonthlyRent <= 0 {
		return nil, apperrors.BadRequest("monthly rent must be positive")
	}

	agreement := &domain.RentalAgreement{
		ID:          uuid.New(),
		SocietyID:   user.SocietyID,
		UserID:      input.UserID,
		UnitNumber:  input.UnitNumber,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		MonthlyRent: input.MonthlyRent,
		Status:      domain.AgreementStatusDraft,
	}

	if err := s.leadRepo.CreateAgreement(ctx, agreement); err != nil {
		return nil, err
	}

	return agreement, nil
}

func validAgreementTransition(from, to string) bool {
	switch from {
	case domain.AgreementStatusDraft:
		return to == domain.AgreementStatusActive || to == domain.AgreementStatusTerminated
	case domain.AgreementStatusActive:
		return to == domain.AgreementStatusExpired || to == domain.AgreementStatusTerminated
	default:
		return false
	}
}

func (s *leadService) SetAgreementStatus(ctx context.Context, user *domain.User, id uuid.UUID, status string) (*domain.RentalAgreement, error) {
	agreement, err := s.leadRepo.GetAgreementByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if agreement.SocietyID != user.SocietyID {
		return nil, apperrors.ErrForbidden
	}

	if !validAgreementTransition(agreement.Status, status) {
		return nil, apperrors.BadRequest("invalid status transition: " + agreement.Status + " -> " + status)
	}

	if err := s.leadRepo.SetAgreementStatus(ctx, id, status); err != nil {
		return nil, err
	}
	agreement.Status = status

	if err := s.auditSvc.LogEvent(ctx, &user.ID, user.Role, &user.SocietyID, domain.EventTypeStatusChanged,
		map[string]interface{}{"entity": "rental_agreement", "agreement_id": id.String(), "status": status}); err != nil {
		s.log.Warn("Failed to write audit log", "error", err)
	}

	return agreement, nil
}

func (s *leadService) ListAgreements(ctx context.Context, societyID uuid.UUID, filter ListFilter) ([]*domain.RentalAgreement, error) {
	agreements, err := s.leadRepo.ListAgreementsBySociety(ctx, societyID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.RentalAgreement, 0, len(agreements))
	for _, a := range agreements {
		if !matchesQuery(filter.Query, a.UnitNumber) {
			continue
		}
		if !matchesExact(filter.Status, a.Status) {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}
