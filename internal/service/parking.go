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

type ParkingService interface {
	CreateSlot(ctx context.Context, user *domain.User, input SlotInput) (*domain.ParkingSlot, error)
	DeleteSlot(ctx context.Context, user *domain.User, id uuid.UUID) error
	// AssignSlot переводит слот в occupied и закрепляет за жителем/квартирой
	AssignSlot(ctx context.Context, user *domain.User, slotID uuid.UUID, assigneeID uuid.UUID, unit string) (*domain.ParkingSlot, error)
	UnassignSlot(ctx context.Context, user *domain.User, slotID uuid.UUID) (*domain.ParkingSlot, error)
	ListSlots(ctx context.Context, societyID uuid.UUID, filter ListFilter) ([]*domain.ParkingSlot, error)
	ExportSlots(ctx context.Context, societyID uuid.UUID, filter ListFilter) (*CSVExport, error)

	CreatePayment(ctx context.Context, user *domain.User, input PaymentInput) (*domain.ParkingPayment, error)
	MarkPaymentPaid(ctx context.Context, user *domain.User, id uuid.UUID) error
	ListPayments(ctx context.Context, societyID uuid.UUID, filter ListFilter) ([]*domain.ParkingPayment, error)
}

type SlotInput struct {
	SlotNumber string
	SlotType   string
}

type PaymentInput struct {
	SlotID uuid.UUID
	UserID uuid.UUID
	Period string
	Amount float64
}

type parkingService struct {
	parkingRepo repository.ParkingRepository
	notifSvc    NotificationService
	auditSvc    AuditService
	log         logger.Logger
}

func NewParkingService(parkingRepo repository.ParkingRepository, notifSvc NotificationService, auditSvc AuditService, log logger.Logger) ParkingService {
	return &parkingService{
		parkingRepo: parkingRepo,
		notifSvc:    notifSvc,
		auditSvc:    auditSvc,
		log:         log,
	}
}

func (s *parkingService) CreateSlot(ctx context.Context, user *domain.User, input SlotInput) (*domain.ParkingSlot, error) {
	if input.SlotNumber == "" {
		return nil, apperrors.BadRequest("slot number is required")
	}
	switch input.SlotType {
	case domain.SlotTypeCar, domain.SlotTypeBike, domain.SlotTypeVisitor:
	default:
		return nil, apperrors.BadRequest("slot type must be car, bike or visitor")
	}

	slot := &domain.ParkingSlot{
		ID:         uuid.New(),
		SocietyID:  user.SocietyID,
		SlotNumber: input.SlotNumber,
		SlotType:   input.SlotType,
		Status:     domain.SlotStatusAvailable,
	}

	if err := s.parkingRepo.CreateSlot(ctx, slot); err != nil {
		return nil, err
	}

	return slot, nil
}

func (s *parkingService) DeleteSlot(ctx context.Context, user *domain.User, id uuid.UUID) error {
	slot, err := s.parkingRepo.GetSlotByID(ctx, id)
	if err != nil {
		return err
	}
	if slot.SocietyID != user.SocietyID {
		return apperrors.ErrForbidden
	}
	// Занятый слот сначала освобождают
	if slot.Status == domain.SlotStatusOccupied {
		return apperrors.ErrBadRequest
	}

	return s.parkingRepo.DeleteSlot(ctx, id)
}

func (s *parkingService) AssignSlot(ctx context.Context, user *domain.User, slotID uuid.UUID, assigneeID uuid.UUID, unit string) (*domain.ParkingSlot, error) {
	slot, err := s.parkingRepo.GetSlotByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot.SocietyID != user.SocietyID {
		return nil, apperrors.ErrForbidden
	}
	if slot.Status == domain.SlotStatusOccupied {
		return nil, apperrors.BadRequest("slot is already occupied")
	}

	slot.Status = domain.SlotStatusOccupied
	slot.AssignedUserID = &assigneeID
	if unit != "" {
		slot.AssignedUnit = &unit
	}

	if err := s.parkingRepo.UpdateSlot(ctx, slot); err != nil {
		return nil, err
	}

	if err := s.auditSvc.LogEvent(ctx, &user.ID, user.Role, &user.SocietyID, domain.EventTypeSlotAssigned,
		map[string]interface{}{"slot_id": slotID.String(), "assignee_id": assigneeID.String()}); err != nil {
		s.log.Warn("Failed to write audit log", "error", err)
	}

	if err := s.notifSvc.Notify(ctx, assigneeID, "Parking slot assigned",
		"Slot "+slot.SlotNumber+" has been assigned to you", domain.NotificationKindSystem); err != nil {
		s.log.Warn("Failed to notify assignee", "error", err)
	}

	return slot, nil
}

func (s *parkingService) UnassignSlot(ctx context.Context, user *domain.User, slotID uuid.UUID) (*domain.ParkingSlot, error) {
	slot, err := s.parkingRepo.GetSlotByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot.SocietyID != user.SocietyID {
		return nil, apperrors.ErrForbidden
	}

	slot.Status = domain.SlotStatusAvailable
	slot.AssignedUserID = nil
	slot.AssignedUnit = nil

	if err := s.parkingRepo.UpdateSlot(ctx, slot); err != nil {
		return nil, err
	}

	if err := s.auditSvc.LogEvent(ctx, &user.ID, user.Role, &user.SocietyID, domain.EventTypeSlotUnassigned,
		map[string]interface{}{"slot_id": slotID.String()}); err != nil {
		s.log.Warn("Failed to write audit log", "error", err)
	}

	return slot, nil
}

func (s *parkingService) ListSlots(ctx context.Context, societyID uuid.UUID, filter ListFilter) ([]*domain.ParkingSlot, error) {
	slots, err := s.parkingRepo.ListSlotsBySociety(ctx, societyID)
	if err != nil {
		return nil, err
	}
	return FilterSlots(slots, filter), nil
}

func FilterSlots(slots []*domain.ParkingSlot, filter ListFilter) []*domain.ParkingSlot {
	result := make([]*domain.ParkingSlot, 0, len(slots))
	for _, slot := range slots {
		unit := ""
		if slot.AssignedUnit != nil {
			unit = *slot.AssignedUnit
		}
		if !matchesQuery(filter.Query, slot.SlotNumber, unit) {
			continue
		}
		if !matchesExact(filter.Type, slot.SlotType) {
			continue
		}
		if !matchesExact(filter.Status, slot.Status) {
			continue
		}
		result = append(result, slot)
	}
	return result
}

func (s *parkingService) ExportSlots(ctx context.Context, societyID uuid.UUID, filter ListFilter) (*CSVExport, error) {
	slots, err := s.parkingRepo.ListSlotsBySociety(ctx, societyID)
	if err != nil {
		return nil, err
	}

	filtered := FilterSlots(slots, filter)

	header := []string{"Slot Number", "Type", "Status", "Assigned Unit"}
	rows := make([][]string, 0, len(filtered))
	for _, slot := range filtered {
		unit := ""
		if slot.AssignedUnit != nil {
			unit = *slot.AssignedUnit
		}
		rows = append(rows, []string{slot.SlotNumber, slot.SlotType, slot.Status, unit})
	}

	return &CSVExport{
		Filename: exportFilename("parking_slots", time.Now()),
		Content:  buildCSV(header, rows),
	}, nil
}

func (s *parkingService) CreatePayment(ctx context.Context, user *domain.User, input PaymentInput) (*domain.ParkingPayment, error) {
	if input.Period == "" {
		return nil, apperrors.BadRequest("period is required")
	}
	if input.Amount <= 0 {
		return nil, apperrors.BadRequest("amount must be positive")
	}

	slot, err := s.parkingRepo.GetSlotByID(ctx, input.SlotID)
	if err != nil {
		return nil, err
	}
	if slot.SocietyID != user.SocietyID {
		return nil, apperrors.ErrForbidden
	}

	payment := &domain.ParkingPayment{
		ID:        uuid.New(),
		SocietyID: user.SocietyID,
		SlotID:    input.SlotID,
		UserID:    input.UserID,
		Period:    input.Period,
		Amount:    input.Amount,
		Status:    domain.ParkingPaymentPending,
	}

	if err := s.parkingRepo.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

func (s *parkingService) MarkPaymentPaid(ctx context.Context, user *domain.User, id uuid.UUID) error {
	payment, err := s.parkingRepo.GetPaymentByID(ctx, id)
	if err != nil {
		return err
	}
	if payment.SocietyID != user.SocietyID {
		return apperrors.ErrForbidden
	}
	if payment.Status == domain.ParkingPaymentPaid {
		return nil
	}

	now := time.Now()
	if err := s.parkingRepo.SetPaymentStatus(ctx, id, domain.ParkingPaymentPaid, &now); err != nil {
		return err
	}

	if err := s.notifSvc.Notify(ctx, payment.UserID, "Parking payment received",
		"Payment for period "+payment.Period+" ("+strconv.FormatFloat(payment.Amount, 'f', 2, 64)+") is confirmed",
		domain.NotificationKindPayment); err != nil {
		s.log.Warn("Failed to notify payer", "error", err)
	}

	return nil
}

func (s *parkingService) ListPayments(ctx context.Context, societyID uuid.UUID, filter ListFilter) ([]*domain.ParkingPayment, error) {
	payments, err := s.parkingRepo.ListPaymentsBySociety(ctx, societyID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.ParkingPayment, 0, len(payments))
	for _, p := range payments {
		if !matchesQuery(filter.Query, p.Period) {
			continue
		}
		if !matchesExact(filter.Status, p.Status) {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}
