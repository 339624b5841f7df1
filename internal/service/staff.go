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

type StaffService interface {
	Create(ctx context.Context, user *domain.User, input StaffInput) (*domain.StaffMember, error)
	Update(ctx context.Context, user *domain.User, id uuid.UUID, input StaffInput) (*domain.StaffMember, error)
	Delete(ctx context.Context, user *domain.User, id uuid.UUID) error
	List(ctx context.Context, societyID uuid.UUID, filter ListFilter) ([]*domain.StaffMember, error)
	Export(ctx context.Context, societyID uuid.UUID, filter ListFilter) (*CSVExport, error)
}

type StaffInput struct {
	Name     string
	Role     string
	Phone    string
	Salary   float64
	Status   string
	JoinedAt time.Time
}

type staffService struct {
	staffRepo repository.StaffRepository
	log       logger.Logger
}

func NewStaffService(staffRepo repository.StaffRepository, log logger.Logger) StaffService {
	return &staffService{staffRepo: staffRepo, log: log}
}

func (in StaffInput) validate() error {
	if in.Name == "" {
		return apperrors.BadRequest("name is required")
	}
	if in.Role == "" {
		return apperrors.BadRequest("role is required")
	}
	if in.Phone == "" {
		return apperrors.BadRequest("phone is required")
	}
	if in.Salary < 0 {
		return apperrors.BadRequest("salary cannot be negative")
	}
	if in.Status != domain.StaffStatusActive && in.Status != domain.StaffStatusInactive {
		return apperrors.BadRequest("status must be active or inactive")
	}
	return nil
}

func (s *staffService) Create(ctx context.Context, user *domain.User, input StaffInput) (*domain.StaffMember, error) {
	if input.Status == "" {
		input.Status = domain.StaffStatusActive
	}
	if input.JoinedAt.IsZero() {
		input.JoinedAt = time.Now()
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	staff := &domain.StaffMember{
		ID:        uuid.New(),
		SocietyID: user.SocietyID,
		Name:      input.Name,
		Role:      input.Role,
		Phone:     input.Phone,
		Salary:    input.Salary,
		Status:    input.Status,
		JoinedAt:  input.JoinedAt,
	}

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}

	return staff, nil
}

func (s *staffService) Update(ctx context.Context, user *domain.User, id uuid.UUID, input StaffInput) (*domain.StaffMember, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if staff.SocietyID != user.SocietyID {
		return nil, apperrors.ErrForbidden
	}

	staff.Name = input.Name
	staff.Role = input.Role
	staff.Phone = input.Phone
	staff.Salary = input.Salary
	staff.Status = input.Status

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, err
	}

	return staff, nil
}

func (s *staffService) Delete(ctx context.Context, user *domain.User, id uuid.UUID) error {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if staff.SocietyID != user.SocietyID {
		return apperrors.ErrForbidden
	}

	return s.staffRepo.Delete(ctx, id)
}

func (s *staffService) List(ctx context.Context, societyID uuid.UUID, filter ListFilter) ([]*domain.StaffMember, error) {
	members, err := s.staffRepo.ListBySociety(ctx, societyID)
	if err != nil {
		return nil, err
	}
	return FilterStaff(members, filter), nil
}

func FilterStaff(members []*domain.StaffMember, filter ListFilter) []*domain.StaffMember {
	result := make([]*domain.StaffMember, 0, len(members))
	for _, m := range members {
		if !matchesQuery(filter.Query, m.Name, m.Role, m.Phone) {
			continue
		}
		if !matchesExact(filter.Type, m.Role) {
			continue
		}
		if !matchesExact(filter.Status, m.Status) {
			continue
		}
		result = append(result, m)
	}
	return result
}

func (s *staffService) Export(ctx context.Context, societyID uuid.UUID, filter ListFilter) (*CSVExport, error) {
	members, err := s.staffRepo.ListBySociety(ctx, societyID)
	if err != nil {
		return nil, err
	}

	filtered := FilterStaff(members, filter)

	header := []string{"Name", "Role", "Phone", "Salary", "Status", "Joined"}
	rows := make([][]string, 0, len(filtered))
	for _, m := range filtered {
		rows = append(rows, []string{
			m.Name,
			m.Role,
			m.Phone,
			strconv.FormatFloat(m.Salary, 'f', 2, 64),
			m.Status,
			m.JoinedAt.Format("2006-01-02"),
		})
	}

	return &CSVExport{
		Filename: exportFilename("staff", time.Now()),
		Content:  buildCSV(header, rows),
	}, nil
}
