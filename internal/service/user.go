package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"society_hub/internal/domain"
	"society_hub/internal/repository"
	"society_hub/pkg/logger"

	apperrors "society_hub/pkg/errors"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input ProfileInput) (*domain.User, error)
	// ListMembers возвращает жителей общества для выбора собеседников и участников групп
	ListMembers(ctx context.Context, societyID uuid.UUID, filter ListFilter) ([]*domain.User, error)
	SetSuspended(ctx context.Context, admin *domain.User, userID uuid.UUID, suspended bool) error
	GetNotificationSettings(ctx context.Context, userID uuid.UUID) (*domain.NotificationSettings, error)
	UpdateNotificationSettings(ctx context.Context, userID uuid.UUID, settings *domain.NotificationSettings) error
}

type ProfileInput struct {
	DisplayName string
	Phone       *string
	UnitNumber  *string
}

type userService struct {
	userRepo repository.UserRepository
	auditSvc AuditService
	log      logger.Logger
}

func NewUserService(userRepo repository.UserRepository, auditSvc AuditService, log logger.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		auditSvc: auditSvc,
		log:      log,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, input ProfileInput) (*domain.User, error) {
	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		return nil, apperrors.BadRequest("display name is required")
	}
	if len(displayName) > 100 {
		return nil, apperrors.BadRequest("display name is too long (max 100 characters)")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.DisplayName = displayName
	user.Phone = input.Phone
	user.UnitNumber = input.UnitNumber

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *userService) ListMembers(ctx context.Context, societyID uuid.UUID, filter ListFilter) ([]*domain.User, error) {
	users, err := s.userRepo.ListBySociety(ctx, societyID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.User, 0, len(users))
	for _, u := range users {
		unit := ""
		if u.UnitNumber != nil {
			unit = *u.UnitNumber
		}
		if !matchesQuery(filter.Query, u.DisplayName, u.Email, unit) {
			continue
		}
		u.PasswordHash = ""
		result = append(result, u)
	}

	return result, nil
}

func (s *userService) SetSuspended(ctx context.Context, admin *domain.User, userID uuid.UUID, suspended bool) error {
	if admin.Role != domain.RoleAdmin {
		return apperrors.ErrForbidden
	}
	// Админ не может заблокировать сам себя
	if admin.ID == userID {
		return apperrors.ErrBadRequest
	}

	target, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if target.SocietyID != admin.SocietyID {
		return apperrors.ErrForbidden
	}

	if err := s.userRepo.SetSuspended(ctx, userID, suspended); err != nil {
		return err
	}

	eventType := domain.EventTypeUserSuspended
	if !suspended {
		eventType = domain.EventTypeUserUnsuspended
	}
	if err := s.auditSvc.LogEvent(ctx, &admin.ID, domain.ActorRoleAdmin, &admin.SocietyID, eventType,
		map[string]interface{}{"user_id": userID.String()}); err != nil {
		s.log.Warn("Failed to write audit log", "error", err)
	}

	s.log.Info("User suspension changed", "user_id", userID, "suspended", suspended, "admin_id", admin.ID)
	return nil
}

func (s *userService) GetNotificationSettings(ctx context.Context, userID uuid.UUID) (*domain.NotificationSettings, error) {
	settings, err := s.userRepo.GetNotificationSettings(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Значения по умолчанию: всё включено, пока пользователь не менял
			return &domain.NotificationSettings{
				UserID:          userID,
				ChatEnabled:     true,
				BookingsEnabled: true,
				PaymentsEnabled: true,
				EmailEnabled:    true,
			}, nil
		}
		return nil, err
	}

	return settings, nil
}

func (s *userService) UpdateNotificationSettings(ctx context.Context, userID uuid.UUID, settings *domain.NotificationSettings) error {
	settings.UserID = userID
	settings.UpdatedAt = time.Now()
	return s.userRepo.UpsertNotificationSettings(ctx, settings)
}
