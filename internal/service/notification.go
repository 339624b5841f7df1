package service

import (
	"context"

	"github.com/google/uuid"

	"society_hub/internal/domain"
	"society_hub/internal/repository"
	"society_hub/pkg/logger"
)

type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, userID uuid.UUID, id int64) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	// Notify учитывает пользовательские настройки по виду уведомления
	Notify(ctx context.Context, userID uuid.UUID, title, body, kind string) error
}

type notificationService struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	pageSize  int
	log       logger.Logger
}

func NewNotificationService(notifRepo repository.NotificationRepository, userRepo repository.UserRepository, pageSize int, log logger.Logger) NotificationService {
	return &notificationService{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		pageSize:  pageSize,
		log:       log,
	}
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Notification, error) {
	if limit <= 0 || limit > s.pageSize {
		limit = s.pageSize
	}
	return s.notifRepo.ListForUser(ctx, userID, limit)
}

func (s *notificationService) MarkRead(ctx context.Context, userID uuid.UUID, id int64) error {
	return s.notifRepo.MarkRead(ctx, userID, id)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllRead(ctx, userID)
}

func (s *notificationService) Notify(ctx context.Context, userID uuid.UUID, title, body, kind string) error {
	settings, err := s.userRepo.GetNotificationSettings(ctx, userID)
	if err == nil && settings != nil && !kindEnabled(settings, kind) {
		return nil
	}

	n := &domain.Notification{
		UserID: userID,
		Title:  title,
		Body:   body,
		Kind:   kind,
	}
	return s.notifRepo.Create(ctx, n)
}

func kindEnabled(settings *domain.NotificationSettings, kind string) bool {
	switch kind {
	case domain.NotificationKindChat:
		return settings.ChatEnabled
	case domain.NotificationKindBooking:
		return settings.BookingsEnabled
	case domain.NotificationKindPayment:
		return settings.PaymentsEnabled
	default:
		return true
	}
}
