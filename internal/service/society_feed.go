package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"society_hub/internal/domain"
	"society_hub/internal/repository"
	"society_hub/pkg/logger"

	apperrors "society_hub/pkg/errors"
)

// SocietyFeedService - общая лента общества: единый поток сообщений,
// доступный всем жителям без отдельного членства
type SocietyFeedService interface {
	PostMessage(ctx context.Context, user *domain.User, content string) (*domain.SocietyMessage, error)
	GetMessages(ctx context.Context, societyID uuid.UUID, limit int) ([]*domain.SocietyMessage, error)
	GetMessagesAfter(ctx context.Context, societyID uuid.UUID, after time.Time, limit int) ([]*domain.SocietyMessage, error)
}

type societyFeedService struct {
	feedRepo  repository.SocietyFeedRepository
	maxMsgLen int
	pageSize  int
	log       logger.Logger
}

func NewSocietyFeedService(feedRepo repository.SocietyFeedRepository, maxMsgLen, pageSize int, log logger.Logger) SocietyFeedService {
	return &societyFeedService{
		feedRepo:  feedRepo,
		maxMsgLen: maxMsgLen,
		pageSize:  pageSize,
		log:       log,
	}
}

func (s *societyFeedService) PostMessage(ctx context.Context, user *domain.User, content string) (*domain.SocietyMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.ErrEmptyMessage
	}
	if s.maxMsgLen > 0 && len(content) > s.maxMsgLen {
		return nil, apperrors.ErrBadRequest
	}

	message := &domain.SocietyMessage{
		ID:         uuid.New().String(),
		SocietyID:  user.SocietyID,
		SenderID:   user.ID,
		SenderName: user.DisplayName,
		Content:    content,
		CreatedAt:  time.Now(),
	}

	if err := s.feedRepo.SaveMessage(ctx, user.SocietyID, message); err != nil {
		return nil, err
	}

	return message, nil
}

func (s *societyFeedService) GetMessages(ctx context.Context, societyID uuid.UUID, limit int) ([]*domain.SocietyMessage, error) {
	if limit <= 0 || limit > s.pageSize {
		limit = s.pageSize
	}
	return s.feedRepo.GetMessages(ctx, societyID, limit)
}

func (s *societyFeedService) GetMessagesAfter(ctx context.Context, societyID uuid.UUID, after time.Time, limit int) ([]*domain.SocietyMessage, error) {
	if limit <= 0 || limit > s.pageSize {
		limit = s.pageSize
	}
	return s.feedRepo.GetMessagesAfter(ctx, societyID, after, limit)
}
