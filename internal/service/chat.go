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

// ChatService - личные переписки (1:1)
type ChatService interface {
	// StartConversation идемпотентна: повторный вызов для той же пары
	// возвращает тот же разговор
	StartConversation(ctx context.Context, user *domain.User, peerID uuid.UUID) (*domain.Conversation, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]*domain.Conversation, error)
	SendMessage(ctx context.Context, user *domain.User, conversationID uuid.UUID, content string) (*domain.Message, error)
	GetMessages(ctx context.Context, userID, conversationID uuid.UUID, limit int, after time.Time) ([]*domain.Message, error)
}

type chatService struct {
	convRepo   repository.ConversationRepository
	userRepo   repository.UserRepository
	maxMsgLen  int
	pageSize   int
	log        logger.Logger
}

func NewChatService(convRepo repository.ConversationRepository, userRepo repository.UserRepository, maxMsgLen, pageSize int, log logger.Logger) ChatService {
	return &chatService{
		convRepo:  convRepo,
		userRepo:  userRepo,
		maxMsgLen: maxMsgLen,
		pageSize:  pageSize,
		log:       log,
	}
}

func (s *chatService) StartConversation(ctx context.Context, user *domain.User, peerID uuid.UUID) (*domain.Conversation, error) {
	if peerID == user.ID {
		return nil, apperrors.ErrBadRequest
	}

	peer, err := s.userRepo.GetByID(ctx, peerID)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	if peer.SocietyID != user.SocietyID {
		return nil, apperrors.ErrForbidden
	}

	return s.convRepo.GetOrCreate(ctx, user.SocietyID, user.ID, peerID)
}

func (s *chatService) ListConversations(ctx context.Context, userID uuid.UUID) ([]*domain.Conversation, error) {
	return s.convRepo.ListForUser(ctx, userID)
}

func (s *chatService) SendMessage(ctx context.Context, user *domain.User, conversationID uuid.UUID, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.ErrEmptyMessage
	}
	if s.maxMsgLen > 0 && len(content) > s.maxMsgLen {
		return nil, apperrors.ErrBadRequest
	}

	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv.UserA != user.ID && conv.UserB != user.ID {
		return nil, apperrors.ErrForbidden
	}

	message := &domain.Message{
		ConversationID: conversationID,
		SenderID:       user.ID,
		Content:        content,
		CreatedAt:      time.Now(),
	}

	if err := s.convRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	return message, nil
}

func (s *chatService) GetMessages(ctx context.Context, userID, conversationID uuid.UUID, limit int, after time.Time) ([]*domain.Message, error) {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv.UserA != userID && conv.UserB != userID {
		return nil, apperrors.ErrForbidden
	}

	if limit <= 0 || limit > s.pageSize {
		limit = s.pageSize
	}

	return s.convRepo.GetMessages(ctx, conversationID, limit, after)
}
