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

type GroupService interface {
	CreateGroup(ctx context.Context, user *domain.User, name, description string, memberIDs []uuid.UUID) (*domain.Group, error)
	// DeleteGroup разрешено только создателю группы
	DeleteGroup(ctx context.Context, user *domain.User, groupID uuid.UUID) error
	ListGroups(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error)
	GetGroup(ctx context.Context, user *domain.User, groupID uuid.UUID) (*domain.Group, error)
	GetMembers(ctx context.Context, user *domain.User, groupID uuid.UUID) ([]*domain.GroupMember, error)
	SendMessage(ctx context.Context, user *domain.User, groupID uuid.UUID, content string) (*domain.GroupMessage, error)
	GetMessages(ctx context.Context, userID, groupID uuid.UUID, limit int, after time.Time) ([]*domain.GroupMessage, error)
}

type groupService struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
	notifRepo repository.NotificationRepository
	auditSvc  AuditService
	maxMsgLen int
	pageSize  int
	log       logger.Logger
}

func NewGroupService(
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	notifRepo repository.NotificationRepository,
	auditSvc AuditService,
	maxMsgLen, pageSize int,
	log logger.Logger,
) GroupService {
	return &groupService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
		notifRepo: notifRepo,
		auditSvc:  auditSvc,
		maxMsgLen: maxMsgLen,
		pageSize:  pageSize,
		log:       log,
	}
}

func (s *groupService) CreateGroup(ctx context.Context, user *domain.User, name, description string, memberIDs []uuid.UUID) (*domain.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ErrBadRequest
	}
	if len(memberIDs) == 0 {
		return nil, apperrors.ErrBadRequest
	}

	// Создатель всегда участник; дубликаты убираем
	seen := map[uuid.UUID]bool{user.ID: true}
	members := []uuid.UUID{user.ID}
	for _, id := range memberIDs {
		if seen[id] {
			continue
		}
		member, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			return nil, apperrors.ErrNotFound
		}
		if member.SocietyID != user.SocietyID {
			return nil, apperrors.ErrForbidden
		}
		seen[id] = true
		members = append(members, id)
	}

	group := &domain.Group{
		ID:          uuid.New(),
		SocietyID:   user.SocietyID,
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedBy:   user.ID,
		// Счётчик показывает выбранных участников; создатель в него не входит
		MemberCount: len(members) - 1,
	}

	if err := s.groupRepo.Create(ctx, group, members); err != nil {
		return nil, err
	}

	s.log.Info("Group created", "group_id", group.ID, "name", group.Name, "members", group.MemberCount)

	if err := s.auditSvc.LogEvent(ctx, &user.ID, user.Role, &user.SocietyID, domain.EventTypeGroupCreated,
		map[string]interface{}{"group_id": group.ID.String(), "name": group.Name}); err != nil {
		s.log.Warn("Failed to write audit log", "error", err)
	}

	// Уведомляем добавленных участников
	for _, memberID := range members {
		if memberID == user.ID {
			continue
		}
		n := &domain.Notification{
			UserID: memberID,
			Title:  "Added to group",
			Body:   user.DisplayName + " added you to \"" + group.Name + "\"",
			Kind:   domain.NotificationKindChat,
		}
		if err := s.notifRepo.Create(ctx, n); err != nil {
			s.log.Warn("Failed to create notification", "error", err, "user_id", memberID)
		}
	}

	return group, nil
}

func (s *groupService) DeleteGroup(ctx context.Context, user *domain.User, groupID uuid.UUID) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}

	if group.CreatedBy != user.ID {
		return apperrors.ErrNotGroupCreator
	}

	if err := s.groupRepo.Delete(ctx, groupID); err != nil {
		return err
	}

	s.log.Info("Group deleted", "group_id", groupID, "deleted_by", user.ID)

	if err := s.auditSvc.LogEvent(ctx, &user.ID, user.Role, &user.SocietyID, domain.EventTypeGroupDeleted,
		map[string]interface{}{"group_id": groupID.String(), "name": group.Name}); err != nil {
		s.log.Warn("Failed to write audit log", "error", err)
	}

	return nil
}

func (s *groupService) ListGroups(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error) {
	return s.groupRepo.ListForUser(ctx, userID)
}

func (s *groupService) GetGroup(ctx context.Context, user *domain.User, groupID uuid.UUID) (*domain.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	isMember, err := s.groupRepo.IsMember(ctx, groupID, user.ID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.ErrNotGroupMember
	}

	return group, nil
}

func (s *groupService) GetMembers(ctx context.Context, user *domain.User, groupID uuid.UUID) ([]*domain.GroupMember, error) {
	isMember, err := s.groupRepo.IsMember(ctx, groupID, user.ID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.ErrNotGroupMember
	}

	return s.groupRepo.GetMembers(ctx, groupID)
}

func (s *groupService) SendMessage(ctx context.Context, user *domain.User, groupID uuid.UUID, content string) (*domain.GroupMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.ErrEmptyMessage
	}
	if s.maxMsgLen > 0 && len(content) > s.maxMsgLen {
		return nil, apperrors.ErrBadRequest
	}

	isMember, err := s.groupRepo.IsMember(ctx, groupID, user.ID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.ErrNotGroupMember
	}

	message := &domain.GroupMessage{
		GroupID:   groupID,
		SenderID:  user.ID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if err := s.groupRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	return message, nil
}

func (s *groupService) GetMessages(ctx context.Context, userID, groupID uuid.UUID, limit int, after time.Time) ([]*domain.GroupMessage, error) {
	isMember, err := s.groupRepo.IsMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.ErrNotGroupMember
	}

	if limit <= 0 || limit > s.pageSize {
		limit = s.pageSize
	}

	return s.groupRepo.GetMessages(ctx, groupID, limit, after)
}
