package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"society_hub/internal/domain"
	"society_hub/pkg/logger"

	apperrors "society_hub/pkg/errors"
)

type mockGroupRepo struct {
	groups   map[uuid.UUID]*domain.Group
	members  map[uuid.UUID]map[uuid.UUID]bool
	messages []*domain.GroupMessage
}

func newMockGroupRepo() *mockGroupRepo {
	return &mockGroupRepo{
		groups:  map[uuid.UUID]*domain.Group{},
		members: map[uuid.UUID]map[uuid.UUID]bool{},
	}
}

func (m *mockGroupRepo) Create(_ context.Context, group *domain.Group, memberIDs []uuid.UUID) error {
	m.groups[group.ID] = group
	m.members[group.ID] = map[uuid.UUID]bool{}
	for _, id := range memberIDs {
		m.members[group.ID][id] = true
	}
	return nil
}

func (m *mockGroupRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Group, error) {
	g, ok := m.groups[id]
	if !ok {
		return nil, apperrors.ErrGroupNotFound
	}
	return g, nil
}

func (m *mockGroupRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]*domain.Group, error) {
	var result []*domain.Group
	for id, g := range m.groups {
		if m.members[id][userID] {
			result = append(result, g)
		}
	}
	return result, nil
}

func (m *mockGroupRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.groups[id]; !ok {
		return apperrors.ErrGroupNotFound
	}
	delete(m.groups, id)
	delete(m.members, id)
	return nil
}

func (m *mockGroupRepo) GetMembers(_ context.Context, groupID uuid.UUID) ([]*domain.GroupMember, error) {
	var result []*domain.GroupMember
	for id := range m.members[groupID] {
		result = append(result, &domain.GroupMember{GroupID: groupID, UserID: id})
	}
	return result, nil
}

func (m *mockGroupRepo) IsMember(_ context.Context, groupID, userID uuid.UUID) (bool, error) {
	return m.members[groupID][userID], nil
}

func (m *mockGroupRepo) CreateMessage(_ context.Context, message *domain.GroupMessage) error {
	message.ID = int64(len(m.messages) + 1)
	m.messages = append(m.messages, message)
	return nil
}

func (m *mockGroupRepo) GetMessages(_ context.Context, groupID uuid.UUID, limit int, after time.Time) ([]*domain.GroupMessage, error) {
	var result []*domain.GroupMessage
	for _, msg := range m.messages {
		if msg.GroupID == groupID && msg.CreatedAt.After(after) {
			result = append(result, msg)
		}
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

type mockNotificationRepo struct {
	created []*domain.Notification
}

func (m *mockNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	n.ID = int64(len(m.created) + 1)
	m.created = append(m.created, n)
	return nil
}

func (m *mockNotificationRepo) ListForUser(_ context.Context, userID uuid.UUID, _ int) ([]*domain.Notification, error) {
	var result []*domain.Notification
	for _, n := range m.created {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, _ uuid.UUID, _ int64) error { return nil }
func (m *mockNotificationRepo) MarkAllRead(_ context.Context, _ uuid.UUID) error       { return nil }

type mockAudit struct {
	events []string
}

func (m *mockAudit) LogEvent(_ context.Context, _ *uuid.UUID, _ string, _ *uuid.UUID, eventType string, _ map[string]interface{}) error {
	m.events = append(m.events, eventType)
	return nil
}

func newGroupService(groupRepo *mockGroupRepo, userRepo *mockUserRepo, notifRepo *mockNotificationRepo, audit *mockAudit) GroupService {
	return NewGroupService(groupRepo, userRepo, notifRepo, audit, 2000, 50, logger.New("error"))
}

func TestCreateGroupValidation(t *testing.T) {
	societyID := uuid.New()
	alice := testUser(societyID)
	bob := testUser(societyID)

	svc := newGroupService(newMockGroupRepo(), newMockUserRepo(alice, bob), &mockNotificationRepo{}, &mockAudit{})

	_, err := svc.CreateGroup(context.Background(), alice, "   ", "", []uuid.UUID{bob.ID})
	require.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.CreateGroup(context.Background(), alice, "Block A", "", nil)
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCreateGroupAddsCreatorAndDeduplicates(t *testing.T) {
	societyID := uuid.New()
	alice := testUser(societyID)
	bob := testUser(societyID)

	groupRepo := newMockGroupRepo()
	notifRepo := &mockNotificationRepo{}
	svc := newGroupService(groupRepo, newMockUserRepo(alice, bob), notifRepo, &mockAudit{})

	// Создатель указан в списке дважды, bob дважды
	group, err := svc.CreateGroup(context.Background(), alice, "Block A", "", []uuid.UUID{bob.ID, bob.ID, alice.ID})
	require.NoError(t, err)

	// В счётчик входят только выбранные участники, без создателя и дубликатов
	require.Equal(t, 1, group.MemberCount)
	require.True(t, groupRepo.members[group.ID][alice.ID])
	require.True(t, groupRepo.members[group.ID][bob.ID])

	// Уведомление только bob, не создателю
	require.Len(t, notifRepo.created, 1)
	require.Equal(t, bob.ID, notifRepo.created[0].UserID)
}

func TestCreateGroupMemberCountMatchesSelection(t *testing.T) {
	societyID := uuid.New()
	alice := testUser(societyID)
	bob := testUser(societyID)
	carol := testUser(societyID)
	dave := testUser(societyID)

	groupRepo := newMockGroupRepo()
	svc := newGroupService(groupRepo, newMockUserRepo(alice, bob, carol, dave), &mockNotificationRepo{}, &mockAudit{})

	group, err := svc.CreateGroup(context.Background(), alice, "Block A Residents", "", []uuid.UUID{bob.ID, carol.ID, dave.ID})
	require.NoError(t, err)

	// Выбраны трое - счётчик показывает 3, хотя создатель тоже состоит в группе
	require.Equal(t, 3, group.MemberCount)
	require.Len(t, groupRepo.members[group.ID], 4)
	require.True(t, groupRepo.members[group.ID][alice.ID])
}

func TestDeleteGroupOnlyCreator(t *testing.T) {
	societyID := uuid.New()
	alice := testUser(societyID)
	bob := testUser(societyID)

	groupRepo := newMockGroupRepo()
	audit := &mockAudit{}
	svc := newGroupService(groupRepo, newMockUserRepo(alice, bob), &mockNotificationRepo{}, audit)

	group, err := svc.CreateGroup(context.Background(), alice, "Block A", "", []uuid.UUID{bob.ID})
	require.NoError(t, err)

	err = svc.DeleteGroup(context.Background(), bob, group.ID)
	require.ErrorIs(t, err, apperrors.ErrNotGroupCreator)
	require.Contains(t, groupRepo.groups, group.ID)

	err = svc.DeleteGroup(context.Background(), alice, group.ID)
	require.NoError(t, err)
	require.NotContains(t, groupRepo.groups, group.ID)
	require.Contains(t, audit.events, domain.EventTypeGroupDeleted)
}

func TestGroupMessagesMembersOnly(t *testing.T) {
	societyID := uuid.New()
	alice := testUser(societyID)
	bob := testUser(societyID)
	eve := testUser(societyID)

	groupRepo := newMockGroupRepo()
	svc := newGroupService(groupRepo, newMockUserRepo(alice, bob, eve), &mockNotificationRepo{}, &mockAudit{})

	group, err := svc.CreateGroup(context.Background(), alice, "Block A", "", []uuid.UUID{bob.ID})
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), eve, group.ID, "hi")
	require.ErrorIs(t, err, apperrors.ErrNotGroupMember)

	_, err = svc.GetMessages(context.Background(), eve.ID, group.ID, 10, time.Time{})
	require.ErrorIs(t, err, apperrors.ErrNotGroupMember)

	msg, err := svc.SendMessage(context.Background(), bob, group.ID, "hi")
	require.NoError(t, err)
	require.Equal(t, "hi", msg.Content)
}
