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

type mockUserRepo struct {
	users     map[uuid.UUID]*domain.User
	byEmail   map[string]*domain.User
	settings  map[uuid.UUID]*domain.NotificationSettings
	suspended map[uuid.UUID]bool
}

func newMockUserRepo(users ...*domain.User) *mockUserRepo {
	m := &mockUserRepo{
		users:     map[uuid.UUID]*domain.User{},
		byEmail:   map[string]*domain.User{},
		settings:  map[uuid.UUID]*domain.NotificationSettings{},
		suspended: map[uuid.UUID]bool{},
	}
	for _, u := range users {
		m.users[u.ID] = u
		m.byEmail[u.Email] = u
	}
	return m
}

func (m *mockUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, ok := m.byEmail[user.Email]; ok {
		return apperrors.ErrUserAlreadyExists
	}
	m.users[user.ID] = user
	m.byEmail[user.Email] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *domain.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) SetSuspended(_ context.Context, id uuid.UUID, suspended bool) error {
	u, ok := m.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.IsSuspended = suspended
	m.suspended[id] = suspended
	return nil
}

func (m *mockUserRepo) ListBySociety(_ context.Context, societyID uuid.UUID) ([]*domain.User, error) {
	var result []*domain.User
	for _, u := range m.users {
		if u.SocietyID == societyID {
			result = append(result, u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) CreateSession(_ context.Context, _ *domain.UserSession) error { return nil }
func (m *mockUserRepo) GetSessionByTokenHash(_ context.Context, _ string) (*domain.UserSession, error) {
	return nil, apperrors.ErrNotFound
}
func (m *mockUserRepo) RevokeSession(_ context.Context, _ uuid.UUID, _ string) error { return nil }

func (m *mockUserRepo) GetNotificationSettings(_ context.Context, userID uuid.UUID) (*domain.NotificationSettings, error) {
	s, ok := m.settings[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return s, nil
}

func (m *mockUserRepo) UpsertNotificationSettings(_ context.Context, settings *domain.NotificationSettings) error {
	m.settings[settings.UserID] = settings
	return nil
}

type mockConversationRepo struct {
	conversations map[uuid.UUID]*domain.Conversation
	messages      []*domain.Message
	getOrCreate   int
}

func newMockConversationRepo() *mockConversationRepo {
	return &mockConversationRepo{conversations: map[uuid.UUID]*domain.Conversation{}}
}

func (m *mockConversationRepo) GetOrCreate(_ context.Context, societyID uuid.UUID, userA, userB uuid.UUID) (*domain.Conversation, error) {
	m.getOrCreate++
	a, b := domain.OrderPair(userA, userB)
	for _, c := range m.conversations {
		if c.UserA == a && c.UserB == b {
			return c, nil
		}
	}
	conv := &domain.Conversation{
		ID:        uuid.New(),
		SocietyID: societyID,
		UserA:     a,
		UserB:     b,
		CreatedAt: time.Now(),
	}
	m.conversations[conv.ID] = conv
	return conv, nil
}

func (m *mockConversationRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Conversation, error) {
	c, ok := m.conversations[id]
	if !ok {
		return nil, apperrors.ErrConversationNotFound
	}
	return c, nil
}

func (m *mockConversationRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]*domain.Conversation, error) {
	var result []*domain.Conversation
	for _, c := range m.conversations {
		if c.UserA == userID || c.UserB == userID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockConversationRepo) CreateMessage(_ context.Context, message *domain.Message) error {
	message.ID = int64(len(m.messages) + 1)
	m.messages = append(m.messages, message)
	return nil
}

func (m *mockConversationRepo) GetMessages(_ context.Context, conversationID uuid.UUID, limit int, after time.Time) ([]*domain.Message, error) {
	var result []*domain.Message
	for _, msg := range m.messages {
		if msg.ConversationID == conversationID && msg.CreatedAt.After(after) {
			result = append(result, msg)
		}
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func testUser(societyID uuid.UUID) *domain.User {
	return &domain.User{
		ID:          uuid.New(),
		SocietyID:   societyID,
		Email:       uuid.New().String() + "@example.com",
		DisplayName: "Test User",
		Role:        domain.RoleResident,
		IsActive:    true,
	}
}

func TestStartConversationIdempotent(t *testing.T) {
	societyID := uuid.New()
	alice := testUser(societyID)
	bob := testUser(societyID)

	convRepo := newMockConversationRepo()
	userRepo := newMockUserRepo(alice, bob)
	svc := NewChatService(convRepo, userRepo, 2000, 50, logger.New("error"))

	first, err := svc.StartConversation(context.Background(), alice, bob.ID)
	require.NoError(t, err)

	// Повторный вызов, в том числе с обратным порядком пары
	second, err := svc.StartConversation(context.Background(), bob, alice.ID)
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Len(t, convRepo.conversations, 1)
}

func TestStartConversationWithSelf(t *testing.T) {
	societyID := uuid.New()
	alice := testUser(societyID)

	svc := NewChatService(newMockConversationRepo(), newMockUserRepo(alice), 2000, 50, logger.New("error"))

	_, err := svc.StartConversation(context.Background(), alice, alice.ID)
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestStartConversationCrossSociety(t *testing.T) {
	alice := testUser(uuid.New())
	stranger := testUser(uuid.New())

	svc := NewChatService(newMockConversationRepo(), newMockUserRepo(alice, stranger), 2000, 50, logger.New("error"))

	_, err := svc.StartConversation(context.Background(), alice, stranger.ID)
	require.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestSendMessageRejectsWhitespace(t *testing.T) {
	societyID := uuid.New()
	alice := testUser(societyID)
	bob := testUser(societyID)

	convRepo := newMockConversationRepo()
	svc := NewChatService(convRepo, newMockUserRepo(alice, bob), 2000, 50, logger.New("error"))

	conv, err := svc.StartConversation(context.Background(), alice, bob.ID)
	require.NoError(t, err)

	for _, content := range []string{"", "   ", "\n\t  "} {
		_, err := svc.SendMessage(context.Background(), alice, conv.ID, content)
		require.ErrorIs(t, err, apperrors.ErrEmptyMessage)
	}
	require.Empty(t, convRepo.messages)
}

func TestSendMessageTrimsContent(t *testing.T) {
	societyID := uuid.New()
	alice := testUser(societyID)
	bob := testUser(societyID)

	convRepo := newMockConversationRepo()
	svc := NewChatService(convRepo, newMockUserRepo(alice, bob), 2000, 50, logger.New("error"))

	conv, err := svc.StartConversation(context.Background(), alice, bob.ID)
	require.NoError(t, err)

	msg, err := svc.SendMessage(context.Background(), alice, conv.ID, "  hello  ")
	require.NoError(t, err)
	require.Equal(t, "hello", msg.Content)
}

func TestSendMessageNonParticipant(t *testing.T) {
	societyID := uuid.New()
	alice := testUser(societyID)
	bob := testUser(societyID)
	eve := testUser(societyID)

	convRepo := newMockConversationRepo()
	svc := NewChatService(convRepo, newMockUserRepo(alice, bob, eve), 2000, 50, logger.New("error"))

	conv, err := svc.StartConversation(context.Background(), alice, bob.ID)
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), eve, conv.ID, "intruder")
	require.ErrorIs(t, err, apperrors.ErrForbidden)
}
