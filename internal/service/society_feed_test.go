package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"society_hub/internal/domain"
	"society_hub/pkg/logger"

	apperrors "society_hub/pkg/errors"
)

type mockFeedRepo struct {
	messages map[uuid.UUID][]*domain.SocietyMessage
}

func newMockFeedRepo() *mockFeedRepo {
	return &mockFeedRepo{messages: map[uuid.UUID][]*domain.SocietyMessage{}}
}

func (m *mockFeedRepo) SaveMessage(_ context.Context, societyID uuid.UUID, message *domain.SocietyMessage) error {
	m.messages[societyID] = append(m.messages[societyID], message)
	return nil
}

func (m *mockFeedRepo) GetMessages(_ context.Context, societyID uuid.UUID, limit int) ([]*domain.SocietyMessage, error) {
	msgs := m.messages[societyID]
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].CreatedAt.Before(msgs[j].CreatedAt) })
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

func (m *mockFeedRepo) GetMessagesAfter(_ context.Context, societyID uuid.UUID, after time.Time, limit int) ([]*domain.SocietyMessage, error) {
	var result []*domain.SocietyMessage
	for _, msg := range m.messages[societyID] {
		if msg.CreatedAt.After(after) {
			result = append(result, msg)
		}
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func TestPostMessageValidation(t *testing.T) {
	societyID := uuid.New()
	alice := testUser(societyID)

	feedRepo := newMockFeedRepo()
	svc := NewSocietyFeedService(feedRepo, 10, 50, logger.New("error"))

	_, err := svc.PostMessage(context.Background(), alice, "   ")
	require.ErrorIs(t, err, apperrors.ErrEmptyMessage)

	_, err = svc.PostMessage(context.Background(), alice, "this message is way too long")
	require.ErrorIs(t, err, apperrors.ErrBadRequest)

	require.Empty(t, feedRepo.messages[societyID])
}

func TestPostMessageFillsSender(t *testing.T) {
	societyID := uuid.New()
	alice := testUser(societyID)

	svc := NewSocietyFeedService(newMockFeedRepo(), 2000, 50, logger.New("error"))

	msg, err := svc.PostMessage(context.Background(), alice, "  hello society  ")
	require.NoError(t, err)
	require.Equal(t, "hello society", msg.Content)
	require.Equal(t, alice.ID, msg.SenderID)
	require.Equal(t, alice.DisplayName, msg.SenderName)
	require.NotEmpty(t, msg.ID)
	require.False(t, msg.CreatedAt.IsZero())
}

func TestGetMessagesClampsLimit(t *testing.T) {
	societyID := uuid.New()
	alice := testUser(societyID)

	feedRepo := newMockFeedRepo()
	svc := NewSocietyFeedService(feedRepo, 2000, 3, logger.New("error"))

	for i := 0; i < 5; i++ {
		_, err := svc.PostMessage(context.Background(), alice, "msg")
		require.NoError(t, err)
	}

	// Запрошено больше страницы - возвращается не больше pageSize
	msgs, err := svc.GetMessages(context.Background(), societyID, 100)
	require.NoError(t, err)
	require.Len(t, msgs, 3)

	// Нулевой лимит тоже приводится к pageSize
	msgs, err = svc.GetMessages(context.Background(), societyID, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
}
