package repository

import (
	"context"
	"errors"
	"time"

	"society_hub/internal/domain"
	"society_hub/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	apperrors "society_hub/pkg/errors"
)

type ConversationRepository interface {
	// GetOrCreate возвращает разговор для пары участников,
	// создавая его при первом обращении. Пара неупорядоченная.
	GetOrCreate(ctx context.Context, societyID uuid.UUID, userA, userB uuid.UUID) (*domain.Conversation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Conversation, error)
	CreateMessage(ctx context.Context, message *domain.Message) error
	GetMessages(ctx context.Context, conversationID uuid.UUID, limit int, after time.Time) ([]*domain.Message, error)
}

type conversationRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewConversationRepository(db *pgxpool.Pool, log logger.Logger) ConversationRepository {
	return &conversationRepository{db: db, log: log}
}

func (r *conversationRepository) GetOrCreate(ctx context.Context, societyID uuid.UUID, userA, userB uuid.UUID) (*domain.Conversation, error) {
	a, b := domain.OrderPair(userA, userB)

	// ON CONFLICT с no-op апдейтом, чтобы RETURNING сработал и для существующей строки
	query := `
		INSERT INTO conversations (id, society_id, user_a, user_b, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (user_a, user_b) DO UPDATE SET user_a = EXCLUDED.user_a
		RETURNING id, society_id, user_a, user_b, last_message, created_at, updated_at
	`

	conv := &domain.Conversation{}
	err := r.db.QueryRow(ctx, query, uuid.New(), societyID, a, b, time.Now()).Scan(
		&conv.ID, &conv.SocietyID, &conv.UserA, &conv.UserB,
		&conv.LastMessage, &conv.CreatedAt, &conv.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to get or create conversation", "error", err)
		return nil, err
	}

	return conv, nil
}

func (r *conversationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	query := `
		SELECT id, society_id, user_a, user_b, last_message, created_at, updated_at
		FROM conversations
		WHERE id = $1
	`

	conv := &domain.Conversation{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&conv.ID, &conv.SocietyID, &conv.UserA, &conv.UserB,
		&conv.LastMessage, &conv.CreatedAt, &conv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConversationNotFound
		}
		r.log.Error("Failed to get conversation", "error", err, "conversation_id", id)
		return nil, err
	}

	return conv, nil
}

func (r *conversationRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Conversation, error) {
	query := `
		SELECT id, society_id, user_a, user_b, last_message, created_at, updated_at
		FROM conversations
		WHERE user_a = $1 OR user_b = $1
		ORDER BY updated_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to list conversations", "error", err, "user_id", userID)
		return nil, err
	}
	defer rows.Close()

	var conversations []*domain.Conversation
	for rows.Next() {
		conv := &domain.Conversation{}
		err := rows.Scan(
			&conv.ID, &conv.SocietyID, &conv.UserA, &conv.UserB,
			&conv.LastMessage, &conv.CreatedAt, &conv.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan conversation", "error", err)
			return nil, err
		}
		conversations = append(conversations, conv)
	}

	return conversations, rows.Err()
}

func (r *conversationRepository) CreateMessage(ctx context.Context, message *domain.Message) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO messages (conversation_id, sender_id, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err = tx.QueryRow(ctx, query,
		message.ConversationID, message.SenderID, message.Content, message.CreatedAt,
	).Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create message", "error", err)
		return err
	}

	// Обновляем превью последнего сообщения
	_, err = tx.Exec(ctx,
		`UPDATE conversations SET last_message = $2, updated_at = $3 WHERE id = $1`,
		message.ConversationID, message.Content, message.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to bump conversation", "error", err)
		return err
	}

	return tx.Commit(ctx)
}

func (r *conversationRepository) GetMessages(ctx context.Context, conversationID uuid.UUID, limit int, after time.Time) ([]*domain.Message, error) {
	query := `
		SELECT id, conversation_id, sender_id, content, created_at
		FROM messages
		WHERE conversation_id = $1 AND created_at > $2
		ORDER BY created_at ASC
		LIMIT $3
	`
	// Без курсора первая страница - последние limit сообщений
	if after.IsZero() {
		query = `
			SELECT id, conversation_id, sender_id, content, created_at
			FROM messages
			WHERE conversation_id = $1 AND created_at > $2
			ORDER BY created_at DESC
			LIMIT $3
		`
	}

	rows, err := r.db.Query(ctx, query, conversationID, after, limit)
	if err != nil {
		r.log.Error("Failed to get messages", "error", err, "conversation_id", conversationID)
		return nil, err
	}
	defer rows.Close()

	var messages []*domain.Message
	for rows.Next() {
		message := &domain.Message{}
		err := rows.Scan(&message.ID, &message.ConversationID, &message.SenderID, &message.Content, &message.CreatedAt)
		if err != nil {
			r.log.Error("Failed to scan message", "error", err)
			return nil, err
		}
		messages = append(messages, message)
	}
	if after.IsZero() {
		reverseChrono(messages)
	}

	return messages, rows.Err()
}
