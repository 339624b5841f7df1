package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"society_hub/internal/domain"
	"society_hub/pkg/logger"
)

const (
	// Префикс ключей Redis для ленты общества
	feedMessagesKeyPrefix = "society:%s:feed"
)

// SocietyFeedRepository хранит общую ленту общества в Redis sorted set,
// score = UnixMilli времени создания. Лента опрашивается клиентами каждые
// несколько секунд, поэтому чтение должно быть дешевым.
type SocietyFeedRepository interface {
	SaveMessage(ctx context.Context, societyID uuid.UUID, message *domain.SocietyMessage) error
	GetMessages(ctx context.Context, societyID uuid.UUID, limit int) ([]*domain.SocietyMessage, error)
	GetMessagesAfter(ctx context.Context, societyID uuid.UUID, after time.Time, limit int) ([]*domain.SocietyMessage, error)
}

type societyFeedRepository struct {
	rdb *redis.Client
	ttl time.Duration
	log logger.Logger
}

func NewSocietyFeedRepository(rdb *redis.Client, ttl time.Duration, log logger.Logger) SocietyFeedRepository {
	return &societyFeedRepository{rdb: rdb, ttl: ttl, log: log}
}

func (r *societyFeedRepository) feedKey(societyID uuid.UUID) string {
	return fmt.Sprintf(feedMessagesKeyPrefix, societyID.String())
}

func (r *societyFeedRepository) SaveMessage(ctx context.Context, societyID uuid.UUID, message *domain.SocietyMessage) error {
	key := r.feedKey(societyID)

	messageJSON, err := json.Marshal(message)
	if err != nil {
		r.log.Error("Failed to marshal feed message", "error", err)
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	score := float64(message.CreatedAt.UnixMilli())

	err = r.rdb.ZAdd(ctx, key, redis.Z{
		Score:  score,
		Member: messageJSON,
	}).Err()
	if err != nil {
		r.log.Error("Failed to save feed message to Redis", "error", err, "society_id", societyID)
		return fmt.Errorf("failed to save message: %w", err)
	}

	if err := r.rdb.Expire(ctx, key, r.ttl).Err(); err != nil {
		r.log.Warn("Failed to set TTL on feed key", "error", err)
		// Не критичная ошибка, продолжаем
	}

	return nil
}

func (r *societyFeedRepository) GetMessages(ctx context.Context, societyID uuid.UUID, limit int) ([]*domain.SocietyMessage, error) {
	key := r.feedKey(societyID)

	// Последние N от новых к старым, затем разворот в хронологический порядок
	messagesJSON, err := r.rdb.ZRevRange(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		if err == redis.Nil {
			return []*domain.SocietyMessage{}, nil
		}
		r.log.Error("Failed to get feed messages from Redis", "error", err, "society_id", societyID)
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	messages := make([]*domain.SocietyMessage, 0, len(messagesJSON))
	for _, msgJSON := range messagesJSON {
		var message domain.SocietyMessage
		if err := json.Unmarshal([]byte(msgJSON), &message); err != nil {
			r.log.Warn("Failed to unmarshal feed message", "error", err)
			continue
		}
		messages = append(messages, &message)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

func (r *societyFeedRepository) GetMessagesAfter(ctx context.Context, societyID uuid.UUID, after time.Time, limit int) ([]*domain.SocietyMessage, error) {
	key := r.feedKey(societyID)

	// Строгое "после": клиент передает время последнего полученного сообщения
	minScore := after.UnixMilli() + 1

	messagesJSON, err := r.rdb.ZRangeByScore(ctx, key, &redis.ZRangeBy{
		Min:    fmt.Sprintf("%d", minScore),
		Max:    "+inf",
		Offset: 0,
		Count:  int64(limit),
	}).Result()
	if err != nil {
		if err == redis.Nil {
			return []*domain.SocietyMessage{}, nil
		}
		r.log.Error("Failed to get feed messages after time", "error", err, "society_id", societyID)
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	messages := make([]*domain.SocietyMessage, 0, len(messagesJSON))
	for _, msgJSON := range messagesJSON {
		var message domain.SocietyMessage
		if err := json.Unmarshal([]byte(msgJSON), &message); err != nil {
			r.log.Warn("Failed to unmarshal feed message", "error", err)
			continue
		}
		messages = append(messages, &message)
	}

	return messages, nil
}
