package domain

import (
	"time"

	"github.com/google/uuid"
)

// Conversation - личная переписка двух пользователей.
// Пара участников хранится упорядоченно (UserA < UserB),
// поэтому пара однозначно определяет разговор.
type Conversation struct {
	ID          uuid.UUID `json:"id"`
	SocietyID   uuid.UUID `json:"society_id"`
	UserA       uuid.UUID `json:"user_a"`
	UserB       uuid.UUID `json:"user_b"`
	LastMessage *string   `json:"last_message,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Message - неизменяемое сообщение в личной переписке
type Message struct {
	ID             int64     `json:"id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	SenderID       uuid.UUID `json:"sender_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// SocietyMessage - сообщение общей ленты общества (хранится в Redis)
type SocietyMessage struct {
	ID         string    `json:"id"`
	SocietyID  uuid.UUID `json:"society_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// OrderPair возвращает пару user id в каноническом порядке
func OrderPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() > b.String() {
		return b, a
	}
	return a, b
}
