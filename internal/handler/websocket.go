package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"society_hub/internal/middleware"
	"society_hub/internal/service"
	"society_hub/pkg/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // В продакшене нужно проверять origin
	},
}

// WebSocketHandler транслирует новые сообщения общей ленты подключённым клиентам
type WebSocketHandler struct {
	feedService service.SocietyFeedService
	log         logger.Logger
}

func NewWebSocketHandler(feedService service.SocietyFeedService, log logger.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		feedService: feedService,
		log:         log,
	}
}

func (h *WebSocketHandler) HandleFeed(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("Failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	h.log.Info("Feed websocket connected", "user_id", user.ID, "society_id", user.SocietyID)

	// Читаем входящие только чтобы заметить закрытие соединения
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	lastSeen := time.Now()
	for {
		select {
		case <-done:
			h.log.Info("Feed websocket disconnected", "user_id", user.ID)
			return
		case <-ticker.C:
			messages, err := h.feedService.GetMessagesAfter(c.Request.Context(), user.SocietyID, lastSeen, 0)
			if err != nil {
				h.log.Error("Failed to fetch feed messages", "error", err)
				continue
			}
			for _, msg := range messages {
				if err := conn.WriteJSON(msg); err != nil {
					h.log.Warn("Failed to write feed message", "error", err)
					return
				}
				if msg.CreatedAt.After(lastSeen) {
					lastSeen = msg.CreatedAt
				}
			}
		}
	}
}
