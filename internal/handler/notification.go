package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"society_hub/internal/middleware"
	"society_hub/internal/service"
	"society_hub/pkg/logger"
)

type NotificationHandler struct {
	notifService service.NotificationService
	log          logger.Logger
}

func NewNotificationHandler(notifService service.NotificationService, log logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notifService: notifService,
		log:          log,
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	notifications, err := h.notifService.List(c.Request.Context(), user.ID, parseLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification ID"})
		return
	}

	if err := h.notifService.MarkRead(c.Request.Context(), user.ID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "read"})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	if err := h.notifService.MarkAllRead(c.Request.Context(), user.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "all read"})
}
