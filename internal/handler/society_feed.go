package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"society_hub/internal/middleware"
	"society_hub/internal/service"
	"society_hub/pkg/logger"
)

type SocietyFeedHandler struct {
	feedService service.SocietyFeedService
	log         logger.Logger
}

func NewSocietyFeedHandler(feedService service.SocietyFeedService, log logger.Logger) *SocietyFeedHandler {
	return &SocietyFeedHandler{
		feedService: feedService,
		log:         log,
	}
}

func (h *SocietyFeedHandler) PostMessage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	message, err := h.feedService.PostMessage(c.Request.Context(), user, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

func (h *SocietyFeedHandler) GetMessages(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	after := parseAfter(c)
	if !after.IsZero() {
		messages, err := h.feedService.GetMessagesAfter(c.Request.Context(), user.SocietyID, after, parseLimit(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"messages": messages})
		return
	}

	messages, err := h.feedService.GetMessages(c.Request.Context(), user.SocietyID, parseLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
