package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"society_hub/internal/config"
	"society_hub/internal/service"
	"society_hub/pkg/logger"

	apperrors "society_hub/pkg/errors"
)

type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	User         *UserHandler
	Chat         *ChatHandler
	Group        *GroupHandler
	SocietyFeed  *SocietyFeedHandler
	Transaction  *TransactionHandler
	Tenant       *TenantHandler
	Parking      *ParkingHandler
	Vendor       *VendorHandler
	Lead         *LeadHandler
	Staff        *StaffHandler
	Notification *NotificationHandler
	WebSocket    *WebSocketHandler
}

func NewHandlers(services *service.Services, cfg *config.Config, log logger.Logger) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(cfg),
		Auth:         NewAuthHandler(services.Auth, log),
		User:         NewUserHandler(services.User, log),
		Chat:         NewChatHandler(services.Chat, log),
		Group:        NewGroupHandler(services.Group, log),
		SocietyFeed:  NewSocietyFeedHandler(services.SocietyFeed, log),
		Transaction:  NewTransactionHandler(services.Transaction, log),
		Tenant:       NewTenantHandler(services.Tenant, log),
		Parking:      NewParkingHandler(services.Parking, log),
		Vendor:       NewVendorHandler(services.Vendor, log),
		Lead:         NewLeadHandler(services.Lead, log),
		Staff:        NewStaffHandler(services.Staff, log),
		Notification: NewNotificationHandler(services.Notification, log),
		WebSocket:    NewWebSocketHandler(services.SocietyFeed, log),
	}
}

// respondError переводит доменную ошибку в HTTP-статус
func respondError(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
}

// parseFilter читает общие параметры фильтрации из query string
func parseFilter(c *gin.Context) service.ListFilter {
	return service.ListFilter{
		Query:    c.Query("q"),
		Type:     c.Query("type"),
		Category: c.Query("category"),
		Status:   c.Query("status"),
	}
}

// parseAfter - курсор "после момента времени" для дозагрузки сообщений
func parseAfter(c *gin.Context) time.Time {
	raw := c.Query("after")
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		return 0
	}
	return limit
}

func writeCSV(c *gin.Context, export *service.CSVExport) {
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(export.Content))
}
