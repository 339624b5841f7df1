package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"society_hub/internal/middleware"
	"society_hub/internal/service"
	"society_hub/pkg/logger"
)

type ParkingHandler struct {
	parkingService service.ParkingService
	log            logger.Logger
}

func NewParkingHandler(parkingService service.ParkingService, log logger.Logger) *ParkingHandler {
	return &ParkingHandler{
		parkingService: parkingService,
		log:            log,
	}
}

type SlotRequest struct {
	SlotNumber string `json:"slot_number" binding:"required"`
	SlotType   string `json:"slot_type" binding:"required"`
}

type AssignSlotRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Unit   string `json:"unit"`
}

type ParkingPaymentRequest struct {
	SlotID string  `json:"slot_id" binding:"required,uuid"`
	UserID string  `json:"user_id" binding:"required,uuid"`
	Period string  `json:"period" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

func (h *ParkingHandler) CreateSlot(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	slot, err := h.parkingService.CreateSlot(c.Request.Context(), user, service.SlotInput{
		SlotNumber: req.SlotNumber,
		SlotType:   req.SlotType,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, slot)
}

func (h *ParkingHandler) DeleteSlot(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slot ID"})
		return
	}

	if err := h.parkingService.DeleteSlot(c.Request.Context(), user, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *ParkingHandler) AssignSlot(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	slotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slot ID"})
		return
	}

	var req AssignSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	assigneeID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	slot, err := h.parkingService.AssignSlot(c.Request.Context(), user, slotID, assigneeID, req.Unit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, slot)
}

func (h *ParkingHandler) UnassignSlot(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	slotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slot ID"})
		return
	}

	slot, err := h.parkingService.UnassignSlot(c.Request.Context(), user, slotID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, slot)
}

func (h *ParkingHandler) ListSlots(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	slots, err := h.parkingService.ListSlots(c.Request.Context(), user.SocietyID, parseFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

func (h *ParkingHandler) ExportSlots(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	export, err := h.parkingService.ExportSlots(c.Request.Context(), user.SocietyID, parseFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}

	writeCSV(c, export)
}

func (h *ParkingHandler) CreatePayment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req ParkingPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slot ID"})
		return
	}
	payerID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	payment, err := h.parkingService.CreatePayment(c.Request.Context(), user, service.PaymentInput{
		SlotID: slotID,
		UserID: payerID,
		Period: req.Period,
		Amount: req.Amount,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}

func (h *ParkingHandler) MarkPaymentPaid(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment ID"})
		return
	}

	if err := h.parkingService.MarkPaymentPaid(c.Request.Context(), user, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "paid"})
}

func (h *ParkingHandler) ListPayments(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	payments, err := h.parkingService.ListPayments(c.Request.Context(), user.SocietyID, parseFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}
