package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"society_hub/internal/middleware"
	"society_hub/internal/service"
	"society_hub/pkg/logger"
)

type StaffHandler struct {
	staffService service.StaffService
	log          logger.Logger
}

func NewStaffHandler(staffService service.StaffService, log logger.Logger) *StaffHandler {
	return &StaffHandler{
		staffService: staffService,
		log:          log,
	}
}

type StaffRequest struct {
	Name     string  `json:"name" binding:"required"`
	Role     string  `json:"role" binding:"required"`
	Phone    string  `json:"phone" binding:"required"`
	Salary   float64 `json:"salary"`
	Status   string  `json:"status"`
	JoinedAt string  `json:"joined_at"`
}

func (r StaffRequest) toInput() (service.StaffInput, error) {
	input := service.StaffInput{
		Name:   r.Name,
		Role:   r.Role,
		Phone:  r.Phone,
		Salary: r.Salary,
		Status: r.Status,
	}
	if r.JoinedAt != "" {
		joined, err := time.Parse("2006-01-02", r.JoinedAt)
		if err != nil {
			return service.StaffInput{}, err
		}
		input.JoinedAt = joined
	}
	return input, nil
}

func (h *StaffHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	staff, err := h.staffService.Create(c.Request.Context(), user, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, staff)
}

func (h *StaffHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid staff ID"})
		return
	}

	var req StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	staff, err := h.staffService.Update(c.Request.Context(), user, id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, staff)
}

func (h *StaffHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid staff ID"})
		return
	}

	if err := h.staffService.Delete(c.Request.Context(), user, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *StaffHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	members, err := h.staffService.List(c.Request.Context(), user.SocietyID, parseFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"staff": members})
}

func (h *StaffHandler) Export(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	export, err := h.staffService.Export(c.Request.Context(), user.SocietyID, parseFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}

	writeCSV(c, export)
}
