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

type TenantHandler struct {
	tenantService service.TenantService
	log           logger.Logger
}

func NewTenantHandler(tenantService service.TenantService, log logger.Logger) *TenantHandler {
	return &TenantHandler{
		tenantService: tenantService,
		log:           log,
	}
}

type TenantRequest struct {
	Name        string  `json:"name" binding:"required"`
	UnitNumber  string  `json:"unit_number" binding:"required"`
	Phone       string  `json:"phone" binding:"required"`
	Email       *string `json:"email"`
	MoveInDate  string  `json:"move_in_date" binding:"required"`
	MonthlyRent float64 `json:"monthly_rent"`
	Status      string  `json:"status"`
}

func (r TenantRequest) toInput() (service.TenantInput, error) {
	moveIn, err := time.Parse("2006-01-02", r.MoveInDate)
	if err != nil {
		return service.TenantInput{}, err
	}
	return service.TenantInput{
		Name:        r.Name,
		UnitNumber:  r.UnitNumber,
		Phone:       r.Phone,
		Email:       r.Email,
		MoveInDate:  moveIn,
		MonthlyRent: r.MonthlyRent,
		Status:      r.Status,
	}, nil
}

func (h *TenantHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req TenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	tenant, err := h.tenantService.Create(c.Request.Context(), user, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tenant)
}

func (h *TenantHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant ID"})
		return
	}

	var req TenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	tenant, err := h.tenantService.Update(c.Request.Context(), user, id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tenant)
}

func (h *TenantHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tenant ID"})
		return
	}

	if err := h.tenantService.Delete(c.Request.Context(), user, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *TenantHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	tenants, err := h.tenantService.List(c.Request.Context(), user.SocietyID, parseFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tenants": tenants})
}

func (h *TenantHandler) Export(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	export, err := h.tenantService.Export(c.Request.Context(), user.SocietyID, parseFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}

	writeCSV(c, export)
}
