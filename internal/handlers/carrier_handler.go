package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tracking-service/internal/models"
	"tracking-service/internal/services"
)

// CarrierHandler handles HTTP requests for the carrier registry
type CarrierHandler struct {
	carrierService services.CarrierService
}

// NewCarrierHandler creates a new carrier handler
func NewCarrierHandler(carrierService services.CarrierService) *CarrierHandler {
	return &CarrierHandler{carrierService: carrierService}
}

// ListCarriers handles GET /api/carriers
func (h *CarrierHandler) ListCarriers(c *gin.Context) {
	h.list(c, false)
}

// ListActiveCarriers handles GET /api/carriers/active
func (h *CarrierHandler) ListActiveCarriers(c *gin.Context) {
	h.list(c, true)
}

func (h *CarrierHandler) list(c *gin.Context, activeOnly bool) {
	carriers, err := h.carrierService.ListCarriers(c.Request.Context(), getTenantID(c), activeOnly)
	if err != nil {
		respondError(c, err, "Failed to list carriers", "Carriers not found")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    carriers,
	})
}

// GetCarrier handles GET /api/carriers/:id
func (h *CarrierHandler) GetCarrier(c *gin.Context) {
	id, ok := parseID(c, "carrier")
	if !ok {
		return
	}

	carrier, err := h.carrierService.GetCarrier(c.Request.Context(), getTenantID(c), id)
	if err != nil {
		respondError(c, err, "Failed to get carrier", "Carrier not found")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    carrier,
	})
}

// CreateCarrier handles POST /api/carriers
func (h *CarrierHandler) CreateCarrier(c *gin.Context) {
	var request models.CreateCarrierRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	carrier, err := h.carrierService.CreateCarrier(c.Request.Context(), getTenantID(c), &request)
	if err != nil {
		respondError(c, err, "Failed to create carrier", "Carrier not found")
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    carrier,
		Message: stringPtr("Carrier created successfully"),
	})
}

// UpdateCarrier handles PUT /api/carriers/:id
func (h *CarrierHandler) UpdateCarrier(c *gin.Context) {
	id, ok := parseID(c, "carrier")
	if !ok {
		return
	}

	var request models.UpdateCarrierRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	carrier, err := h.carrierService.UpdateCarrier(c.Request.Context(), getTenantID(c), id, &request)
	if err != nil {
		respondError(c, err, "Failed to update carrier", "Carrier not found")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    carrier,
		Message: stringPtr("Carrier updated successfully"),
	})
}

// DeleteCarrier handles DELETE /api/carriers/:id
func (h *CarrierHandler) DeleteCarrier(c *gin.Context) {
	id, ok := parseID(c, "carrier")
	if !ok {
		return
	}

	if err := h.carrierService.DeleteCarrier(c.Request.Context(), getTenantID(c), id); err != nil {
		respondError(c, err, "Failed to delete carrier", "Carrier not found")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Carrier deleted successfully"),
	})
}

// RegisterRoutes mounts the carrier routes on group
func (h *CarrierHandler) RegisterRoutes(group *gin.RouterGroup) {
	carriers := group.Group("/carriers")
	{
		carriers.GET("", h.ListCarriers)
		carriers.POST("", h.CreateCarrier)
		carriers.GET("/active", h.ListActiveCarriers)
		carriers.GET("/:id", h.GetCarrier)
		carriers.PUT("/:id", h.UpdateCarrier)
		carriers.DELETE("/:id", h.DeleteCarrier)
	}
}
