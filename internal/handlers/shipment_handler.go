package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tracking-service/internal/filtering"
	"tracking-service/internal/models"
	"tracking-service/internal/services"
)

// ShipmentHandler handles HTTP requests for shipment tracking
type ShipmentHandler struct {
	shipmentService services.ShipmentService
}

// NewShipmentHandler creates a new shipment handler
func NewShipmentHandler(shipmentService services.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{shipmentService: shipmentService}
}

// ListShipments handles GET /api/shipments
// Optional query parameters search, status and carrier narrow the result.
// @Summary List shipments
// @Tags shipments
// @Produce json
// @Param X-Tenant-ID header string false "Tenant ID"
// @Param search query string false "Substring of tracking number, customer, order, origin or destination"
// @Param status query string false "Status or alias, or all"
// @Param carrier query string false "Carrier ID, or all"
// @Success 200 {object} models.ListShipmentsResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /shipments [get]
func (h *ShipmentHandler) ListShipments(c *gin.Context) {
	tenantID := getTenantID(c)
	criteria := filtering.NewCriteria(c.Query("search"), c.Query("status"), c.Query("carrier"))

	shipments, err := h.shipmentService.ListShipments(c.Request.Context(), tenantID, criteria)
	if err != nil {
		respondError(c, err, "Failed to list shipments", "Shipments not found")
		return
	}

	c.JSON(http.StatusOK, models.ListShipmentsResponse{
		Success: true,
		Data:    shipments,
		Total:   len(shipments),
	})
}

// GetShipment handles GET /api/shipments/:id
// @Summary Get shipment
// @Tags shipments
// @Produce json
// @Param X-Tenant-ID header string false "Tenant ID"
// @Param id path string true "Shipment ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /shipments/{id} [get]
func (h *ShipmentHandler) GetShipment(c *gin.Context) {
	id, ok := parseID(c, "shipment")
	if !ok {
		return
	}

	shipment, err := h.shipmentService.GetShipment(c.Request.Context(), getTenantID(c), id)
	if err != nil {
		respondError(c, err, "Failed to get shipment", "Shipment not found")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    shipment,
	})
}

// CreateShipment handles POST /api/shipments
// @Summary Create shipment
// @Tags shipments
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string false "Tenant ID"
// @Param body body models.CreateShipmentRequest true "Shipment data"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /shipments [post]
func (h *ShipmentHandler) CreateShipment(c *gin.Context) {
	var request models.CreateShipmentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	shipment, err := h.shipmentService.CreateShipment(c.Request.Context(), getTenantID(c), &request)
	if err != nil {
		respondError(c, err, "Failed to create shipment", "Shipment not found")
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{
		Success: true,
		Data:    shipment,
		Message: stringPtr("Shipment created successfully"),
	})
}

// UpdateShipment handles PUT /api/shipments/:id
// Only the fields present in the body change.
func (h *ShipmentHandler) UpdateShipment(c *gin.Context) {
	id, ok := parseID(c, "shipment")
	if !ok {
		return
	}

	var request models.UpdateShipmentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	shipment, err := h.shipmentService.UpdateShipment(c.Request.Context(), getTenantID(c), id, &request)
	if err != nil {
		respondError(c, err, "Failed to update shipment", "Shipment not found")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    shipment,
		Message: stringPtr("Shipment updated successfully"),
	})
}

// DeleteShipment handles DELETE /api/shipments/:id
func (h *ShipmentHandler) DeleteShipment(c *gin.Context) {
	id, ok := parseID(c, "shipment")
	if !ok {
		return
	}

	if err := h.shipmentService.DeleteShipment(c.Request.Context(), getTenantID(c), id); err != nil {
		respondError(c, err, "Failed to delete shipment", "Shipment not found")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: stringPtr("Shipment deleted successfully"),
	})
}

// UpdateStatus handles PUT /api/shipments/:id/status
// @Summary Set shipment status
// @Tags shipments
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string false "Tenant ID"
// @Param id path string true "Shipment ID"
// @Param body body models.UpdateStatusRequest true "Target status, canonical or alias"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /shipments/{id}/status [put]
func (h *ShipmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "shipment")
	if !ok {
		return
	}

	var request models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	shipment, err := h.shipmentService.SetStatus(c.Request.Context(), getTenantID(c), id, request.Status)
	if err != nil {
		respondError(c, err, "Failed to update shipment status", "Shipment not found")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    shipment,
		Message: stringPtr("Shipment status updated"),
	})
}

// AdvanceStatus handles POST /api/shipments/:id/advance
// @Summary Quick-advance shipment status
// @Tags shipments
// @Produce json
// @Param X-Tenant-ID header string false "Tenant ID"
// @Param id path string true "Shipment ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /shipments/{id}/advance [post]
func (h *ShipmentHandler) AdvanceStatus(c *gin.Context) {
	id, ok := parseID(c, "shipment")
	if !ok {
		return
	}

	shipment, err := h.shipmentService.AdvanceStatus(c.Request.Context(), getTenantID(c), id)
	if err != nil {
		respondError(c, err, "Failed to advance shipment status", "Shipment not found")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    shipment,
	})
}

// GetHistory handles GET /api/shipments/:id/history
func (h *ShipmentHandler) GetHistory(c *gin.Context) {
	id, ok := parseID(c, "shipment")
	if !ok {
		return
	}

	history, err := h.shipmentService.GetHistory(c.Request.Context(), getTenantID(c), id)
	if err != nil {
		respondError(c, err, "Failed to get shipment history", "Shipment not found")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    history,
	})
}

// GetAnalytics handles GET /api/shipments/analytics
// @Summary Delivery analytics
// @Tags analytics
// @Produce json
// @Param X-Tenant-ID header string false "Tenant ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /shipments/analytics [get]
func (h *ShipmentHandler) GetAnalytics(c *gin.Context) {
	summary, err := h.shipmentService.GetAnalytics(c.Request.Context(), getTenantID(c))
	if err != nil {
		respondError(c, err, "Failed to compute analytics", "Analytics not found")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    summary,
	})
}

// ListStatuses handles GET /api/shipments/statuses
func (h *ShipmentHandler) ListStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    h.shipmentService.Statuses(),
	})
}

// RegisterRoutes mounts the shipment routes on group
func (h *ShipmentHandler) RegisterRoutes(group *gin.RouterGroup) {
	shipments := group.Group("/shipments")
	{
		shipments.GET("", h.ListShipments)
		shipments.POST("", h.CreateShipment)
		shipments.GET("/analytics", h.GetAnalytics)
		shipments.GET("/statuses", h.ListStatuses)
		shipments.GET("/export", h.ExportShipments)
		shipments.GET("/:id", h.GetShipment)
		shipments.PUT("/:id", h.UpdateShipment)
		shipments.DELETE("/:id", h.DeleteShipment)
		shipments.PUT("/:id/status", h.UpdateStatus)
		shipments.POST("/:id/advance", h.AdvanceStatus)
		shipments.GET("/:id/history", h.GetHistory)
	}
}
