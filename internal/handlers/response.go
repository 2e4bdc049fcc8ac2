package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tracking-service/internal/models"
	"tracking-service/internal/repository"
	"tracking-service/internal/validation"
)

// getTenantID returns the request tenant. Tenants scope data only; callers
// are not authorized here.
func getTenantID(c *gin.Context) string {
	tenantID := c.GetString("tenant_id")

	// Fall back to header
	if tenantID == "" {
		tenantID = c.GetHeader("X-Tenant-ID")
	}

	if tenantID == "" {
		return repository.DefaultTenantID
	}
	return tenantID
}

func stringPtr(s string) *string {
	return &s
}

// parseID reads the :id path parameter, answering 400 when it is not a UUID
func parseID(c *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid " + what + " ID",
			Message: what + " ID must be a valid UUID",
		})
		return uuid.Nil, false
	}
	return id, true
}

func badRequest(c *gin.Context, title string, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   title,
		Message: err.Error(),
	})
}

// respondError maps service errors to status codes: validation failures to
// 400, missing records to 404 and everything else to 500 under title
func respondError(c *gin.Context, err error, title string, notFound string) {
	var verrs validation.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Validation failed",
			Message: verrs.Error(),
			Details: []validation.ValidationError(verrs),
		})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   notFound,
			Message: err.Error(),
		})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   title,
			Message: err.Error(),
		})
	}
}
