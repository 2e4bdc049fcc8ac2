package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"tracking-service/internal/filtering"
	"tracking-service/internal/lifecycle"
	"tracking-service/internal/models"
)

const exportSheet = "Shipments"

var exportColumns = []string{
	"trackingNumber",
	"orderId",
	"customerName",
	"customerPhone",
	"origin",
	"destination",
	"zone",
	"carrierId",
	"status",
	"estimatedDelivery",
	"actualDelivery",
	"createdAt",
	"updatedAt",
}

func exportRow(s *models.Shipment) []string {
	return []string{
		s.TrackingNumber,
		s.OrderID,
		s.CustomerName,
		s.CustomerPhone,
		s.Origin,
		s.Destination,
		s.Zone,
		s.CarrierKey(),
		string(lifecycle.Canonicalize(string(s.Status))),
		formatOptionalTime(s.EstimatedDelivery),
		formatOptionalTime(s.ActualDelivery),
		s.CreatedAt.UTC().Format(time.RFC3339),
		s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// ExportShipments handles GET /api/shipments/export
// format is csv (default) or xlsx; search, status and carrier filter like the list.
// @Summary Export shipments
// @Tags shipments
// @Produce text/csv
// @Param X-Tenant-ID header string false "Tenant ID"
// @Param format query string false "csv or xlsx"
// @Success 200 {file} file
// @Failure 400 {object} models.ErrorResponse
// @Router /shipments/export [get]
func (h *ShipmentHandler) ExportShipments(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid export format",
			Message: "format must be csv or xlsx",
		})
		return
	}

	criteria := filtering.NewCriteria(c.Query("search"), c.Query("status"), c.Query("carrier"))
	shipments, err := h.shipmentService.ListShipments(c.Request.Context(), getTenantID(c), criteria)
	if err != nil {
		respondError(c, err, "Failed to export shipments", "Shipments not found")
		return
	}

	filename := "shipments_" + time.Now().UTC().Format("20060102")
	if format == "xlsx" {
		h.writeXLSX(c, shipments, filename)
		return
	}
	h.writeCSV(c, shipments, filename)
}

func (h *ShipmentHandler) writeCSV(c *gin.Context, shipments []*models.Shipment, filename string) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))
	c.Status(http.StatusOK)

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportColumns)
	for _, shipment := range shipments {
		writer.Write(exportRow(shipment))
	}
}

func (h *ShipmentHandler) writeXLSX(c *gin.Context, shipments []*models.Shipment, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", exportSheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})

	for i, name := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, name)
		f.SetCellStyle(exportSheet, cell, cell, headerStyle)

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(exportSheet, colName, colName, 18)
	}

	for rowIdx, shipment := range shipments {
		for colIdx, value := range exportRow(shipment) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(exportSheet, cell, value)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", filename))
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}
