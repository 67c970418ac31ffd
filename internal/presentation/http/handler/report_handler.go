package handler

import (
	"fmt"
	"net/http"

	"github.com/cakebro/bakery-api/internal/application/service"
	"github.com/cakebro/bakery-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles sales report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetSales handles the sales report. The format query selects a JSON payload
// (default), an XLSX download or a PDF download.
func (h *ReportHandler) GetSales(c *gin.Context) {
	period := service.ReportPeriod(c.DefaultQuery("period", string(service.PeriodDaily)))
	ref, err := service.ParseReportDate(c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "json":
		report, err := h.reportService.BuildReport(c.Request.Context(), period, ref)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Sales report generated successfully", report)

	case "xlsx":
		filename, data, err := h.reportService.ExportXLSX(c.Request.Context(), period, ref)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)

	case "pdf":
		filename, data, err := h.reportService.ExportPDF(c.Request.Context(), period, ref)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "application/pdf", data)

	default:
		response.BadRequest(c, "Unknown format. Use json, xlsx or pdf.")
	}
}

// EmailDailySummary handles sending today's summary to the shop owner
func (h *ReportHandler) EmailDailySummary(c *gin.Context) {
	var req struct {
		To string `json:"to"`
	}
	// The body is optional; an empty one means the configured owner address
	_ = c.ShouldBindJSON(&req)

	if err := h.reportService.EmailDailySummary(c.Request.Context(), req.To); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily summary email sent successfully", nil)
}
