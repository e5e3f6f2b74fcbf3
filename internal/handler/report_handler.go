package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"invoxd/internal/service"
)

// ReportHandler handles invoice export endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ExportInvoices handles GET /api/v1/reports/invoices.xlsx. It accepts the
// same filters as the invoice list endpoint and streams a workbook.
func (h *ReportHandler) ExportInvoices(c *gin.Context) {
	filter, err := parseInvoiceFilter(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FILTER", err.Error())
		return
	}

	filename := fmt.Sprintf("invoices-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.reportService.ExportInvoicesXLSX(c.Request.Context(), filter, c.Writer); err != nil {
		// Headers may already be out; this is best effort.
		HandleError(c, err)
	}
}
