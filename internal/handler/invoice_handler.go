package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"invoxd/internal/domain"
	"invoxd/internal/extract"
	"invoxd/internal/port"
	"invoxd/internal/service"
)

// InvoiceHandler handles invoice persistence endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create handles POST /api/v1/invoices. The body is the extracted field
// set, usually what /invoices/upload returned, possibly hand-corrected.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var fields extract.InvoiceFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid invoice payload: "+err.Error())
		return
	}

	invoice, err := h.invoiceService.Add(c.Request.Context(), &fields)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, invoice)
}

// List handles GET /api/v1/invoices with optional filters: order_date,
// start_date, end_date, status, customer_id.
func (h *InvoiceHandler) List(c *gin.Context) {
	filter, err := parseInvoiceFilter(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FILTER", err.Error())
		return
	}
	offset, limit := parsePagination(c)

	invoices, total, err := h.invoiceService.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/invoices/:id. Line items are included.
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice id")
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, invoice)
}

// UpdateStatus handles PATCH /api/v1/invoices/:id/status.
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice id")
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "status field is required")
		return
	}

	if err := h.invoiceService.UpdateStatus(c.Request.Context(), id, domain.InvoiceStatus(body.Status)); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "status updated"})
}

func parseInvoiceFilter(c *gin.Context) (port.InvoiceFilter, error) {
	var filter port.InvoiceFilter

	parseDate := func(param string) (*time.Time, error) {
		s := c.Query(param)
		if s == "" {
			return nil, nil
		}
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, &filterError{param}
		}
		return &t, nil
	}

	var err error
	if filter.OrderDate, err = parseDate("order_date"); err != nil {
		return filter, err
	}
	if filter.StartDate, err = parseDate("start_date"); err != nil {
		return filter, err
	}
	if filter.EndDate, err = parseDate("end_date"); err != nil {
		return filter, err
	}

	if s := c.Query("status"); s != "" {
		status := domain.InvoiceStatus(s)
		if !status.Valid() {
			return filter, &filterError{"status"}
		}
		filter.Status = &status
	}
	if s := c.Query("customer_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return filter, &filterError{"customer_id"}
		}
		filter.CustomerID = &id
	}
	return filter, nil
}

type filterError struct {
	param string
}

func (e *filterError) Error() string {
	return "invalid '" + e.param + "' query parameter"
}
