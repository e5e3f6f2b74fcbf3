package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"invoxd/internal/service"
)

// CustomerHandler handles customer directory endpoints. Customers are
// created implicitly by invoice ingestion, so there is no create route.
type CustomerHandler struct {
	customerService service.CustomerService
	paymentService  service.PaymentService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerService service.CustomerService, paymentService service.PaymentService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, paymentService: paymentService}
}

// List handles GET /api/v1/customers
func (h *CustomerHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	customers, total, err := h.customerService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, customers, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/customers/:id
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid customer id")
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, customer)
}

// ListPayments handles GET /api/v1/customers/:id/payments
func (h *CustomerHandler) ListPayments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid customer id")
		return
	}
	offset, limit := parsePagination(c)

	payments, total, err := h.paymentService.ListByCustomer(c.Request.Context(), id, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, payments, PagMeta{Total: total, Offset: offset, Limit: limit})
}
