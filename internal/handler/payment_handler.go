package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoxd/internal/service"
)

// PaymentHandler handles payment recording endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// List handles GET /api/v1/payments
func (h *PaymentHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	payments, total, err := h.paymentService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, payments, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Create handles POST /api/v1/payments
func (h *PaymentHandler) Create(c *gin.Context) {
	var input service.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid payment payload: "+err.Error())
		return
	}

	payment, err := h.paymentService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, payment)
}
