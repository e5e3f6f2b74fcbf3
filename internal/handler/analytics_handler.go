package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"invoxd/internal/service"
)

// AnalyticsHandler handles spend-analytics endpoints.
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// TopServices handles GET /api/v1/analytics/top-services
func (h *AnalyticsHandler) TopServices(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	services, err := h.analyticsService.TopServices(c.Request.Context(), limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, services)
}

// TopCustomers handles GET /api/v1/analytics/top-customers
func (h *AnalyticsHandler) TopCustomers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	customers, err := h.analyticsService.TopCustomers(c.Request.Context(), limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, customers)
}
