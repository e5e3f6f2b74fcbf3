package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"invoxd/internal/config"
	"invoxd/internal/handler"
	"invoxd/internal/middleware"
	"invoxd/internal/service"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth      *handler.AuthHandler
	Ingest    *handler.IngestHandler
	Invoice   *handler.InvoiceHandler
	Company   *handler.CompanyHandler
	Customer  *handler.CustomerHandler
	Payment   *handler.PaymentHandler
	Analytics *handler.AnalyticsHandler
	Report    *handler.ReportHandler
	Health    *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, authSvc service.AuthService, h Handlers, log *slog.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/token", h.Auth.Token)

	// Everything else sits behind bearer auth when a JWT secret is set.
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	invoices := protected.Group("/invoices")
	invoices.POST("/upload", h.Ingest.Upload)
	invoices.POST("", h.Invoice.Create)
	invoices.GET("", h.Invoice.List)
	invoices.GET("/:id", h.Invoice.GetByID)
	invoices.PATCH("/:id/status", h.Invoice.UpdateStatus)

	companies := protected.Group("/companies")
	companies.POST("", h.Company.Create)
	companies.GET("", h.Company.List)
	companies.GET("/:id", h.Company.GetByID)
	companies.PUT("/:id", h.Company.Update)
	companies.DELETE("/:id", h.Company.Delete)

	customers := protected.Group("/customers")
	customers.GET("", h.Customer.List)
	customers.GET("/:id", h.Customer.GetByID)
	customers.GET("/:id/payments", h.Customer.ListPayments)

	payments := protected.Group("/payments")
	payments.POST("", h.Payment.Create)
	payments.GET("", h.Payment.List)

	analytics := protected.Group("/analytics")
	analytics.GET("/top-services", h.Analytics.TopServices)
	analytics.GET("/top-customers", h.Analytics.TopCustomers)

	reports := protected.Group("/reports")
	reports.GET("/invoices.xlsx", h.Report.ExportInvoices)

	return r
}
