package main

import (
	"fmt"
	"log/slog"
	"os"

	"invoxd/internal/config"
	"invoxd/internal/docparse"
	"invoxd/internal/extract"
	"invoxd/internal/handler"
	"invoxd/internal/port"
	"invoxd/internal/repository/postgres"
	"invoxd/internal/router"
	"invoxd/internal/service"
	localstorage "invoxd/internal/storage/local"
	s3storage "invoxd/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := newLogger(&cfg.Log)
	slog.SetDefault(log)

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Repositories
	customerRepo := postgres.NewCustomerRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	companyRepo := postgres.NewCompanyRepo(db)
	paymentRepo := postgres.NewPaymentRepo(db)
	analyticsRepo := postgres.NewAnalyticsRepo(db)

	// Storage
	var storage port.ObjectStorage
	switch cfg.Storage.Provider {
	case "s3":
		storage, err = s3storage.NewS3Client(&cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	default:
		storage, err = localstorage.NewLocalStorage(cfg.Storage.UploadDir)
		if err != nil {
			return fmt.Errorf("failed to initialize local storage: %w", err)
		}
	}

	// Parsing pipeline
	parser := docparse.New(docparse.Config{
		Pdftoppm:  cfg.OCR.Pdftoppm,
		Tesseract: cfg.OCR.Tesseract,
		Language:  cfg.OCR.Language,
		DPI:       cfg.OCR.DPI,
		MaxPages:  cfg.OCR.MaxPages,
	}, log)
	extractor := extract.NewOpenAIExtractor(&cfg.Extractor, log)

	// Services
	authSvc := service.NewAuthService(cfg.Auth)
	ingestSvc := service.NewIngestService(storage, parser, extractor, &cfg.Storage, log)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, customerRepo, companyRepo, log)
	companySvc := service.NewCompanyService(companyRepo)
	customerSvc := service.NewCustomerService(customerRepo)
	paymentSvc := service.NewPaymentService(paymentRepo, customerRepo, invoiceRepo)
	analyticsSvc := service.NewAnalyticsService(analyticsRepo)
	reportSvc := service.NewReportService(invoiceRepo, customerRepo)

	// Handlers
	h := router.Handlers{
		Auth:      handler.NewAuthHandler(authSvc),
		Ingest:    handler.NewIngestHandler(ingestSvc),
		Invoice:   handler.NewInvoiceHandler(invoiceSvc),
		Company:   handler.NewCompanyHandler(companySvc),
		Customer:  handler.NewCustomerHandler(customerSvc, paymentSvc),
		Payment:   handler.NewPaymentHandler(paymentSvc),
		Analytics: handler.NewAnalyticsHandler(analyticsSvc),
		Report:    handler.NewReportHandler(reportSvc),
		Health:    handler.NewHealthHandler(db),
	}

	r := router.Setup(cfg, authSvc, h, log)

	log.Info("server starting", "addr", cfg.Server.Port, "env", cfg.Server.Environment)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func newLogger(cfg *config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
