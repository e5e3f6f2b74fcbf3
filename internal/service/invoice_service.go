package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"invoxd/internal/domain"
	"invoxd/internal/extract"
	"invoxd/internal/port"
)

const defaultCurrency = "INR"

// InvoiceService defines the invoice management contract.
type InvoiceService interface {
	Add(ctx context.Context, fields *extract.InvoiceFields) (*domain.Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, filter port.InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) error
}

type invoiceService struct {
	invoiceRepo  port.InvoiceRepository
	customerRepo port.CustomerRepository
	companyRepo  port.CompanyRepository
	log          *slog.Logger
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	customerRepo port.CustomerRepository,
	companyRepo port.CompanyRepository,
	logger *slog.Logger,
) InvoiceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		companyRepo:  companyRepo,
		log:          logger,
	}
}

// Add persists one extracted invoice record. The customer is upserted by
// name, and the invoice type is decided by whether the customer is one of
// our registered companies.
func (s *invoiceService) Add(ctx context.Context, fields *extract.InvoiceFields) (*domain.Invoice, error) {
	if len(fields.LineItems) == 0 {
		return nil, domain.ErrNoLineItems
	}

	orderDate, err := time.Parse("2006-01-02", fields.OrderDate)
	if err != nil {
		return nil, fmt.Errorf("invoiceService.Add order_date %q: %w", fields.OrderDate, err)
	}
	var dueDate *time.Time
	if fields.DueDate != nil {
		d, err := time.Parse("2006-01-02", *fields.DueDate)
		if err != nil {
			return nil, fmt.Errorf("invoiceService.Add due_date %q: %w", *fields.DueDate, err)
		}
		dueDate = &d
	}

	customer, err := s.upsertCustomer(ctx, fields)
	if err != nil {
		return nil, err
	}

	invoiceType := domain.InvoiceTypePayable
	if _, err := s.companyRepo.GetByName(ctx, fields.CustomerName); err == nil {
		invoiceType = domain.InvoiceTypeReceivable
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("invoiceService.Add company lookup: %w", err)
	}

	currency := defaultCurrency
	if fields.Currency != nil && *fields.Currency != "" {
		currency = *fields.Currency
	}

	invoice := &domain.Invoice{
		InvoiceNumber: fields.InvoiceNumber,
		OrderDate:     orderDate,
		DueDate:       dueDate,
		InvoiceFrom:   fields.InvoiceFrom,
		InvoiceTo:     fields.InvoiceTo,
		TotalAmount:   fields.TotalAmount,
		Currency:      currency,
		Tax:           fields.Tax,
		Status:        domain.InvoiceStatusPending,
		InvoiceType:   invoiceType,
		CustomerID:    customer.ID,
	}
	for _, li := range fields.LineItems {
		invoice.LineItems = append(invoice.LineItems, domain.InvoiceLineItem{
			Item:      li.Service,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
			UnitTax:   li.UnitTax,
			LinePrice: li.LinePrice,
		})
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	s.log.Info("invoice.added",
		"invoice_number", invoice.InvoiceNumber,
		"customer", customer.Name,
		"type", invoice.InvoiceType,
		"total", invoice.TotalAmount)
	return invoice, nil
}

// upsertCustomer finds the customer by name or creates it, backfilling
// contact details the stored record is missing.
func (s *invoiceService) upsertCustomer(ctx context.Context, fields *extract.InvoiceFields) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByName(ctx, fields.CustomerName)
	if errors.Is(err, domain.ErrNotFound) {
		customer = &domain.Customer{
			Name:      fields.CustomerName,
			Email:     fields.Email,
			Phone:     fields.Phone,
			Address:   fields.Address,
			GSTNumber: fields.GSTNumber,
		}
		if err := s.customerRepo.Create(ctx, customer); err != nil {
			return nil, err
		}
		return customer, nil
	}
	if err != nil {
		return nil, fmt.Errorf("invoiceService.upsertCustomer: %w", err)
	}

	changed := false
	if customer.Email == nil && fields.Email != nil {
		customer.Email = fields.Email
		changed = true
	}
	if customer.Phone == nil && fields.Phone != nil {
		customer.Phone = fields.Phone
		changed = true
	}
	if customer.GSTNumber == nil && fields.GSTNumber != nil {
		customer.GSTNumber = fields.GSTNumber
		changed = true
	}
	if customer.Address == "" && fields.Address != "" {
		customer.Address = fields.Address
		changed = true
	}
	if changed {
		if err := s.customerRepo.Update(ctx, customer); err != nil {
			return nil, err
		}
	}
	return customer, nil
}

func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, id)
}

func (s *invoiceService) List(ctx context.Context, filter port.InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error) {
	return s.invoiceRepo.List(ctx, filter, offset, limit)
}

func (s *invoiceService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) error {
	if !status.Valid() {
		return domain.ErrInvalidInvoiceStatus
	}
	return s.invoiceRepo.UpdateStatus(ctx, id, status)
}
