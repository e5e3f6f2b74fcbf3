package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"invoxd/internal/domain"
	"invoxd/internal/port"
)

// PaymentInput is the DTO for recording a payment.
type PaymentInput struct {
	CustomerID    uuid.UUID  `json:"customer_id" binding:"required"`
	InvoiceID     *uuid.UUID `json:"invoice_id"`
	TransactedOn  string     `json:"transacted_on" binding:"required"`
	Amount        float64    `json:"amount" binding:"required,gt=0"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	ReferenceID   string     `json:"reference_id" binding:"required"`
	TransactionID *string    `json:"transaction_id"`
}

// PaymentService defines the payment recording contract.
type PaymentService interface {
	Create(ctx context.Context, input PaymentInput) (*domain.Payment, error)
	List(ctx context.Context, offset, limit int) ([]domain.Payment, int, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, offset, limit int) ([]domain.Payment, int, error)
}

type paymentService struct {
	paymentRepo  port.PaymentRepository
	customerRepo port.CustomerRepository
	invoiceRepo  port.InvoiceRepository
}

// NewPaymentService creates a new PaymentService implementation.
func NewPaymentService(
	paymentRepo port.PaymentRepository,
	customerRepo port.CustomerRepository,
	invoiceRepo port.InvoiceRepository,
) PaymentService {
	return &paymentService{
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// Create records a payment. A paid payment tied to an invoice marks that
// invoice paid in the same call.
func (s *paymentService) Create(ctx context.Context, input PaymentInput) (*domain.Payment, error) {
	transactedOn, err := time.Parse("2006-01-02", input.TransactedOn)
	if err != nil {
		return nil, fmt.Errorf("paymentService.Create transacted_on %q: %w", input.TransactedOn, err)
	}

	status := domain.InvoiceStatus(input.Status)
	if input.Status == "" {
		status = domain.InvoiceStatusPaid
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidInvoiceStatus
	}

	if _, err := s.customerRepo.GetByID(ctx, input.CustomerID); err != nil {
		return nil, err
	}
	if input.InvoiceID != nil {
		if _, err := s.invoiceRepo.GetByID(ctx, *input.InvoiceID); err != nil {
			return nil, err
		}
	}

	currency := input.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	payment := &domain.Payment{
		CustomerID:    input.CustomerID,
		InvoiceID:     input.InvoiceID,
		TransactedOn:  transactedOn,
		Amount:        input.Amount,
		Currency:      currency,
		Status:        status,
		ReferenceID:   input.ReferenceID,
		TransactionID: input.TransactionID,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if payment.InvoiceID != nil && status == domain.InvoiceStatusPaid {
		if err := s.invoiceRepo.UpdateStatus(ctx, *payment.InvoiceID, domain.InvoiceStatusPaid); err != nil {
			return nil, fmt.Errorf("paymentService.Create mark invoice paid: %w", err)
		}
	}
	return payment, nil
}

func (s *paymentService) List(ctx context.Context, offset, limit int) ([]domain.Payment, int, error) {
	return s.paymentRepo.List(ctx, offset, limit)
}

func (s *paymentService) ListByCustomer(ctx context.Context, customerID uuid.UUID, offset, limit int) ([]domain.Payment, int, error) {
	return s.paymentRepo.ListByCustomer(ctx, customerID, offset, limit)
}
