package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invoxd/internal/domain"
	"invoxd/internal/service"
	"invoxd/mocks"
)

func TestPaymentService_Create_MarksInvoicePaid(t *testing.T) {
	paymentRepo := new(mocks.MockPaymentRepo)
	customerRepo := new(mocks.MockCustomerRepo)
	invoiceRepo := new(mocks.MockInvoiceRepo)
	svc := service.NewPaymentService(paymentRepo, customerRepo, invoiceRepo)

	customerID := uuid.New()
	invoiceID := uuid.New()

	customerRepo.On("GetByID", mock.Anything, customerID).
		Return(&domain.Customer{ID: customerID, Name: "Globex Corp"}, nil)
	invoiceRepo.On("GetByID", mock.Anything, invoiceID).
		Return(&domain.Invoice{ID: invoiceID}, nil)
	paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil)
	invoiceRepo.On("UpdateStatus", mock.Anything, invoiceID, domain.InvoiceStatusPaid).Return(nil)

	payment, err := svc.Create(context.Background(), service.PaymentInput{
		CustomerID:   customerID,
		InvoiceID:    &invoiceID,
		TransactedOn: "2024-03-01",
		Amount:       118,
		ReferenceID:  "PAY-001",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, payment.Status)
	assert.Equal(t, "INR", payment.Currency)
	invoiceRepo.AssertExpectations(t)
}

func TestPaymentService_Create_PendingDoesNotTouchInvoice(t *testing.T) {
	paymentRepo := new(mocks.MockPaymentRepo)
	customerRepo := new(mocks.MockCustomerRepo)
	invoiceRepo := new(mocks.MockInvoiceRepo)
	svc := service.NewPaymentService(paymentRepo, customerRepo, invoiceRepo)

	customerID := uuid.New()
	invoiceID := uuid.New()

	customerRepo.On("GetByID", mock.Anything, customerID).
		Return(&domain.Customer{ID: customerID}, nil)
	invoiceRepo.On("GetByID", mock.Anything, invoiceID).
		Return(&domain.Invoice{ID: invoiceID}, nil)
	paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil)

	_, err := svc.Create(context.Background(), service.PaymentInput{
		CustomerID:   customerID,
		InvoiceID:    &invoiceID,
		TransactedOn: "2024-03-01",
		Amount:       50,
		Status:       "pending",
		ReferenceID:  "PAY-002",
	})

	require.NoError(t, err)
	invoiceRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_Create_UnknownCustomer(t *testing.T) {
	paymentRepo := new(mocks.MockPaymentRepo)
	customerRepo := new(mocks.MockCustomerRepo)
	svc := service.NewPaymentService(paymentRepo, customerRepo, new(mocks.MockInvoiceRepo))

	customerID := uuid.New()
	customerRepo.On("GetByID", mock.Anything, customerID).Return(nil, domain.ErrNotFound)

	_, err := svc.Create(context.Background(), service.PaymentInput{
		CustomerID:   customerID,
		TransactedOn: "2024-03-01",
		Amount:       10,
		ReferenceID:  "PAY-003",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPaymentService_List(t *testing.T) {
	paymentRepo := new(mocks.MockPaymentRepo)
	svc := service.NewPaymentService(paymentRepo, new(mocks.MockCustomerRepo), new(mocks.MockInvoiceRepo))

	want := []domain.Payment{{ID: uuid.New(), ReferenceID: "PAY-010"}}
	paymentRepo.On("List", mock.Anything, 0, 20).Return(want, 1, nil)

	payments, total, err := svc.List(context.Background(), 0, 20)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, want, payments)
}

func TestPaymentService_Create_InvalidStatus(t *testing.T) {
	svc := service.NewPaymentService(new(mocks.MockPaymentRepo), new(mocks.MockCustomerRepo), new(mocks.MockInvoiceRepo))

	_, err := svc.Create(context.Background(), service.PaymentInput{
		CustomerID:   uuid.New(),
		TransactedOn: "2024-03-01",
		Amount:       10,
		Status:       "refunded",
		ReferenceID:  "PAY-004",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInvoiceStatus)
}
