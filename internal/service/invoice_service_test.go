package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invoxd/internal/domain"
	"invoxd/internal/port"
	"invoxd/internal/service"
	"invoxd/mocks"
)

func newInvoiceService(invoiceRepo *mocks.MockInvoiceRepo, customerRepo *mocks.MockCustomerRepo, companyRepo *mocks.MockCompanyRepo) service.InvoiceService {
	return service.NewInvoiceService(invoiceRepo, customerRepo, companyRepo, testLogger())
}

func TestInvoiceService_Add_NewCustomerPayable(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	customerRepo := new(mocks.MockCustomerRepo)
	companyRepo := new(mocks.MockCompanyRepo)
	svc := newInvoiceService(invoiceRepo, customerRepo, companyRepo)

	fields := sampleFields()

	customerRepo.On("GetByName", mock.Anything, "Globex Corp").Return(nil, domain.ErrNotFound)
	customerRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Customer")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Customer).ID = uuid.New()
		}).Return(nil)
	companyRepo.On("GetByName", mock.Anything, "Globex Corp").Return(nil, domain.ErrNotFound)
	invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	invoice, err := svc.Add(context.Background(), fields)

	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceTypePayable, invoice.InvoiceType)
	assert.Equal(t, domain.InvoiceStatusPending, invoice.Status)
	assert.Equal(t, "INR", invoice.Currency)
	assert.Equal(t, "2024-01-15", invoice.OrderDate.Format("2006-01-02"))
	require.Len(t, invoice.LineItems, 1)
	assert.Equal(t, "Consulting", invoice.LineItems[0].Item)
	customerRepo.AssertExpectations(t)
	invoiceRepo.AssertExpectations(t)
}

func TestInvoiceService_Add_CompanyCustomerIsReceivable(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	customerRepo := new(mocks.MockCustomerRepo)
	companyRepo := new(mocks.MockCompanyRepo)
	svc := newInvoiceService(invoiceRepo, customerRepo, companyRepo)

	existing := &domain.Customer{ID: uuid.New(), Name: "Globex Corp", Address: "2 Main St"}
	customerRepo.On("GetByName", mock.Anything, "Globex Corp").Return(existing, nil)
	companyRepo.On("GetByName", mock.Anything, "Globex Corp").
		Return(&domain.Company{ID: uuid.New(), Name: "Globex Corp"}, nil)
	invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	invoice, err := svc.Add(context.Background(), sampleFields())

	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceTypeReceivable, invoice.InvoiceType)
	assert.Equal(t, existing.ID, invoice.CustomerID)
}

func TestInvoiceService_Add_BackfillsCustomerContact(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	customerRepo := new(mocks.MockCustomerRepo)
	companyRepo := new(mocks.MockCompanyRepo)
	svc := newInvoiceService(invoiceRepo, customerRepo, companyRepo)

	email := "billing@globex.example"
	fields := sampleFields()
	fields.Email = &email

	existing := &domain.Customer{ID: uuid.New(), Name: "Globex Corp", Address: "2 Main St"}
	customerRepo.On("GetByName", mock.Anything, "Globex Corp").Return(existing, nil)
	customerRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Customer) bool {
		return c.Email != nil && *c.Email == email
	})).Return(nil)
	companyRepo.On("GetByName", mock.Anything, "Globex Corp").Return(nil, domain.ErrNotFound)
	invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	_, err := svc.Add(context.Background(), fields)

	require.NoError(t, err)
	customerRepo.AssertExpectations(t)
}

func TestInvoiceService_Add_NoLineItems(t *testing.T) {
	svc := newInvoiceService(new(mocks.MockInvoiceRepo), new(mocks.MockCustomerRepo), new(mocks.MockCompanyRepo))

	fields := sampleFields()
	fields.LineItems = nil

	_, err := svc.Add(context.Background(), fields)
	assert.ErrorIs(t, err, domain.ErrNoLineItems)
}

func TestInvoiceService_Add_KeepsExtractedCurrency(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	customerRepo := new(mocks.MockCustomerRepo)
	companyRepo := new(mocks.MockCompanyRepo)
	svc := newInvoiceService(invoiceRepo, customerRepo, companyRepo)

	usd := "USD"
	fields := sampleFields()
	fields.Currency = &usd

	existing := &domain.Customer{ID: uuid.New(), Name: "Globex Corp", Address: "2 Main St"}
	customerRepo.On("GetByName", mock.Anything, "Globex Corp").Return(existing, nil)
	companyRepo.On("GetByName", mock.Anything, "Globex Corp").Return(nil, domain.ErrNotFound)
	invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	invoice, err := svc.Add(context.Background(), fields)

	require.NoError(t, err)
	assert.Equal(t, "USD", invoice.Currency)
}

func TestInvoiceService_Add_BadOrderDate(t *testing.T) {
	svc := newInvoiceService(new(mocks.MockInvoiceRepo), new(mocks.MockCustomerRepo), new(mocks.MockCompanyRepo))

	fields := sampleFields()
	fields.OrderDate = "15/01/2024"

	_, err := svc.Add(context.Background(), fields)
	assert.Error(t, err)
}

func TestInvoiceService_UpdateStatus_Invalid(t *testing.T) {
	svc := newInvoiceService(new(mocks.MockInvoiceRepo), new(mocks.MockCustomerRepo), new(mocks.MockCompanyRepo))

	err := svc.UpdateStatus(context.Background(), uuid.New(), domain.InvoiceStatus("archived"))
	assert.ErrorIs(t, err, domain.ErrInvalidInvoiceStatus)
}

func TestInvoiceService_List_PassesFilter(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	svc := newInvoiceService(invoiceRepo, new(mocks.MockCustomerRepo), new(mocks.MockCompanyRepo))

	status := domain.InvoiceStatusPending
	filter := port.InvoiceFilter{Status: &status}
	invoiceRepo.On("List", mock.Anything, filter, 0, 20).
		Return([]domain.Invoice{{InvoiceNumber: "INV-1"}}, 1, nil)

	invoices, total, err := svc.List(context.Background(), filter, 0, 20)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "INV-1", invoices[0].InvoiceNumber)
}
