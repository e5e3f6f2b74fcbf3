package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invoxd/internal/domain"
	"invoxd/internal/handler"
	"invoxd/internal/service"
	"invoxd/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Total  int `json:"total"`
		Offset int `json:"offset"`
		Limit  int `json:"limit"`
	} `json:"meta"`
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body []byte) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func newInvoiceRouter(invoiceRepo *mocks.MockInvoiceRepo, customerRepo *mocks.MockCustomerRepo, companyRepo *mocks.MockCompanyRepo) *gin.Engine {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewInvoiceService(invoiceRepo, customerRepo, companyRepo, log)
	h := handler.NewInvoiceHandler(svc)

	r := gin.New()
	r.POST("/api/v1/invoices", h.Create)
	r.GET("/api/v1/invoices", h.List)
	r.GET("/api/v1/invoices/:id", h.GetByID)
	r.PATCH("/api/v1/invoices/:id/status", h.UpdateStatus)
	return r
}

func validInvoiceBody() []byte {
	return []byte(`{
		"invoice_number": "INV-2024-001",
		"order_date": "2024-01-15",
		"invoice_from": "Acme Supplies",
		"invoice_to": "Globex Corp",
		"total_amount": 118,
		"tax": 18,
		"line_items": [
			{"service": "Consulting", "quantity": 2, "unit_price": 50, "unit_tax": 9, "line_price": 118}
		],
		"customer_name": "Globex Corp",
		"address": "2 Main St"
	}`)
}

func TestInvoiceHandler_Create(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	customerRepo := new(mocks.MockCustomerRepo)
	companyRepo := new(mocks.MockCompanyRepo)
	r := newInvoiceRouter(invoiceRepo, customerRepo, companyRepo)

	customerRepo.On("GetByName", mock.Anything, "Globex Corp").
		Return(&domain.Customer{ID: uuid.New(), Name: "Globex Corp", Address: "2 Main St"}, nil)
	companyRepo.On("GetByName", mock.Anything, "Globex Corp").Return(nil, domain.ErrNotFound)
	invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	w, env := doRequest(t, r, http.MethodPost, "/api/v1/invoices", validInvoiceBody())

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)

	var invoice domain.Invoice
	require.NoError(t, json.Unmarshal(env.Data, &invoice))
	assert.Equal(t, "INV-2024-001", invoice.InvoiceNumber)
	assert.Equal(t, domain.InvoiceTypePayable, invoice.InvoiceType)
}

func TestInvoiceHandler_Create_DuplicateNumber(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	customerRepo := new(mocks.MockCustomerRepo)
	companyRepo := new(mocks.MockCompanyRepo)
	r := newInvoiceRouter(invoiceRepo, customerRepo, companyRepo)

	customerRepo.On("GetByName", mock.Anything, "Globex Corp").
		Return(&domain.Customer{ID: uuid.New(), Name: "Globex Corp", Address: "2 Main St"}, nil)
	companyRepo.On("GetByName", mock.Anything, "Globex Corp").Return(nil, domain.ErrNotFound)
	invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).
		Return(domain.ErrDuplicateInvoiceNumber)

	w, env := doRequest(t, r, http.MethodPost, "/api/v1/invoices", validInvoiceBody())

	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "DUPLICATE_INVOICE_NUMBER", env.Error.Code)
}

func TestInvoiceHandler_List_WithFilters(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	r := newInvoiceRouter(invoiceRepo, new(mocks.MockCustomerRepo), new(mocks.MockCompanyRepo))

	invoiceRepo.On("List", mock.Anything, mock.AnythingOfType("port.InvoiceFilter"), 0, 20).
		Return([]domain.Invoice{{InvoiceNumber: "INV-1"}}, 1, nil)

	w, env := doRequest(t, r, http.MethodGet,
		"/api/v1/invoices?status=pending&start_date=2024-01-01&end_date=2024-12-31", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 1, env.Meta.Total)
}

func TestInvoiceHandler_List_BadFilter(t *testing.T) {
	r := newInvoiceRouter(new(mocks.MockInvoiceRepo), new(mocks.MockCustomerRepo), new(mocks.MockCompanyRepo))

	w, env := doRequest(t, r, http.MethodGet, "/api/v1/invoices?status=archived", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_FILTER", env.Error.Code)
}

func TestInvoiceHandler_GetByID_NotFound(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	r := newInvoiceRouter(invoiceRepo, new(mocks.MockCustomerRepo), new(mocks.MockCompanyRepo))

	id := uuid.New()
	invoiceRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	w, env := doRequest(t, r, http.MethodGet, "/api/v1/invoices/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestInvoiceHandler_GetByID_BadID(t *testing.T) {
	r := newInvoiceRouter(new(mocks.MockInvoiceRepo), new(mocks.MockCustomerRepo), new(mocks.MockCompanyRepo))

	w, _ := doRequest(t, r, http.MethodGet, "/api/v1/invoices/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvoiceHandler_UpdateStatus(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	r := newInvoiceRouter(invoiceRepo, new(mocks.MockCustomerRepo), new(mocks.MockCompanyRepo))

	id := uuid.New()
	invoiceRepo.On("UpdateStatus", mock.Anything, id, domain.InvoiceStatusPaid).Return(nil)

	w, env := doRequest(t, r, http.MethodPatch,
		"/api/v1/invoices/"+id.String()+"/status", []byte(`{"status":"paid"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
}
