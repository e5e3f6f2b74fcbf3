package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"invoxd/internal/domain"
)

// CustomerRepository defines the contract for customer persistence.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	GetByName(ctx context.Context, name string) (*domain.Customer, error)
	List(ctx context.Context, offset, limit int) ([]domain.CustomerSummary, int, error)
	Update(ctx context.Context, customer *domain.Customer) error
}

// InvoiceFilter narrows invoice list queries. Nil fields are not applied.
type InvoiceFilter struct {
	OrderDate  *time.Time
	StartDate  *time.Time
	EndDate    *time.Time
	Status     *domain.InvoiceStatus
	CustomerID *uuid.UUID
}

// InvoiceRepository defines the contract for invoice persistence.
// Create inserts the header and its line items in one transaction.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, filter InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) error
}

// CompanyRepository defines the contract for company persistence.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	GetByName(ctx context.Context, name string) (*domain.Company, error)
	List(ctx context.Context, offset, limit int) ([]domain.Company, int, error)
	Update(ctx context.Context, company *domain.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentRepository defines the contract for payment persistence.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	List(ctx context.Context, offset, limit int) ([]domain.Payment, int, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, offset, limit int) ([]domain.Payment, int, error)
}
