package service

import (
	"context"

	"github.com/google/uuid"

	"invoxd/internal/domain"
	"invoxd/internal/port"
)

// CustomerService defines the customer directory contract.
type CustomerService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, offset, limit int) ([]domain.CustomerSummary, int, error)
}

type customerService struct {
	customerRepo port.CustomerRepository
}

// NewCustomerService creates a new CustomerService implementation.
func NewCustomerService(customerRepo port.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *customerService) List(ctx context.Context, offset, limit int) ([]domain.CustomerSummary, int, error) {
	return s.customerRepo.List(ctx, offset, limit)
}
