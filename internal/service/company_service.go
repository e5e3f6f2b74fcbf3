package service

import (
	"context"

	"github.com/google/uuid"

	"invoxd/internal/domain"
	"invoxd/internal/port"
)

// CompanyInput is the DTO for company create and update requests.
type CompanyInput struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
}

// CompanyService defines the company management contract. Registered
// companies drive the payable/receivable classification of new invoices.
type CompanyService interface {
	Create(ctx context.Context, input CompanyInput) (*domain.Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	List(ctx context.Context, offset, limit int) ([]domain.Company, int, error)
	Update(ctx context.Context, id uuid.UUID, input CompanyInput) (*domain.Company, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type companyService struct {
	companyRepo port.CompanyRepository
}

// NewCompanyService creates a new CompanyService implementation.
func NewCompanyService(companyRepo port.CompanyRepository) CompanyService {
	return &companyService{companyRepo: companyRepo}
}

func (s *companyService) Create(ctx context.Context, input CompanyInput) (*domain.Company, error) {
	company := &domain.Company{
		Name:    input.Name,
		Address: input.Address,
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	return s.companyRepo.GetByID(ctx, id)
}

func (s *companyService) List(ctx context.Context, offset, limit int) ([]domain.Company, int, error) {
	return s.companyRepo.List(ctx, offset, limit)
}

func (s *companyService) Update(ctx context.Context, id uuid.UUID, input CompanyInput) (*domain.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	company.Name = input.Name
	company.Address = input.Address
	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.companyRepo.Delete(ctx, id)
}
