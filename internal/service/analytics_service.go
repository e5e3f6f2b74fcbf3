package service

import (
	"context"

	"invoxd/internal/domain"
	"invoxd/internal/port"
)

const (
	defaultTopLimit = 5
	maxTopLimit     = 20
)

// AnalyticsService provides spend aggregates for dashboards.
type AnalyticsService interface {
	TopServices(ctx context.Context, limit int) ([]domain.TopService, error)
	TopCustomers(ctx context.Context, limit int) ([]domain.TopCustomer, error)
}

type analyticsService struct {
	analyticsRepo port.AnalyticsRepository
}

// NewAnalyticsService creates a new AnalyticsService implementation.
func NewAnalyticsService(analyticsRepo port.AnalyticsRepository) AnalyticsService {
	return &analyticsService{analyticsRepo: analyticsRepo}
}

func clampTopLimit(limit int) int {
	if limit <= 0 {
		return defaultTopLimit
	}
	if limit > maxTopLimit {
		return maxTopLimit
	}
	return limit
}

func (s *analyticsService) TopServices(ctx context.Context, limit int) ([]domain.TopService, error) {
	return s.analyticsRepo.TopServices(ctx, clampTopLimit(limit))
}

func (s *analyticsService) TopCustomers(ctx context.Context, limit int) ([]domain.TopCustomer, error) {
	return s.analyticsRepo.TopCustomers(ctx, clampTopLimit(limit))
}
