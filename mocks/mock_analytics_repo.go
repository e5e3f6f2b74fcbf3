package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invoxd/internal/domain"
)

// MockAnalyticsRepo is a mock implementation of port.AnalyticsRepository.
type MockAnalyticsRepo struct {
	mock.Mock
}

func (m *MockAnalyticsRepo) TopServices(ctx context.Context, limit int) ([]domain.TopService, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TopService), args.Error(1)
}

func (m *MockAnalyticsRepo) TopCustomers(ctx context.Context, limit int) ([]domain.TopCustomer, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TopCustomer), args.Error(1)
}
