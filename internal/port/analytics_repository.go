package port

import (
	"context"

	"invoxd/internal/domain"
)

// AnalyticsRepository provides aggregate spend queries over invoices.
type AnalyticsRepository interface {
	TopServices(ctx context.Context, limit int) ([]domain.TopService, error)
	TopCustomers(ctx context.Context, limit int) ([]domain.TopCustomer, error)
}
