package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"invoxd/internal/domain"
	"invoxd/internal/port"
)

type analyticsRepo struct {
	db *sqlx.DB
}

// Services rank by summed unit price alone; quantity does not weight the rank.
const topServicesQuery = `SELECT item, SUM(unit_price) AS price
	 FROM invoice_line_items
	 GROUP BY item
	 ORDER BY price DESC
	 LIMIT $1`

const topCustomersQuery = `SELECT c.id AS customer_id, c.name AS customer_name, SUM(i.total_amount) AS amount
	 FROM invoices i
	 JOIN customers c ON c.id = i.customer_id
	 GROUP BY c.id, c.name
	 ORDER BY amount DESC
	 LIMIT $1`

// NewAnalyticsRepo creates a new PostgreSQL-backed AnalyticsRepository.
func NewAnalyticsRepo(db *sqlx.DB) port.AnalyticsRepository {
	return &analyticsRepo{db: db}
}

func (r *analyticsRepo) TopServices(ctx context.Context, limit int) ([]domain.TopService, error) {
	var services []domain.TopService
	err := r.db.SelectContext(ctx, &services, topServicesQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("analyticsRepo.TopServices: %w", err)
	}
	return services, nil
}

func (r *analyticsRepo) TopCustomers(ctx context.Context, limit int) ([]domain.TopCustomer, error) {
	var customers []domain.TopCustomer
	err := r.db.SelectContext(ctx, &customers, topCustomersQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("analyticsRepo.TopCustomers: %w", err)
	}
	return customers, nil
}
