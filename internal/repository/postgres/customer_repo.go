package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"invoxd/internal/domain"
	"invoxd/internal/port"
)

type customerRepo struct {
	db *sqlx.DB
}

// NewCustomerRepo creates a new PostgreSQL-backed CustomerRepository.
func NewCustomerRepo(db *sqlx.DB) port.CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	customer.ID = uuid.New()
	now := time.Now().UTC()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	query := `INSERT INTO customers (id, name, email, phone, address, gst_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		customer.ID, customer.Name, customer.Email, customer.Phone,
		customer.Address, customer.GSTNumber, customer.CreatedAt, customer.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateCustomerEmail
		}
		return fmt.Errorf("customerRepo.Create: %w", err)
	}
	return nil
}

func (r *customerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.db.GetContext(ctx, &customer,
		"SELECT * FROM customers WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("customerRepo.GetByID: %w", err)
	}
	return &customer, nil
}

func (r *customerRepo) GetByName(ctx context.Context, name string) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.db.GetContext(ctx, &customer,
		"SELECT * FROM customers WHERE LOWER(name) = LOWER($1)", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("customerRepo.GetByName: %w", err)
	}
	return &customer, nil
}

func (r *customerRepo) List(ctx context.Context, offset, limit int) ([]domain.CustomerSummary, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM customers")
	if err != nil {
		return nil, 0, fmt.Errorf("customerRepo.List count: %w", err)
	}

	var customers []domain.CustomerSummary
	err = r.db.SelectContext(ctx, &customers,
		"SELECT id, name FROM customers ORDER BY name ASC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("customerRepo.List: %w", err)
	}
	return customers, total, nil
}

func (r *customerRepo) Update(ctx context.Context, customer *domain.Customer) error {
	customer.UpdatedAt = time.Now().UTC()
	query := `UPDATE customers SET name = $1, email = $2, phone = $3, address = $4,
		gst_number = $5, updated_at = $6 WHERE id = $7`
	result, err := r.db.ExecContext(ctx, query,
		customer.Name, customer.Email, customer.Phone, customer.Address,
		customer.GSTNumber, customer.UpdatedAt, customer.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateCustomerEmail
		}
		return fmt.Errorf("customerRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
