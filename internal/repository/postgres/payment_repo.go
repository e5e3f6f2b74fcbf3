package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"invoxd/internal/domain"
	"invoxd/internal/port"
)

type paymentRepo struct {
	db *sqlx.DB
}

// NewPaymentRepo creates a new PostgreSQL-backed PaymentRepository.
func NewPaymentRepo(db *sqlx.DB) port.PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	payment.ID = uuid.New()
	payment.CreatedAt = time.Now().UTC()

	query := `INSERT INTO payments (id, customer_id, invoice_id, transacted_on,
		amount, currency, status, reference_id, transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		payment.ID, payment.CustomerID, payment.InvoiceID, payment.TransactedOn,
		payment.Amount, payment.Currency, payment.Status, payment.ReferenceID,
		payment.TransactionID, payment.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateReferenceID
		}
		return fmt.Errorf("paymentRepo.Create: %w", err)
	}
	return nil
}

func (r *paymentRepo) List(ctx context.Context, offset, limit int) ([]domain.Payment, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM payments"); err != nil {
		return nil, 0, fmt.Errorf("paymentRepo.List count: %w", err)
	}

	var payments []domain.Payment
	err := r.db.SelectContext(ctx, &payments,
		`SELECT * FROM payments ORDER BY transacted_on DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("paymentRepo.List: %w", err)
	}
	return payments, total, nil
}

func (r *paymentRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID, offset, limit int) ([]domain.Payment, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM payments WHERE customer_id = $1", customerID)
	if err != nil {
		return nil, 0, fmt.Errorf("paymentRepo.ListByCustomer count: %w", err)
	}

	var payments []domain.Payment
	err = r.db.SelectContext(ctx, &payments,
		`SELECT * FROM payments WHERE customer_id = $1
		 ORDER BY transacted_on DESC LIMIT $2 OFFSET $3`,
		customerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("paymentRepo.ListByCustomer: %w", err)
	}
	return payments, total, nil
}
