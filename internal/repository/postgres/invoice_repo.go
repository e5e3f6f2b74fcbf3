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

type invoiceRepo struct {
	db *sqlx.DB
}

// Line items come back in the order they appeared on the source document.
const lineItemsQuery = "SELECT * FROM invoice_line_items WHERE invoice_id = $1 ORDER BY position ASC"

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

// Create inserts the invoice header and its line items in a single
// transaction, so a half-written invoice is never visible.
func (r *invoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	invoice.ID = uuid.New()
	now := time.Now().UTC()
	invoice.CreatedAt = now
	invoice.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	headerQuery := `INSERT INTO invoices (id, invoice_number, order_date, due_date,
		invoice_from, invoice_to, total_amount, currency, tax, status, invoice_type,
		customer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err = tx.ExecContext(ctx, headerQuery,
		invoice.ID, invoice.InvoiceNumber, invoice.OrderDate, invoice.DueDate,
		invoice.InvoiceFrom, invoice.InvoiceTo, invoice.TotalAmount, invoice.Currency,
		invoice.Tax, invoice.Status, invoice.InvoiceType, invoice.CustomerID,
		invoice.CreatedAt, invoice.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateInvoiceNumber
		}
		return fmt.Errorf("invoiceRepo.Create header: %w", err)
	}

	itemQuery := `INSERT INTO invoice_line_items (id, invoice_id, position, item,
		quantity, unit_price, unit_tax, line_price) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for i := range invoice.LineItems {
		item := &invoice.LineItems[i]
		item.ID = uuid.New()
		item.InvoiceID = invoice.ID
		item.Position = i
		_, err = tx.ExecContext(ctx, itemQuery,
			item.ID, item.InvoiceID, item.Position, item.Item, item.Quantity,
			item.UnitPrice, item.UnitTax, item.LinePrice)
		if err != nil {
			return fmt.Errorf("invoiceRepo.Create line item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("invoiceRepo.Create commit: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.GetContext(ctx, &invoice,
		"SELECT * FROM invoices WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}

	err = r.db.SelectContext(ctx, &invoice.LineItems, lineItemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.GetByID line items: %w", err)
	}
	return &invoice, nil
}

func (r *invoiceRepo) List(ctx context.Context, filter port.InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error) {
	where, args := buildInvoiceFilter(filter)

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM invoices"+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM invoices%s ORDER BY order_date DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var invoices []domain.Invoice
	err = r.db.SelectContext(ctx, &invoices, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE invoices SET status = $1, updated_at = NOW() WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// buildInvoiceFilter renders the WHERE clause for List. Positional
// placeholders start at $1 so the caller can append LIMIT/OFFSET after.
func buildInvoiceFilter(filter port.InvoiceFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.OrderDate != nil {
		add("order_date = $%d", *filter.OrderDate)
	}
	if filter.StartDate != nil {
		add("order_date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("order_date <= $%d", *filter.EndDate)
	}
	if filter.Status != nil {
		add("status = $%d", *filter.Status)
	}
	if filter.CustomerID != nil {
		add("customer_id = $%d", *filter.CustomerID)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
