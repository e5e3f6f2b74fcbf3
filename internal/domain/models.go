package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a customer or business an invoice is billed to.
type Customer struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     *string   `db:"email" json:"email"`
	Phone     *string   `db:"phone" json:"phone"`
	Address   string    `db:"address" json:"address"`
	GSTNumber *string   `db:"gst_number" json:"gst_number"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Invoice is a persisted invoice header.
type Invoice struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	InvoiceNumber string        `db:"invoice_number" json:"invoice_number"`
	OrderDate     time.Time     `db:"order_date" json:"order_date"`
	DueDate       *time.Time    `db:"due_date" json:"due_date"`
	InvoiceFrom   string        `db:"invoice_from" json:"invoice_from"`
	InvoiceTo     string        `db:"invoice_to" json:"invoice_to"`
	TotalAmount   float64       `db:"total_amount" json:"total_amount"`
	Currency      string        `db:"currency" json:"currency"`
	Tax           float64       `db:"tax" json:"tax"`
	Status        InvoiceStatus `db:"status" json:"status"`
	InvoiceType   InvoiceType   `db:"invoice_type" json:"invoice_type"`
	CustomerID    uuid.UUID     `db:"customer_id" json:"customer_id"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`

	// Populated by InvoiceRepository.GetByID, absent on list queries.
	LineItems []InvoiceLineItem `db:"-" json:"line_items,omitempty"`
}

// InvoiceLineItem is one priced entry within an invoice.
type InvoiceLineItem struct {
	ID        uuid.UUID `db:"id" json:"id"`
	InvoiceID uuid.UUID `db:"invoice_id" json:"invoice_id"`
	Position  int       `db:"position" json:"-"`
	Item      string    `db:"item" json:"item"`
	Quantity  int       `db:"quantity" json:"quantity"`
	UnitPrice float64   `db:"unit_price" json:"unit_price"`
	UnitTax   float64   `db:"unit_tax" json:"unit_tax"`
	LinePrice float64   `db:"line_price" json:"line_price"`
}

// Company represents an owning company; invoices billed to a company are
// receivable, everything else is payable.
type Company struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Address   string    `db:"address" json:"address"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Payment records a transaction made against a customer, optionally tied to
// a specific invoice.
type Payment struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	CustomerID    uuid.UUID     `db:"customer_id" json:"customer_id"`
	InvoiceID     *uuid.UUID    `db:"invoice_id" json:"invoice_id"`
	TransactedOn  time.Time     `db:"transacted_on" json:"transacted_on"`
	Amount        float64       `db:"amount" json:"amount"`
	Currency      string        `db:"currency" json:"currency"`
	Status        InvoiceStatus `db:"status" json:"status"`
	ReferenceID   string        `db:"reference_id" json:"reference_id"`
	TransactionID *string       `db:"transaction_id" json:"transaction_id"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}

// CustomerSummary is the trimmed-down customer projection returned by
// the customer listing endpoint.
type CustomerSummary struct {
	ID   uuid.UUID `db:"id" json:"customer_id"`
	Name string    `db:"name" json:"customer_name"`
}

// TopService is one row of the top-services aggregate.
type TopService struct {
	Item  string  `db:"item" json:"item"`
	Price float64 `db:"price" json:"price"`
}

// TopCustomer is one row of the top-customers aggregate.
type TopCustomer struct {
	CustomerID   uuid.UUID `db:"customer_id" json:"customer_id"`
	CustomerName string    `db:"customer_name" json:"customer_name"`
	Amount       float64   `db:"amount" json:"amount"`
}
