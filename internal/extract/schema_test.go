package extract_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoxd/internal/extract"
)

func validInvoiceJSON(t *testing.T, mutate func(m map[string]any)) []byte {
	t.Helper()
	m := map[string]any{
		"invoice_number": "INV-2024-001",
		"order_date":     "2024-01-15",
		"invoice_from":   "Acme Supplies, 1 Industrial Way",
		"invoice_to":     "Globex Corp, 2 Main St",
		"total_amount":   118.0,
		"tax":            18.0,
		"line_items": []any{
			map[string]any{
				"service":    "Consulting",
				"quantity":   2,
				"unit_price": 50.0,
				"unit_tax":   9.0,
				"line_price": 118.0,
			},
		},
		"customer_name": "Globex Corp",
		"address":       "2 Main St",
	}
	if mutate != nil {
		mutate(m)
	}
	b, err := json.Marshal(m)
	require.NoError(t, err)
	return b
}

func TestValidateJSONAgainstSchema_Valid(t *testing.T) {
	schema := extract.BuildInvoiceJSONSchema()
	err := extract.ValidateJSONAgainstSchema(schema, validInvoiceJSON(t, nil))
	assert.NoError(t, err)
}

func TestValidateJSONAgainstSchema_MissingRequiredField(t *testing.T) {
	schema := extract.BuildInvoiceJSONSchema()
	data := validInvoiceJSON(t, func(m map[string]any) {
		delete(m, "invoice_number")
	})
	assert.Error(t, extract.ValidateJSONAgainstSchema(schema, data))
}

func TestValidateJSONAgainstSchema_BadEmailFormat(t *testing.T) {
	schema := extract.BuildInvoiceJSONSchema()
	data := validInvoiceJSON(t, func(m map[string]any) {
		m["email"] = "not-an-email"
	})
	assert.Error(t, extract.ValidateJSONAgainstSchema(schema, data))
}

func TestValidateJSONAgainstSchema_NullOptionalsAccepted(t *testing.T) {
	schema := extract.BuildInvoiceJSONSchema()
	data := validInvoiceJSON(t, func(m map[string]any) {
		m["due_date"] = nil
		m["currency"] = nil
		m["email"] = nil
	})
	assert.NoError(t, extract.ValidateJSONAgainstSchema(schema, data))
}

func TestValidateJSONAgainstSchema_EmptyLineItems(t *testing.T) {
	schema := extract.BuildInvoiceJSONSchema()
	data := validInvoiceJSON(t, func(m map[string]any) {
		m["line_items"] = []any{}
	})
	assert.Error(t, extract.ValidateJSONAgainstSchema(schema, data))
}

func TestValidateJSONAgainstSchema_NonISODateRejected(t *testing.T) {
	schema := extract.BuildInvoiceJSONSchema()
	data := validInvoiceJSON(t, func(m map[string]any) {
		m["order_date"] = "15/01/2024"
	})
	assert.Error(t, extract.ValidateJSONAgainstSchema(schema, data))
}
