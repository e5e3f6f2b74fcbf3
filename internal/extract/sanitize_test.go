package extract_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoxd/internal/extract"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNormalizeFields_EmptyOptionalsBecomeNull(t *testing.T) {
	raw := []byte(`{"invoice_number":"INV-1","currency":"","email":"  ","phone":""}`)

	cleaned, applied, err := extract.NormalizeFields(raw, discardLogger())
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(cleaned, &m))
	assert.Nil(t, m["currency"])
	assert.Nil(t, m["email"])
	assert.Nil(t, m["phone"])
	assert.Equal(t, "INV-1", m["invoice_number"])
	assert.ElementsMatch(t, []string{"currency", "email", "phone"}, applied[:3])
}

func TestNormalizeFields_DateRewrittenToISO(t *testing.T) {
	raw := []byte(`{"order_date":"15/01/2024","due_date":"Jan 31, 2024"}`)

	cleaned, _, err := extract.NormalizeFields(raw, discardLogger())
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(cleaned, &m))
	assert.Equal(t, "2024-01-15", m["order_date"])
	assert.Equal(t, "2024-01-31", m["due_date"])
}

func TestNormalizeFields_MissingNumericsDefaultToOne(t *testing.T) {
	raw := []byte(`{"line_items":[{"service":"Hosting","quantity":null,"unit_price":9.99}]}`)

	cleaned, applied, err := extract.NormalizeFields(raw, discardLogger())
	require.NoError(t, err)

	var m struct {
		TotalAmount float64 `json:"total_amount"`
		Tax         float64 `json:"tax"`
		LineItems   []struct {
			Quantity  float64 `json:"quantity"`
			UnitPrice float64 `json:"unit_price"`
			UnitTax   float64 `json:"unit_tax"`
			LinePrice float64 `json:"line_price"`
		} `json:"line_items"`
	}
	require.NoError(t, json.Unmarshal(cleaned, &m))
	assert.Equal(t, 1.0, m.TotalAmount)
	assert.Equal(t, 1.0, m.Tax)
	assert.Equal(t, 1.0, m.LineItems[0].Quantity)
	assert.Equal(t, 9.99, m.LineItems[0].UnitPrice)
	assert.Equal(t, 1.0, m.LineItems[0].UnitTax)
	assert.Equal(t, 1.0, m.LineItems[0].LinePrice)
	assert.Contains(t, applied, "line_items[0].quantity")
	assert.Contains(t, applied, "line_items[0].unit_tax")
}

func TestNormalizeFields_ZeroQuantityDefaultsToOne(t *testing.T) {
	raw := []byte(`{"line_items":[{"service":"Paper","quantity":0,"unit_price":2,"unit_tax":0,"line_price":2}]}`)

	cleaned, applied, err := extract.NormalizeFields(raw, discardLogger())
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(cleaned, &m))
	item := m["line_items"].([]any)[0].(map[string]any)
	assert.Equal(t, 1.0, item["quantity"])
	// zero is a legitimate value for the tax fields, only nil defaults
	assert.Equal(t, 0.0, item["unit_tax"])
	assert.Contains(t, applied, "line_items[0].quantity")
}

func TestNormalizeFields_InvalidJSON(t *testing.T) {
	_, _, err := extract.NormalizeFields([]byte(`not json`), discardLogger())
	assert.Error(t, err)
}
