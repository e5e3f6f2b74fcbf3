package extract

// datePattern matches normalized YYYY-MM-DD dates.
const datePattern = `^\d{4}-\d{2}-\d{2}$`

// BuildInvoiceJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. We pass this to the model as an output constraint and also
// use it locally to validate what comes back.
func BuildInvoiceJSONSchema() map[string]any {
	lineItem := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"service":    map[string]any{"type": "string", "minLength": 1},
			"quantity":   map[string]any{"type": "integer", "minimum": 1},
			"unit_price": map[string]any{"type": "number"},
			"unit_tax":   map[string]any{"type": "number"},
			"line_price": map[string]any{"type": "number"},
		},
		"required": []string{"service", "quantity", "unit_price", "unit_tax", "line_price"},
	}

	props := map[string]any{
		"invoice_number": map[string]any{"type": "string", "minLength": 1},
		"order_date":     map[string]any{"type": "string", "pattern": datePattern},
		"due_date":       map[string]any{"type": []string{"string", "null"}, "pattern": datePattern},
		"invoice_from":   map[string]any{"type": "string", "minLength": 1},
		"invoice_to":     map[string]any{"type": "string", "minLength": 1},
		"total_amount":   map[string]any{"type": "number"},
		"currency":       map[string]any{"type": []string{"string", "null"}},
		"tax":            map[string]any{"type": "number"},
		"line_items":     map[string]any{"type": "array", "items": lineItem, "minItems": 1},
		"customer_name":  map[string]any{"type": "string", "minLength": 1},
		"email":          map[string]any{"type": []string{"string", "null"}, "format": "email"},
		"phone":          map[string]any{"type": []string{"string", "null"}},
		"address":        map[string]any{"type": "string", "minLength": 1},
		"gst_number":     map[string]any{"type": []string{"string", "null"}},
	}

	required := []string{
		"invoice_number", "order_date", "invoice_from", "invoice_to",
		"total_amount", "tax", "line_items", "customer_name", "address",
	}

	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}
