// Package extract turns the text blob produced by docparse into a validated
// invoice record using a language-model completion constrained by a JSON
// Schema.
package extract

// LineItemFields is one priced entry of the extracted invoice.
type LineItemFields struct {
	Service   string  `json:"service"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	UnitTax   float64 `json:"unit_tax"`
	LinePrice float64 `json:"line_price"`
}

// InvoiceFields is the normalized shape we want from the LLM. Optional
// fields are pointers so "absent" survives the round trip as null rather
// than an empty string. Dates are YYYY-MM-DD strings.
type InvoiceFields struct {
	InvoiceNumber string  `json:"invoice_number"`
	OrderDate     string  `json:"order_date"`
	DueDate       *string `json:"due_date,omitempty"`
	InvoiceFrom   string  `json:"invoice_from"`
	InvoiceTo     string  `json:"invoice_to"`
	TotalAmount   float64 `json:"total_amount"`
	Currency      *string `json:"currency,omitempty"`
	Tax           float64 `json:"tax"`

	LineItems []LineItemFields `json:"line_items"`

	CustomerName string  `json:"customer_name"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      string  `json:"address"`
	GSTNumber    *string `json:"gst_number,omitempty"`
}
